// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package generic implements the general-purpose conversion of Arrow
// arrays into host vectors. It accepts any Arrow type, including extension
// and dictionary types, and any prototype, converting value by value. It is
// slower than package materialize and serves as its fallback.
package generic

import (
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"golang.org/x/xerrors"
)

// ErrIncompatible is returned when values cannot be represented by the
// requested prototype.
var ErrIncompatible = xerrors.New("generic: values incompatible with prototype")

func incompatible(dt arrow.DataType, ptype vector.Vector) error {
	return xerrors.Errorf("%s to %s: %w", dt, vector.SemanticTypeOf(ptype), ErrIncompatible)
}

// Convert returns a new container holding the values at [offset,
// offset+length) of arr, shaped like ptype. A nil ptype selects the
// prototype returned by Prototype. arr is not retained past the call.
func Convert(arr arrow.Array, offset, length int64, ptype vector.Vector) (vector.Vector, error) {
	if offset < 0 || length < 0 || offset > int64(arr.Len())-length {
		return nil, xerrors.Errorf("generic: window [%d, %d+%d) exceeds length %d", offset, offset, length, arr.Len())
	}
	view := array.NewSlice(arr, offset, offset+length)
	defer view.Release()
	return convert(view, ptype)
}

func convert(arr arrow.Array, ptype vector.Vector) (vector.Vector, error) {
	if ptype == nil {
		ptype = Prototype(arr.DataType())
	}
	if ext, ok := arr.(array.ExtensionArray); ok {
		if out, ok := convertExtension(ext, ptype); ok {
			return out, nil
		}
		return convert(ext.Storage(), ptype)
	}

	vtype := vector.SemanticTypeOf(ptype)
	switch vtype {
	case vector.TypeTable:
		return convertTable(arr, ptype.(*vector.Table))
	case vector.TypeListOf:
		return convertList(arr, ptype)
	case vector.TypeOther:
		if l, ok := ptype.(*vector.List); ok && len(l.Attrs().Class) == 0 {
			return convertBoxed(arr, ptype)
		}
	}

	set, ok := setters[vtype]
	if !ok {
		return convertRaw(arr, ptype)
	}
	out, err := vector.New(ptype.Kind(), arr.Len())
	if err != nil {
		return nil, incompatible(arr.DataType(), ptype)
	}
	*out.Attrs() = ptype.Attrs().Clone()
	for i := 0; i < arr.Len(); i++ {
		src, k := resolve(arr, i)
		if err := set(out, i, src, k, arr.IsNull(i) || src.IsNull(k)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resolve maps element i of a dictionary array to its dictionary entry.
func resolve(arr arrow.Array, i int) (arrow.Array, int) {
	if dict, ok := arr.(*array.Dictionary); ok && !dict.IsNull(i) {
		return dict.Dictionary(), dict.GetValueIndex(i)
	}
	return arr, i
}

// Prototype returns the prototype of the values of dt when none is given.
func Prototype(dt arrow.DataType) vector.Vector {
	switch dt := dt.(type) {
	case *arrow.NullType:
		return vector.Unspecified()
	case *arrow.BooleanType:
		return vector.NewLogical(0)
	case *arrow.Int8Type, *arrow.Int16Type, *arrow.Int32Type, *arrow.Uint8Type, *arrow.Uint16Type:
		return vector.NewInteger(0)
	case *arrow.Int64Type, *arrow.Uint32Type, *arrow.Uint64Type, *arrow.Float16Type,
		*arrow.Float32Type, *arrow.Float64Type, *arrow.Decimal128Type, *arrow.Decimal256Type:
		return vector.NewDouble(0)
	case *arrow.Date32Type, *arrow.Date64Type:
		return vector.Date()
	case *arrow.TimestampType:
		return vector.Timestamp(dt.TimeZone)
	case *arrow.DurationType, *arrow.Time32Type, *arrow.Time64Type:
		return vector.Duration(vector.UnitSeconds)
	case *arrow.BinaryType, *arrow.LargeBinaryType, *arrow.FixedSizeBinaryType, *arrow.BinaryViewType:
		return vector.Blob()
	case *arrow.StructType:
		names := make([]string, dt.NumFields())
		cols := make([]vector.Vector, dt.NumFields())
		for i, f := range dt.Fields() {
			names[i], cols[i] = f.Name, Prototype(f.Type)
		}
		return vector.NewTable(names, cols, 0)
	case *arrow.ListType, *arrow.LargeListType, *arrow.FixedSizeListType, *arrow.MapType:
		return vector.ListOf(nil)
	case *arrow.DictionaryType:
		return Prototype(dt.ValueType)
	case arrow.ExtensionType:
		if dt.ExtensionName() == "arrow.uuid" {
			return vector.NewString(0)
		}
		return Prototype(dt.StorageType())
	}
	return vector.NewString(0)
}

func convertTable(arr arrow.Array, ptype *vector.Table) (vector.Vector, error) {
	st, ok := arr.(*array.Struct)
	if !ok || st.NumField() != ptype.NumCols() {
		return nil, incompatible(arr.DataType(), ptype)
	}
	cols := make([]vector.Vector, st.NumField())
	for i := range cols {
		col, err := convert(st.Field(i), ptype.Column(i))
		if err != nil {
			return nil, xerrors.Errorf("column %q: %w", ptype.Names()[i], err)
		}
		cols[i] = col
	}
	out := vector.NewTable(ptype.Names(), cols, st.Len())
	*out.Attrs() = ptype.Attrs().Clone()
	return out, nil
}

// listBounds returns the child values of a list-like array and the bounds
// of each row within them.
func listBounds(arr arrow.Array) (arrow.Array, func(int) (int64, int64), bool) {
	switch a := arr.(type) {
	case *array.List:
		return a.ListValues(), a.ValueOffsets, true
	case *array.LargeList:
		return a.ListValues(), a.ValueOffsets, true
	case *array.Map:
		return a.ListValues(), a.ValueOffsets, true
	case *array.FixedSizeList:
		stride := int64(a.DataType().(*arrow.FixedSizeListType).Len())
		base := int64(a.Data().Offset())
		return a.ListValues(), func(i int) (int64, int64) {
			start := (base + int64(i)) * stride
			return start, start + stride
		}, true
	}
	return nil, nil, false
}

func convertList(arr arrow.Array, ptype vector.Vector) (vector.Vector, error) {
	values, bounds, ok := listBounds(arr)
	if !ok {
		return nil, incompatible(arr.DataType(), ptype)
	}
	out := vector.WithAttrs(vector.NewList(arr.Len()), ptype.Attrs().Clone())
	elem := ptype.Attrs().Elem
	for i := range out.Values {
		if arr.IsNull(i) {
			continue
		}
		start, end := bounds(i)
		v, err := Convert(values, start, end-start, elem)
		if err != nil {
			return nil, err
		}
		out.Values[i] = v
	}
	return out, nil
}

// convertBoxed converts each value into its own length-one container.
func convertBoxed(arr arrow.Array, ptype vector.Vector) (vector.Vector, error) {
	out := vector.WithAttrs(vector.NewList(arr.Len()), ptype.Attrs().Clone())
	for i := range out.Values {
		if arr.IsNull(i) {
			continue
		}
		v, err := Convert(arr, int64(i), 1, nil)
		if err != nil {
			return nil, err
		}
		out.Values[i] = v
	}
	return out, nil
}

func convertRaw(arr arrow.Array, ptype vector.Vector) (vector.Vector, error) {
	if _, ok := ptype.(*vector.Raw); !ok {
		return nil, incompatible(arr.DataType(), ptype)
	}
	out := vector.WithAttrs(vector.NewRaw(arr.Len()), ptype.Attrs().Clone())
	for i := range out.Values {
		if arr.IsNull(i) {
			continue
		}
		x, ok := number(arr, i)
		if !ok || x < 0 || x > 255 {
			return nil, incompatible(arr.DataType(), ptype)
		}
		out.Values[i] = byte(x)
	}
	return out, nil
}
