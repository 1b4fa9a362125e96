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

package generic

import (
	"math"
	"strconv"
	"time"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const secondsPerDay = 86400

// setter stores element k of src as element i of out. A null element is
// stored as the missing value of out.
type setter func(out vector.Vector, i int, src arrow.Array, k int, null bool) error

var setters = map[vector.SemanticType]setter{
	vector.TypeUnspecified: setUnspecified,
	vector.TypeLogical:     setLogical,
	vector.TypeInteger:     setInteger,
	vector.TypeDouble:      setDouble,
	vector.TypeInt64:       setInt64,
	vector.TypeString:      setString,
	vector.TypeFactor:      setFactor,
	vector.TypeBlob:        setBlob,
	vector.TypeDate:        setDate,
	vector.TypeTimestamp:   setTimestamp,
	vector.TypeDuration:    setDuration,
}

func setUnspecified(out vector.Vector, i int, src arrow.Array, _ int, null bool) error {
	if !null {
		return incompatible(src.DataType(), out)
	}
	out.(*vector.Logical).Values[i] = vector.NALogical
	return nil
}

func setLogical(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	values := out.(*vector.Logical).Values
	if null {
		values[i] = vector.NALogical
		return nil
	}
	var truth bool
	if s, ok := text(src, k); ok {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return incompatible(src.DataType(), out)
		}
		truth = b
	} else if x, ok := number(src, k); ok {
		truth = x != 0
	} else {
		return incompatible(src.DataType(), out)
	}
	values[i] = 0
	if truth {
		values[i] = 1
	}
	return nil
}

func setInteger(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	values := out.(*vector.Integer).Values
	if null {
		values[i] = vector.NAInteger
		return nil
	}
	x, ok := number(src, k)
	if !ok {
		return incompatible(src.DataType(), out)
	}
	if math.IsNaN(x) || x <= math.MinInt32 || x > math.MaxInt32 {
		values[i] = vector.NAInteger
		return nil
	}
	values[i] = int32(x)
	return nil
}

func setDouble(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	values := out.(*vector.Double).Values
	if null {
		values[i] = vector.NAReal
		return nil
	}
	x, ok := number(src, k)
	if !ok {
		return incompatible(src.DataType(), out)
	}
	values[i] = x
	return nil
}

func setInt64(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	v := out.(*vector.Double)
	if null {
		v.Values[i] = vector.NAInt64
		return nil
	}
	if d, ok := decimalValue(src, k); ok {
		v.SetInt64(i, d.IntPart())
		return nil
	}
	switch a := src.(type) {
	case *array.Int64:
		v.SetInt64(i, a.Value(k))
		return nil
	case *array.Uint64:
		if x := a.Value(k); x <= math.MaxInt64 {
			v.SetInt64(i, int64(x))
			return nil
		}
		v.Values[i] = vector.NAInt64
		return nil
	}
	x, ok := number(src, k)
	if !ok || math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
		return incompatible(src.DataType(), out)
	}
	v.SetInt64(i, int64(x))
	return nil
}

func setString(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	v := out.(*vector.String)
	switch {
	case null:
		v.SetNA(i)
	default:
		if s, ok := text(src, k); ok {
			v.Set(i, s)
		} else if d, ok := decimalValue(src, k); ok {
			v.Set(i, d.String())
		} else {
			v.Set(i, src.ValueStr(k))
		}
	}
	return nil
}

func setFactor(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	v := out.(*vector.Integer)
	if null {
		v.Values[i] = vector.NAInteger
		return nil
	}
	s, ok := text(src, k)
	if !ok {
		return incompatible(src.DataType(), out)
	}
	for code, level := range v.Attrs().Levels {
		if level == s {
			v.Values[i] = int32(code + 1)
			return nil
		}
	}
	return incompatible(src.DataType(), out)
}

func setBlob(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	v := out.(*vector.List)
	if null {
		v.Values[i] = nil
		return nil
	}
	raw := vector.NewRaw(0)
	switch a := src.(type) {
	case *array.Binary:
		raw.Values = append(raw.Values, a.Value(k)...)
	case *array.LargeBinary:
		raw.Values = append(raw.Values, a.Value(k)...)
	case *array.FixedSizeBinary:
		raw.Values = append(raw.Values, a.Value(k)...)
	case *array.BinaryView:
		raw.Values = append(raw.Values, a.Value(k)...)
	default:
		s, ok := text(src, k)
		if !ok {
			return incompatible(src.DataType(), out)
		}
		raw.Values = []byte(s)
	}
	v.Values[i] = raw
	return nil
}

func setDate(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	values := out.(*vector.Double).Values
	if null {
		values[i] = vector.NAReal
		return nil
	}
	if s, ok := text(src, k); ok {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return incompatible(src.DataType(), out)
		}
		values[i] = float64(t.Unix() / secondsPerDay)
		return nil
	}
	switch src.DataType().ID() {
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP:
		secs, _ := seconds(src, k)
		values[i] = math.Floor(secs / secondsPerDay)
		return nil
	}
	return incompatible(src.DataType(), out)
}

func setTimestamp(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	values := out.(*vector.Double).Values
	if null {
		values[i] = vector.NAReal
		return nil
	}
	if s, ok := text(src, k); ok {
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return incompatible(src.DataType(), out)
		}
		values[i] = float64(t.UnixNano()) / 1e9
		return nil
	}
	switch src.DataType().ID() {
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP:
		values[i], _ = seconds(src, k)
		return nil
	}
	return incompatible(src.DataType(), out)
}

func setDuration(out vector.Vector, i int, src arrow.Array, k int, null bool) error {
	values := out.(*vector.Double).Values
	if null {
		values[i] = vector.NAReal
		return nil
	}
	per := vector.UnitLength(out.Attrs().Units)
	if per == 0 {
		return incompatible(src.DataType(), out)
	}
	switch src.DataType().ID() {
	case arrow.DURATION, arrow.TIME32, arrow.TIME64:
		secs, _ := seconds(src, k)
		values[i] = secs / per
		return nil
	}
	return incompatible(src.DataType(), out)
}

// text returns element k of string-like arrays.
func text(src arrow.Array, k int) (string, bool) {
	switch a := src.(type) {
	case *array.String:
		return a.Value(k), true
	case *array.LargeString:
		return a.Value(k), true
	case *array.StringView:
		return a.Value(k), true
	}
	return "", false
}

// number returns element k of boolean, integer, floating point and decimal
// arrays as a float64.
func number(src arrow.Array, k int) (float64, bool) {
	switch a := src.(type) {
	case *array.Boolean:
		if a.Value(k) {
			return 1, true
		}
		return 0, true
	case *array.Int8:
		return float64(a.Value(k)), true
	case *array.Int16:
		return float64(a.Value(k)), true
	case *array.Int32:
		return float64(a.Value(k)), true
	case *array.Int64:
		return float64(a.Value(k)), true
	case *array.Uint8:
		return float64(a.Value(k)), true
	case *array.Uint16:
		return float64(a.Value(k)), true
	case *array.Uint32:
		return float64(a.Value(k)), true
	case *array.Uint64:
		return float64(a.Value(k)), true
	case *array.Float16:
		return float64(a.Value(k).Float32()), true
	case *array.Float32:
		return float64(a.Value(k)), true
	case *array.Float64:
		return a.Value(k), true
	}
	if d, ok := decimalValue(src, k); ok {
		x, _ := d.Float64()
		return x, true
	}
	return 0, false
}

// decimalValue returns element k of decimal arrays at its exact scale.
func decimalValue(src arrow.Array, k int) (decimal.Decimal, bool) {
	switch a := src.(type) {
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return decimal.NewFromBigInt(a.Value(k).BigInt(), -scale), true
	case *array.Decimal256:
		scale := a.DataType().(*arrow.Decimal256Type).Scale
		return decimal.NewFromBigInt(a.Value(k).BigInt(), -scale), true
	}
	return decimal.Decimal{}, false
}

// seconds returns element k of temporal arrays in seconds: since the epoch
// for dates and timestamps, since midnight for times, and as a length for
// durations.
func seconds(src arrow.Array, k int) (float64, bool) {
	switch a := src.(type) {
	case *array.Date32:
		return float64(a.Value(k)) * secondsPerDay, true
	case *array.Date64:
		return float64(a.Value(k)) / 1000, true
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return float64(a.Value(k)) / float64(time.Second/unit.Multiplier()), true
	case *array.Duration:
		unit := a.DataType().(*arrow.DurationType).Unit
		return float64(a.Value(k)) / float64(time.Second/unit.Multiplier()), true
	case *array.Time32:
		unit := a.DataType().(*arrow.Time32Type).Unit
		return float64(a.Value(k)) / float64(time.Second/unit.Multiplier()), true
	case *array.Time64:
		unit := a.DataType().(*arrow.Time64Type).Unit
		return float64(a.Value(k)) / float64(time.Second/unit.Multiplier()), true
	}
	return 0, false
}

// convertExtension handles extension types whose values need more than a
// conversion of their storage. It reports false for every other case.
func convertExtension(arr array.ExtensionArray, ptype vector.Vector) (vector.Vector, bool) {
	if arr.ExtensionType().ExtensionName() != "arrow.uuid" || vector.SemanticTypeOf(ptype) != vector.TypeString {
		return nil, false
	}
	storage, ok := arr.Storage().(*array.FixedSizeBinary)
	if !ok {
		return nil, false
	}
	out := vector.WithAttrs(vector.NewString(arr.Len()), ptype.Attrs().Clone())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			out.SetNA(i)
			continue
		}
		id, err := uuid.FromBytes(storage.Value(i))
		if err != nil {
			return nil, false
		}
		out.Set(i, id.String())
	}
	return out, true
}
