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

package materialize

import (
	"math"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"golang.org/x/exp/constraints"
)

// doubles beyond this magnitude cannot represent every integer
const maxExactDouble = 1 << 53

func convertUnspecified(src ArraySlice, dst VectorSlice, _ *leafContext) error {
	out, err := destination[*vector.Logical](dst, "unspecified")
	if err != nil {
		return err
	}
	if !allNull(src) {
		return typeMismatch("unspecified prototype requires missing values, got %s values", src.Array.DataType())
	}
	lo, hi := dst.span()
	fill(out.Values[lo:hi], vector.NALogical)
	return nil
}

func convertLogical(src ArraySlice, dst VectorSlice, _ *leafContext) error {
	out, err := destination[*vector.Logical](dst, "logical")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NALogical)
	case *array.Boolean:
		fromBooleans(values, a, off)
	case *array.Int8:
		logicalFrom[int8](values, a, off)
	case *array.Int16:
		logicalFrom[int16](values, a, off)
	case *array.Int32:
		logicalFrom[int32](values, a, off)
	case *array.Int64:
		logicalFrom[int64](values, a, off)
	case *array.Uint8:
		logicalFrom[uint8](values, a, off)
	case *array.Uint16:
		logicalFrom[uint16](values, a, off)
	case *array.Uint32:
		logicalFrom[uint32](values, a, off)
	case *array.Uint64:
		logicalFrom[uint64](values, a, off)
	default:
		return unsupportedSource("logical", src)
	}
	return nil
}

func fromBooleans(out []int32, a *array.Boolean, off int) {
	for i := range out {
		switch row := off + i; {
		case a.IsNull(row):
			out[i] = vector.NALogical
		case a.Value(row):
			out[i] = 1
		default:
			out[i] = 0
		}
	}
}

func logicalFrom[T constraints.Integer](out []int32, a valuer[T], off int) {
	for i := range out {
		switch row := off + i; {
		case a.IsNull(row):
			out[i] = vector.NALogical
		case a.Value(row) != 0:
			out[i] = 1
		default:
			out[i] = 0
		}
	}
}

func convertInteger(src ArraySlice, dst VectorSlice, ctx *leafContext) error {
	out, err := destination[*vector.Integer](dst, "integer")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	coerced := 0
	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAInteger)
	case *array.Boolean:
		fromBooleans(values, a, off)
	case *array.Int8:
		coerced = integerFrom[int8](values, a, off)
	case *array.Int16:
		coerced = integerFrom[int16](values, a, off)
	case *array.Int32:
		coerced = integerFrom[int32](values, a, off)
	case *array.Int64:
		coerced = integerFrom[int64](values, a, off)
	case *array.Uint8:
		coerced = integerFrom[uint8](values, a, off)
	case *array.Uint16:
		coerced = integerFrom[uint16](values, a, off)
	case *array.Uint32:
		coerced = integerFrom[uint32](values, a, off)
	case *array.Uint64:
		coerced = integerFrom[uint64](values, a, off)
	case *array.Float32:
		coerced = integerFrom[float32](values, a, off)
	case *array.Float64:
		coerced = integerFrom[float64](values, a, off)
	default:
		return unsupportedSource("integer", src)
	}
	ctx.warnCoerced("values outside the integer range materialized as missing", coerced, src.Array.DataType())
	return nil
}

// integerFrom converts values into int32, truncating fractions. Values that
// do not fit, and NaN, become missing; the count of those is returned.
func integerFrom[T constraints.Integer | constraints.Float](out []int32, a valuer[T], off int) (coerced int) {
	for i := range out {
		row := off + i
		if a.IsNull(row) {
			out[i] = vector.NAInteger
			continue
		}
		v := a.Value(row)
		if x := float64(v); math.IsNaN(x) || x <= math.MinInt32 || x > math.MaxInt32 {
			out[i] = vector.NAInteger
			coerced++
			continue
		}
		out[i] = int32(v)
	}
	return coerced
}

func convertDouble(src ArraySlice, dst VectorSlice, ctx *leafContext) error {
	out, err := destination[*vector.Double](dst, "double")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAReal)
	case *array.Boolean:
		for i := range values {
			switch row := off + i; {
			case a.IsNull(row):
				values[i] = vector.NAReal
			case a.Value(row):
				values[i] = 1
			default:
				values[i] = 0
			}
		}
	case *array.Int8:
		doubleFrom[int8](values, a, off)
	case *array.Int16:
		doubleFrom[int16](values, a, off)
	case *array.Int32:
		doubleFrom[int32](values, a, off)
	case *array.Int64:
		doubleFrom[int64](values, a, off)
		ctx.warnCoerced("integers beyond 2^53 lost precision", countInexact(values), a.DataType())
	case *array.Uint8:
		doubleFrom[uint8](values, a, off)
	case *array.Uint16:
		doubleFrom[uint16](values, a, off)
	case *array.Uint32:
		doubleFrom[uint32](values, a, off)
	case *array.Uint64:
		doubleFrom[uint64](values, a, off)
		ctx.warnCoerced("integers beyond 2^53 lost precision", countInexact(values), a.DataType())
	case *array.Float32:
		doubleFrom[float32](values, a, off)
	case *array.Float64:
		doubleFrom[float64](values, a, off)
	case *array.Float16:
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = float64(a.Value(row).Float32())
			}
		}
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = a.Value(row).ToFloat64(scale)
			}
		}
	case *array.Decimal256:
		scale := a.DataType().(*arrow.Decimal256Type).Scale
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = a.Value(row).ToFloat64(scale)
			}
		}
	default:
		return unsupportedSource("double", src)
	}
	return nil
}

func doubleFrom[T constraints.Integer | constraints.Float](out []float64, a valuer[T], off int) {
	for i := range out {
		if row := off + i; a.IsNull(row) {
			out[i] = vector.NAReal
		} else {
			out[i] = float64(a.Value(row))
		}
	}
}

func countInexact(values []float64) (n int) {
	for _, x := range values {
		if math.Abs(x) > maxExactDouble {
			n++
		}
	}
	return n
}

func convertInt64(src ArraySlice, dst VectorSlice, ctx *leafContext) error {
	out, err := destination[*vector.Double](dst, "int64")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	coerced := 0
	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAInt64)
	case *array.Boolean:
		for i := range values {
			switch row := off + i; {
			case a.IsNull(row):
				values[i] = vector.NAInt64
			case a.Value(row):
				values[i] = math.Float64frombits(1)
			default:
				values[i] = 0
			}
		}
	case *array.Int8:
		coerced = int64From[int8](values, a, off)
	case *array.Int16:
		coerced = int64From[int16](values, a, off)
	case *array.Int32:
		coerced = int64From[int32](values, a, off)
	case *array.Int64:
		coerced = int64From[int64](values, a, off)
	case *array.Uint8:
		coerced = int64From[uint8](values, a, off)
	case *array.Uint16:
		coerced = int64From[uint16](values, a, off)
	case *array.Uint32:
		coerced = int64From[uint32](values, a, off)
	case *array.Uint64:
		coerced = int64From[uint64](values, a, off)
	default:
		return unsupportedSource("int64", src)
	}
	ctx.warnCoerced("values outside the int64 range materialized as missing", coerced, src.Array.DataType())
	return nil
}

// int64From stores integers in the bits of float64 values. Unsigned values
// above math.MaxInt64, and math.MinInt64 which is the missing value, become
// missing.
func int64From[T constraints.Integer](out []float64, a valuer[T], off int) (coerced int) {
	for i := range out {
		row := off + i
		if a.IsNull(row) {
			out[i] = vector.NAInt64
			continue
		}
		v := a.Value(row)
		if (v > 0 && uint64(v) > math.MaxInt64) || (v < 0 && int64(v) == math.MinInt64) {
			out[i] = vector.NAInt64
			coerced++
			continue
		}
		out[i] = math.Float64frombits(uint64(int64(v)))
	}
	return coerced
}
