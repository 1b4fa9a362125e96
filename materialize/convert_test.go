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

package materialize_test

import (
	"math"
	"testing"

	"github.com/amoeba/arrow-nanoarrow/materialize"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConvertArrayScalars(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	logical := vector.NewLogical(3)
	copy(logical.Values, []int32{1, vector.NALogical, 0})

	doubles := vector.NewDouble(3)
	copy(doubles.Values, []float64{1.5, vector.NAReal, -2})

	chars := strs("a", "", "c")
	chars.SetNA(1)

	dates := vector.WithAttrs(vector.NewDouble(2), vector.Date().Attrs().Clone())
	copy(dates.Values, []float64{1, vector.NAReal})

	stamps := vector.WithAttrs(vector.NewDouble(2), vector.Timestamp("UTC").Attrs().Clone())
	copy(stamps.Values, []float64{1.5, vector.NAReal})

	durations := vector.WithAttrs(vector.NewDouble(2), vector.Duration(vector.UnitSeconds).Attrs().Clone())
	copy(durations.Values, []float64{90, vector.NAReal})

	tests := []struct {
		name  string
		dt    arrow.DataType
		data  string
		ptype vector.Vector
		want  vector.Vector
	}{
		{"int32", arrow.PrimitiveTypes.Int32, `[1, null, 3]`, nil, integers(1, vector.NAInteger, 3)},
		{"uint8 as double", arrow.PrimitiveTypes.Uint8, `[1, 2]`, vector.NewDouble(0), &vector.Double{Values: []float64{1, 2}}},
		{"bool", arrow.FixedWidthTypes.Boolean, `[true, null, false]`, nil, logical},
		{"int16 as logical", arrow.PrimitiveTypes.Int16, `[5, null, 0]`, vector.NewLogical(0), logical},
		{"float64", arrow.PrimitiveTypes.Float64, `[1.5, null, -2]`, nil, doubles},
		{"float32 as integer", arrow.PrimitiveTypes.Float32, `[1.9, -2.5]`, vector.NewInteger(0), integers(1, -2)},
		{"string", arrow.BinaryTypes.String, `["a", null, "c"]`, nil, chars},
		{"large string", arrow.BinaryTypes.LargeString, `["a", null, "c"]`, nil, chars},
		{"date32", arrow.FixedWidthTypes.Date32, `["1970-01-02", null]`, nil, dates},
		{"timestamp ms", &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}, `[1500, null]`, nil, stamps},
		{"duration ms", &arrow.DurationType{Unit: arrow.Millisecond}, `[90000, null]`, nil, durations},
		{"null as unspecified", arrow.Null, `[null, null]`, nil,
			vector.WithAttrs(&vector.Logical{Values: []int32{vector.NALogical, vector.NALogical}}, vector.Unspecified().Attrs().Clone())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := fromJSON(t, mem, tt.dt, tt.data)
			defer arr.Release()

			got, err := materialize.ConvertArray(arr, tt.ptype)
			require.NoError(t, err)
			assert.True(t, vector.Equal(tt.want, got), "got %s", vector.FormatValues(got))
		})
	}
}

func TestConvertBlob(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.BinaryTypes.Binary, `["YWJj", null, ""]`)
	defer arr.Release()

	got, err := materialize.ConvertArray(arr, nil)
	require.NoError(t, err)
	assert.Equal(t, vector.TypeBlob, vector.SemanticTypeOf(got))
	blob := got.(*vector.List)
	assert.Equal(t, []byte("abc"), blob.Values[0].(*vector.Raw).Values)
	assert.Nil(t, blob.Values[1])
	assert.Equal(t, 0, blob.Values[2].Len())
}

func TestIntegerRangeCoercion(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	core, logs := observer.New(zapcore.WarnLevel)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int64, `[1, 3000000000, null, -2147483648]`)
	defer arr.Release()

	got, err := materialize.ConvertArray(arr, vector.NewInteger(0), materialize.WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, []int32{1, vector.NAInteger, vector.NAInteger, vector.NAInteger}, got.(*vector.Integer).Values)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["count"])
}

func TestInt64Modes(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int64, `[1152921504606846977, null]`)
	defer arr.Release()

	got, err := materialize.ConvertArray(arr, nil, materialize.WithInt64(materialize.Int64AsOpaque))
	require.NoError(t, err)
	require.Equal(t, vector.TypeInt64, vector.SemanticTypeOf(got))
	i64 := got.(*vector.Double)
	assert.Equal(t, int64(1<<60+1), i64.Int64(0))
	assert.True(t, i64.IsNA(1))

	got, err = materialize.ConvertArray(arr, nil)
	require.NoError(t, err)
	require.Equal(t, vector.TypeDouble, vector.SemanticTypeOf(got))
	assert.Equal(t, math.Ldexp(1, 60), got.(*vector.Double).Values[0])
}

func TestConvertFactor(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	dict := fromJSON(t, mem,
		&arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.BinaryTypes.String},
		`["lo", "hi", null, "lo"]`)
	defer dict.Release()
	plain := fromJSON(t, mem, arrow.BinaryTypes.String, `["lo", "hi", null, "lo"]`)
	defer plain.Release()

	want := vector.WithAttrs(integers(1, 2, vector.NAInteger, 1), vector.Factor("lo", "hi").Attrs().Clone())
	for _, arr := range []arrow.Array{dict, plain} {
		got, err := materialize.ConvertArray(arr, vector.Factor("lo", "hi"), materialize.WithNativeOnly())
		require.NoError(t, err)
		assert.True(t, vector.Equal(want, got), "got %s", vector.FormatValues(got))
	}

	// dictionaries of strings materialize as plain strings by default
	got, err := materialize.ConvertArray(dict, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"lo", "hi", "", "lo"}, got.(*vector.String).Values)

	_, err = materialize.ConvertArray(plain, vector.Factor("lo"), materialize.WithNativeOnly())
	assert.ErrorIs(t, err, materialize.ErrNotSupported)
}

func TestUnspecified(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int32, `[null, null, 3]`)
	defer arr.Release()

	dst := vector.WithAttrs(vector.NewLogical(2), vector.Unspecified().Attrs().Clone())
	require.NoError(t, materialize.MaterializeInto(arr, 0, 2, dst, 0))
	assert.Equal(t, []int32{vector.NALogical, vector.NALogical}, dst.Values)

	_, err := materialize.ConvertArray(arr, vector.Unspecified(), materialize.WithNativeOnly())
	assert.ErrorIs(t, err, materialize.ErrTypeMismatch)
}

func TestMaterializeIntoWindow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int32, `[7, 8, 9]`)
	defer arr.Release()

	dst := integers(0, 0, 0, 0, 0)
	require.NoError(t, materialize.MaterializeInto(arr, 1, 2, dst, 2))
	assert.Equal(t, []int32{0, 0, 8, 9, 0}, dst.Values)

	err := materialize.MaterializeInto(arr, 0, 3, dst, 3)
	assert.ErrorIs(t, err, materialize.ErrStructure)
	err = materialize.MaterializeInto(arr, 2, 2, dst, 0)
	assert.ErrorIs(t, err, materialize.ErrStructure)
	assert.Equal(t, []int32{0, 0, 8, 9, 0}, dst.Values)
}

func TestConverterLifecycle(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int32, `[1, 2, 3]`)
	defer arr.Release()

	conv, err := materialize.NewConverter(arrow.Field{Type: arr.DataType()}, nil)
	require.NoError(t, err)
	defer conv.Close()

	_, err = conv.MaterializeN(1)
	assert.ErrorIs(t, err, materialize.ErrStructure)

	require.NoError(t, conv.SetArray(arr))
	require.NoError(t, conv.Reserve(10))

	n, err := conv.MaterializeN(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = conv.MaterializeN(5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = conv.MaterializeN(5)
	require.NoError(t, err)
	assert.Zero(t, n)

	conv.Finalize()
	first := conv.Result()
	assert.True(t, vector.Equal(integers(1, 2, 3), first))

	// converting the same array again yields an equal, independent result
	require.NoError(t, conv.SetArray(arr))
	require.NoError(t, conv.Reserve(3))
	_, err = conv.MaterializeN(3)
	require.NoError(t, err)
	conv.Finalize()
	second := conv.Result()
	assert.True(t, vector.Equal(first, second))
	second.(*vector.Integer).Values[0] = 42
	assert.Equal(t, int32(1), first.(*vector.Integer).Values[0])

	other := fromJSON(t, mem, arrow.BinaryTypes.String, `["x"]`)
	defer other.Release()
	assert.ErrorIs(t, conv.SetArray(other), materialize.ErrStructure)
}
