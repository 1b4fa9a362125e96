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

package generic_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/amoeba/arrow-nanoarrow/generic"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/extensions"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromJSON(t *testing.T, mem memory.Allocator, dt arrow.DataType, data string) arrow.Array {
	t.Helper()
	arr, _, err := array.FromJSON(mem, dt, strings.NewReader(data))
	require.NoError(t, err)
	return arr
}

func TestConvertWindow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int32, `[1, 2, null, 4]`)
	defer arr.Release()

	out, err := generic.Convert(arr, 1, 3, vector.NewDouble(0))
	require.NoError(t, err)
	d := out.(*vector.Double)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, 2.0, d.Values[0])
	assert.True(t, d.IsNA(1))
	assert.Equal(t, 4.0, d.Values[2])

	_, err = generic.Convert(arr, 2, 3, vector.NewDouble(0))
	assert.Error(t, err)
}

func TestConvertDictionary(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	dt := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.BinaryTypes.String}
	arr := fromJSON(t, mem, dt, `["b", "a", null, "b"]`)
	defer arr.Release()

	out, err := generic.Convert(arr, 0, 4, nil)
	require.NoError(t, err)
	s := out.(*vector.String)
	assert.Equal(t, []string{"b", "a", "", "b"}, s.Values)
	assert.True(t, s.IsNA(2))

	out, err = generic.Convert(arr, 0, 4, vector.Factor("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 1, vector.NAInteger, 2}, out.(*vector.Integer).Values)

	_, err = generic.Convert(arr, 0, 4, vector.Factor("a"))
	assert.True(t, errors.Is(err, generic.ErrIncompatible))
}

func TestConvertDecimal(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, &arrow.Decimal128Type{Precision: 10, Scale: 2}, `["1.25", "-3.50", null]`)
	defer arr.Release()

	out, err := generic.Convert(arr, 0, 3, vector.NewDouble(0))
	require.NoError(t, err)
	d := out.(*vector.Double)
	assert.InDelta(t, 1.25, d.Values[0], 1e-12)
	assert.InDelta(t, -3.5, d.Values[1], 1e-12)
	assert.True(t, d.IsNA(2))

	out, err = generic.Convert(arr, 0, 3, vector.NewString(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"1.25", "-3.5", ""}, out.(*vector.String).Values)
}

func TestConvertUUID(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	bldr := extensions.NewUUIDBuilder(mem)
	defer bldr.Release()
	bldr.Append(id)
	bldr.AppendNull()
	arr := bldr.NewArray()
	defer arr.Release()

	out, err := generic.Convert(arr, 0, 2, nil)
	require.NoError(t, err)
	s := out.(*vector.String)
	assert.Equal(t, id.String(), s.Values[0])
	assert.True(t, s.IsNA(1))

	out, err = generic.Convert(arr, 0, 1, vector.Blob())
	require.NoError(t, err)
	assert.Equal(t, id[:], out.(*vector.List).Values[0].(*vector.Raw).Values)
}

func TestConvertNested(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	dt := arrow.StructOf(
		arrow.Field{Name: "a", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
		arrow.Field{Name: "b", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: true},
	)
	arr := fromJSON(t, mem, dt, `[
		{"a": 1, "b": ["x", "y"]},
		{"a": null, "b": null},
		{"a": 3, "b": []}
	]`)
	defer arr.Release()

	out, err := generic.Convert(arr, 1, 2, nil)
	require.NoError(t, err)
	tbl := out.(*vector.Table)
	require.Equal(t, int64(2), tbl.NumRows())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())

	a := tbl.Column(0).(*vector.Double)
	assert.True(t, a.IsNA(0))
	assert.Equal(t, 3.0, a.Values[1])

	b := tbl.Column(1).(*vector.List)
	assert.Nil(t, b.Values[0])
	require.NotNil(t, b.Values[1])
	assert.Equal(t, 0, b.Values[1].Len())
}

func TestConvertIncompatible(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.BinaryTypes.String, `["1", "x"]`)
	defer arr.Release()

	_, err := generic.Convert(arr, 0, 2, vector.NewDouble(0))
	assert.True(t, errors.Is(err, generic.ErrIncompatible))

	_, err = generic.Convert(arr, 0, 2, vector.NewTable(nil, nil, 0))
	assert.True(t, errors.Is(err, generic.ErrIncompatible))

	_, err = generic.Convert(arr, 0, 2, vector.Unspecified())
	assert.True(t, errors.Is(err, generic.ErrIncompatible))
}

func TestConvertTemporal(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	ts := fromJSON(t, mem, &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}, `[86400500, null]`)
	defer ts.Release()

	out, err := generic.Convert(ts, 0, 2, vector.Date())
	require.NoError(t, err)
	d := out.(*vector.Double)
	assert.Equal(t, 1.0, d.Values[0])
	assert.True(t, d.IsNA(1))

	out, err = generic.Convert(ts, 0, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, vector.TypeTimestamp, vector.SemanticTypeOf(out))
	assert.InDelta(t, 86400.5, out.(*vector.Double).Values[0], 1e-9)

	dur := fromJSON(t, mem, &arrow.DurationType{Unit: arrow.Second}, `[7200]`)
	defer dur.Release()
	out, err = generic.Convert(dur, 0, 1, vector.Duration(vector.UnitHours))
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.(*vector.Double).Values[0])
}
