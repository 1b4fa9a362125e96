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
	"errors"
	"testing"

	"github.com/amoeba/arrow-nanoarrow/materialize"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/extensions"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionColumnUsesFallback(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	ids := fromJSON(t, mem, arrow.PrimitiveTypes.Int32, `[1, 2]`)
	defer ids.Release()

	key := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	bldr := extensions.NewUUIDBuilder(mem)
	defer bldr.Release()
	bldr.Append(key)
	bldr.AppendNull()
	keys := bldr.NewArray()
	defer keys.Release()

	arr, err := array.NewStructArray([]arrow.Array{ids, keys}, []string{"id", "key"})
	require.NoError(t, err)
	defer arr.Release()

	var leaves []vector.SemanticType
	got, err := materialize.ConvertArray(arr, nil, materialize.WithLeafHook(func(st vector.SemanticType) {
		leaves = append(leaves, st)
	}))
	require.NoError(t, err)
	assert.Equal(t, []vector.SemanticType{vector.TypeInteger}, leaves)

	tbl := got.(*vector.Table)
	assert.Equal(t, []int32{1, 2}, tbl.Column(0).(*vector.Integer).Values)
	s := tbl.Column(1).(*vector.String)
	assert.Equal(t, key.String(), s.Values[0])
	assert.True(t, s.IsNA(1))
}

func TestMetadataExtensionUsesFallback(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Int32, `[4, null, 6]`)
	defer arr.Release()

	field := arrow.Field{
		Name:     "tagged",
		Type:     arrow.PrimitiveTypes.Int32,
		Nullable: true,
		Metadata: arrow.NewMetadata([]string{"ARROW:extension:name"}, []string{"example.tagged"}),
	}

	var (
		leafCalls int
		seen      arrow.Field
	)
	fb := materialize.FallbackFunc(func(ref *materialize.ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error) {
		seen = ref.Field()
		out := vector.NewInteger(int(length))
		out.Values = []int32{40, vector.NAInteger, 60}[offset : offset+length]
		return out, nil
	})
	conv, err := materialize.NewConverter(field, nil,
		materialize.WithFallback(fb),
		materialize.WithLeafHook(func(vector.SemanticType) { leafCalls++ }))
	require.NoError(t, err)
	defer conv.Close()

	assert.Equal(t, vector.TypeInteger, vector.SemanticTypeOf(conv.Prototype()))
	require.NoError(t, conv.SetArray(arr))
	require.NoError(t, conv.Reserve(3))
	n, err := conv.MaterializeN(3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	conv.Finalize()

	assert.True(t, vector.Equal(integers(40, vector.NAInteger, 60), conv.Result()))
	assert.Zero(t, leafCalls)
	assert.Equal(t, "tagged", seen.Name)
}

func TestArrayRefRevoked(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Float64, `[1.5, 2.5, 3.5]`)
	defer arr.Release()

	money := vector.WithAttrs(vector.NewDouble(0), vector.Attrs{Class: []string{"money"}})

	var (
		kept    *materialize.ArrayRef
		windows [][2]int64
	)
	fb := materialize.FallbackFunc(func(ref *materialize.ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error) {
		kept = ref
		windows = append(windows, [2]int64{offset, length})
		src, err := ref.Array()
		if err != nil {
			return nil, err
		}
		out := vector.WithAttrs(vector.NewDouble(int(length)), ptype.Attrs().Clone())
		for i := range out.Values {
			out.Values[i] = src.(*array.Float64).Value(int(offset)+i) * 100
		}
		return out, nil
	})

	tail := array.NewSlice(arr, 1, 3)
	defer tail.Release()

	got, err := materialize.ConvertArray(tail, money, materialize.WithFallback(fb))
	require.NoError(t, err)
	assert.Equal(t, []float64{250, 350}, got.(*vector.Double).Values)
	assert.Equal(t, []string{"money"}, got.Attrs().Class)
	assert.Equal(t, [][2]int64{{0, 2}}, windows)

	require.NotNil(t, kept)
	_, err = kept.Array()
	assert.ErrorIs(t, err, materialize.ErrRevoked)
}

func TestRetryHappensOnce(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	dt := arrow.StructOf(arrow.Field{Name: "f", Type: arrow.BinaryTypes.String, Nullable: true})
	arr := fromJSON(t, mem, dt, `[{"f": "a"}, {"f": "z"}]`)
	defer arr.Release()
	ptype := vector.NewTable([]string{"f"}, []vector.Vector{vector.Factor("a", "b")}, 0)

	t.Run("recovers", func(t *testing.T) {
		calls := 0
		fb := materialize.FallbackFunc(func(ref *materialize.ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error) {
			calls++
			out := vector.WithAttrs(vector.NewInteger(int(length)), ptype.Attrs().Clone())
			for i := range out.Values {
				out.Values[i] = vector.NAInteger
			}
			return out, nil
		})
		got, err := materialize.ConvertArray(arr, ptype, materialize.WithFallback(fb))
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, []int32{vector.NAInteger, vector.NAInteger}, got.(*vector.Table).Column(0).(*vector.Integer).Values)
	})

	t.Run("fallback fails", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		fb := materialize.FallbackFunc(func(*materialize.ArrayRef, int64, int64, vector.Vector) (vector.Vector, error) {
			calls++
			return nil, boom
		})
		_, err := materialize.ConvertArray(arr, ptype, materialize.WithFallback(fb))
		require.Error(t, err)
		assert.Equal(t, 1, calls)

		var fe *materialize.FallbackError
		require.ErrorAs(t, err, &fe)
		assert.ErrorIs(t, err, boom)
		assert.True(t, arrow.TypeEqual(arrow.BinaryTypes.String, fe.Type))
	})

	t.Run("native only", func(t *testing.T) {
		calls := 0
		fb := materialize.FallbackFunc(func(*materialize.ArrayRef, int64, int64, vector.Vector) (vector.Vector, error) {
			calls++
			return nil, nil
		})
		_, err := materialize.ConvertArray(arr, ptype, materialize.WithFallback(fb), materialize.WithNativeOnly())
		assert.ErrorIs(t, err, materialize.ErrNotSupported)
		assert.Zero(t, calls)
	})

	t.Run("default fallback", func(t *testing.T) {
		got, err := materialize.ConvertArray(arr, ptype)
		require.Error(t, err)
		assert.Nil(t, got)
		var fe *materialize.FallbackError
		assert.ErrorAs(t, err, &fe)
	})
}

func TestFallbackResultShape(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)

	arr := fromJSON(t, mem, arrow.PrimitiveTypes.Float64, `[1, 2, 3]`)
	defer arr.Release()
	money := vector.WithAttrs(vector.NewDouble(0), vector.Attrs{Class: []string{"money"}})

	short := materialize.FallbackFunc(func(*materialize.ArrayRef, int64, int64, vector.Vector) (vector.Vector, error) {
		return vector.NewDouble(1), nil
	})
	_, err := materialize.ConvertArray(arr, money, materialize.WithFallback(short))
	assert.ErrorIs(t, err, materialize.ErrStructure)

	wrongKind := materialize.FallbackFunc(func(_ *materialize.ArrayRef, _, length int64, _ vector.Vector) (vector.Vector, error) {
		return vector.NewString(int(length)), nil
	})
	_, err = materialize.ConvertArray(arr, money, materialize.WithFallback(wrongKind))
	assert.ErrorIs(t, err, materialize.ErrStructure)
}
