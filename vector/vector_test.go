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

package vector_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNAReal(t *testing.T) {
	assert.True(t, vector.IsNAReal(vector.NAReal))
	assert.False(t, vector.IsNAReal(math.NaN()))
	assert.False(t, vector.IsNAReal(0))

	d := vector.NewDouble(2)
	d.Values[0] = vector.NAReal
	d.Values[1] = math.NaN()
	assert.True(t, d.IsNA(0))
	assert.False(t, d.IsNA(1))

	i64 := vector.WithAttrs(vector.NewDouble(2), vector.Int64().Attrs().Clone())
	i64.Values[0] = vector.NAInt64
	i64.SetInt64(1, -7)
	assert.True(t, i64.IsNA(0))
	assert.False(t, i64.IsNA(1))
	assert.Equal(t, int64(-7), i64.Int64(1))
}

func TestSemanticTypeOf(t *testing.T) {
	tests := []struct {
		v    vector.Vector
		want vector.SemanticType
	}{
		{vector.NewLogical(0), vector.TypeLogical},
		{vector.Unspecified(), vector.TypeUnspecified},
		{vector.NewInteger(0), vector.TypeInteger},
		{vector.Factor("a"), vector.TypeFactor},
		{vector.NewDouble(0), vector.TypeDouble},
		{vector.Date(), vector.TypeDate},
		{vector.Timestamp("UTC"), vector.TypeTimestamp},
		{vector.Duration(vector.UnitSeconds), vector.TypeDuration},
		{vector.Int64(), vector.TypeInt64},
		{vector.NewString(0), vector.TypeString},
		{vector.Blob(), vector.TypeBlob},
		{vector.ListOf(nil), vector.TypeListOf},
		{vector.NewList(0), vector.TypeOther},
		{vector.NewRaw(0), vector.TypeOther},
		{vector.NewTable(nil, nil, 0), vector.TypeTable},
		{vector.WithAttrs(vector.NewDouble(0), vector.Attrs{Class: []string{"money"}}), vector.TypeOther},
		{nil, vector.TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, vector.SemanticTypeOf(tt.v))
		})
	}
}

func TestIsFactor(t *testing.T) {
	ok, n := vector.IsFactor(vector.Factor("a", "b"))
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	ok, _ = vector.IsFactor(vector.NewInteger(3))
	assert.False(t, ok)
	assert.True(t, vector.IsTable(vector.NewTable(nil, nil, 3)))
	assert.False(t, vector.IsTable(vector.NewList(3)))
}

func TestTableRowNames(t *testing.T) {
	tbl := vector.NewTable([]string{"x"}, []vector.Vector{vector.NewInteger(4)}, 4)
	assert.Equal(t, int64(4), tbl.NumRows())
	assert.True(t, tbl.RowNames().Compact())
	assert.Equal(t, "4", tbl.RowNames().Label(3))
	assert.NotNil(t, tbl.ColumnByName("x"))
	assert.Nil(t, tbl.ColumnByName("y"))

	assert.Panics(t, func() {
		vector.NewTable([]string{"x"}, []vector.Vector{vector.NewInteger(2)}, 4)
	})
}

func TestEqualAndSlice(t *testing.T) {
	s := vector.NewString(3)
	s.Set(0, "a")
	s.SetNA(1)
	s.Set(2, "c")

	d := vector.NewDouble(3)
	d.Values = []float64{1, vector.NAReal, math.NaN()}

	tbl := vector.NewTable([]string{"s", "d"}, []vector.Vector{s, d}, 3)
	sliced := vector.Slice(tbl, 1, 2)
	require.Equal(t, 2, sliced.Len())

	want := vector.NewString(2)
	want.SetNA(0)
	want.Set(1, "c")
	wantD := vector.NewDouble(2)
	wantD.Values = []float64{vector.NAReal, math.NaN()}
	assert.True(t, vector.Equal(sliced, vector.NewTable([]string{"s", "d"}, []vector.Vector{want, wantD}, 2)))

	other := vector.NewDouble(2)
	other.Values = []float64{math.NaN(), math.NaN()}
	assert.False(t, vector.Equal(wantD, other))
	assert.False(t, vector.Equal(vector.Date(), vector.NewDouble(0)))
}

func TestSignature(t *testing.T) {
	ptype := vector.NewTable(
		[]string{"f", "l"},
		[]vector.Vector{vector.Factor("a", "b"), vector.ListOf(vector.Timestamp("UTC"))},
		0)
	assert.Equal(t,
		`table<table>("f":integer<factor>[a,b],"l":list<list_of>(double<timestamp>{tz=UTC}))`,
		vector.Signature(ptype))
	assert.Equal(t, "list<list_of>(?)", vector.Signature(vector.ListOf(nil)))
}

func TestFormat(t *testing.T) {
	f := vector.WithAttrs(vector.NewInteger(3), vector.Factor("lo", "hi").Attrs().Clone())
	f.Values = []int32{2, vector.NAInteger, 1}

	date := vector.WithAttrs(vector.NewDouble(1), vector.Date().Attrs().Clone())
	date.Values[0] = 19000

	ts := vector.WithAttrs(vector.NewDouble(1), vector.Timestamp("UTC").Attrs().Clone())
	ts.Values[0] = 1.5

	blob := vector.WithAttrs(vector.NewList(2), vector.Blob().Attrs().Clone())
	blob.Values[0] = &vector.Raw{Values: []byte("abc")}

	var buf bytes.Buffer
	require.NoError(t, vector.Format(&buf, vector.NewTable(
		[]string{"f"}, []vector.Vector{f}, 3)))
	assert.Equal(t, "table: 3 rows, 1 columns\n  col[0] \"f\" <factor>: [hi NA lo]\n", buf.String())

	assert.Equal(t, "[2022-01-08]", vector.FormatValues(date))
	assert.Equal(t, "[1970-01-01T00:00:01.5Z]", vector.FormatValues(ts))
	assert.Equal(t, "[blob[3 B] NA]", vector.FormatValues(blob))
}

func TestMarshalJSON(t *testing.T) {
	l := vector.NewLogical(3)
	l.Values = []int32{1, 0, vector.NALogical}

	d := vector.NewDouble(3)
	d.Values = []float64{1.5, vector.NAReal, math.Inf(1)}

	s := vector.NewString(2)
	s.Set(0, "x")
	s.SetNA(1)

	inner := vector.NewInteger(2)
	inner.Values = []int32{1, 2}
	lst := vector.WithAttrs(vector.NewList(2), vector.ListOf(nil).Attrs().Clone())
	lst.Values[0] = inner

	tbl := vector.NewTable([]string{"l", "d"}, []vector.Vector{l, d}, 3)

	out, err := vector.MarshalJSON(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `{"l":[true,false,null],"d":[1.5,null,null]}`, string(out))

	out, err = vector.MarshalJSON(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["x",null]`, string(out))

	out, err = vector.MarshalJSON(lst)
	require.NoError(t, err)
	assert.JSONEq(t, `[[1,2],null]`, string(out))
}
