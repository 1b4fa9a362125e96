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

// Package arrdata exports records ready to be used for tests.
package arrdata

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

var (
	Records     = make(map[string][]arrow.Record)
	RecordNames []string
)

func init() {
	Records["primitives"] = makePrimitiveRecords()
	Records["strings"] = makeStringsRecords()
	Records["temporal"] = makeTemporalRecords()
	Records["structs"] = makeStructsRecords()
	Records["lists"] = makeListsRecords()
	Records["dictionaries"] = makeDictionariesRecords()

	for k := range Records {
		RecordNames = append(RecordNames, k)
	}
	sort.Strings(RecordNames)
}

func makePrimitiveRecords() []arrow.Record {
	mem := memory.NewGoAllocator()

	meta := arrow.NewMetadata(
		[]string{"k1", "k2"},
		[]string{"v1", "v2"},
	)

	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "bools", Type: arrow.FixedWidthTypes.Boolean, Nullable: true},
			{Name: "int8s", Type: arrow.PrimitiveTypes.Int8, Nullable: true},
			{Name: "int32s", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
			{Name: "int64s", Type: arrow.PrimitiveTypes.Int64, Nullable: true},
			{Name: "uint32s", Type: arrow.PrimitiveTypes.Uint32, Nullable: true},
			{Name: "float64s", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		}, &meta,
	)

	mask := []bool{true, false, true}
	chunks := [][]arrow.Array{
		{
			arrayOf(mem, []bool{true, false, false}, mask),
			arrayOf(mem, []int8{-1, -2, -3}, mask),
			arrayOf(mem, []int32{-1, -2, -3}, mask),
			arrayOf(mem, []int64{-1, -2, -3}, mask),
			arrayOf(mem, []uint32{1, 2, 3}, mask),
			arrayOf(mem, []float64{1.5, 2.5, 3.5}, mask),
		},
		{
			arrayOf(mem, []bool{true, false, false}, mask),
			arrayOf(mem, []int8{-11, -12, -13}, mask),
			arrayOf(mem, []int32{-11, -12, -13}, mask),
			arrayOf(mem, []int64{-11, -12, -13}, mask),
			arrayOf(mem, []uint32{11, 12, 13}, mask),
			arrayOf(mem, []float64{11.5, 12.5, 13.5}, mask),
		},
	}

	return makeRecords(schema, chunks)
}

func makeStringsRecords() []arrow.Record {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "strings", Type: arrow.BinaryTypes.String, Nullable: true},
			{Name: "bytes", Type: arrow.BinaryTypes.Binary, Nullable: true},
		}, nil,
	)

	mask := []bool{true, false, true}
	chunks := [][]arrow.Array{
		{
			arrayOf(mem, []string{"1é", "2", "3"}, mask),
			arrayOf(mem, [][]byte{[]byte("1é"), []byte("2"), []byte("3")}, mask),
		},
	}

	return makeRecords(schema, chunks)
}

func makeTemporalRecords() []arrow.Record {
	mem := memory.NewGoAllocator()
	tsType := &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}
	schema := arrow.NewSchema(
		[]arrow.Field{
			{Name: "dates", Type: arrow.FixedWidthTypes.Date32, Nullable: true},
			{Name: "timestamps", Type: tsType, Nullable: true},
			{Name: "durations", Type: arrow.FixedWidthTypes.Duration_s, Nullable: true},
		}, nil,
	)

	mask := []bool{true, false, true}

	tsb := array.NewTimestampBuilder(mem, tsType)
	defer tsb.Release()
	tsb.AppendValues([]arrow.Timestamp{1500, 0, 86400000}, mask)

	chunks := [][]arrow.Array{
		{
			arrayOf(mem, []arrow.Date32{0, 1, 19000}, mask),
			tsb.NewArray(),
			arrayOf(mem, []arrow.Duration{90, 0, 3600}, mask),
		},
	}

	return makeRecords(schema, chunks)
}

func makeStructsRecords() []arrow.Record {
	mem := memory.NewGoAllocator()

	dtype := arrow.StructOf(
		arrow.Field{Name: "i", Type: arrow.PrimitiveTypes.Int32, Nullable: true},
		arrow.Field{Name: "s", Type: arrow.BinaryTypes.String, Nullable: true},
	)
	schema := arrow.NewSchema([]arrow.Field{{Name: "point", Type: dtype, Nullable: true}}, nil)

	chunks := [][]arrow.Array{
		{
			structOf(dtype, []arrow.Array{
				arrayOf(mem, []int32{1, 2}, nil),
				arrayOf(mem, []string{"a", ""}, []bool{true, false}),
			}),
		},
	}

	return makeRecords(schema, chunks)
}

func makeListsRecords() []arrow.Record {
	mem := memory.NewGoAllocator()
	dtype := arrow.ListOf(arrow.PrimitiveTypes.Int32)
	schema := arrow.NewSchema([]arrow.Field{{Name: "list_nullable", Type: dtype, Nullable: true}}, nil)

	bldr := array.NewListBuilder(mem, arrow.PrimitiveTypes.Int32)
	defer bldr.Release()
	vb := bldr.ValueBuilder().(*array.Int32Builder)

	bldr.Append(true)
	vb.AppendValues([]int32{1, 2}, nil)
	bldr.AppendNull()
	bldr.Append(true)

	chunks := [][]arrow.Array{{bldr.NewArray()}}
	return makeRecords(schema, chunks)
}

func makeDictionariesRecords() []arrow.Record {
	mem := memory.NewGoAllocator()
	dtype := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int8, ValueType: arrow.BinaryTypes.String}
	schema := arrow.NewSchema([]arrow.Field{{Name: "levels", Type: dtype, Nullable: true}}, nil)

	bldr := array.NewDictionaryBuilder(mem, dtype).(*array.BinaryDictionaryBuilder)
	defer bldr.Release()
	for _, v := range []string{"lo", "hi", "lo"} {
		if err := bldr.AppendString(v); err != nil {
			panic(err)
		}
	}
	bldr.AppendNull()

	chunks := [][]arrow.Array{{bldr.NewArray()}}
	return makeRecords(schema, chunks)
}

func makeRecords(schema *arrow.Schema, chunks [][]arrow.Array) []arrow.Record {
	defer func() {
		for _, chunk := range chunks {
			for _, col := range chunk {
				col.Release()
			}
		}
	}()

	recs := make([]arrow.Record, len(chunks))
	for i, chunk := range chunks {
		recs[i] = array.NewRecord(schema, chunk, -1)
	}
	return recs
}

func arrayOf(mem memory.Allocator, a interface{}, valids []bool) arrow.Array {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	switch a := a.(type) {
	case []bool:
		bldr := array.NewBooleanBuilder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []int8:
		bldr := array.NewInt8Builder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []int32:
		bldr := array.NewInt32Builder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []int64:
		bldr := array.NewInt64Builder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []uint32:
		bldr := array.NewUint32Builder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []float64:
		bldr := array.NewFloat64Builder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []string:
		bldr := array.NewStringBuilder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case [][]byte:
		bldr := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []arrow.Date32:
		bldr := array.NewDate32Builder(mem)
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	case []arrow.Duration:
		bldr := array.NewDurationBuilder(mem, arrow.FixedWidthTypes.Duration_s.(*arrow.DurationType))
		defer bldr.Release()

		bldr.AppendValues(a, valids)
		return bldr.NewArray()

	default:
		panic(fmt.Errorf("arrdata: invalid data slice type %T", a))
	}
}

func structOf(dtype *arrow.StructType, fields []arrow.Array) *array.Struct {
	defer func() {
		for _, f := range fields {
			f.Release()
		}
	}()
	names := make([]string, dtype.NumFields())
	for i, f := range dtype.Fields() {
		names[i] = f.Name
	}
	arr, err := array.NewStructArray(fields, names)
	if err != nil {
		panic(err)
	}
	return arr
}
