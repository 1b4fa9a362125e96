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

// Package vector provides the host value model that Arrow data is
// materialized into.
//
// A Vector is a mutable, fixed-length container of one storage Kind with
// explicit missing-value sentinels. Semantic types (factors, dates,
// timestamps, durations, 64-bit integers, blobs, typed lists) are expressed
// as classes over a storage kind, see Attrs and SemanticTypeOf.
//
// Record tables (*Table) hold ordered, named columns that share a single
// row count.
package vector

import (
	"fmt"
	"math"
	"slices"
)

// Kind is the storage kind of a Vector.
type Kind int8

const (
	KindNull Kind = iota
	KindLogical
	KindInteger
	KindDouble
	KindString
	KindRaw
	KindList
	KindTable
)

var kindNames = [...]string{
	KindNull:    "null",
	KindLogical: "logical",
	KindInteger: "integer",
	KindDouble:  "double",
	KindString:  "character",
	KindRaw:     "raw",
	KindList:    "list",
	KindTable:   "table",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int8(k))
}

// Missing-value sentinels.
const (
	NALogical int32 = math.MinInt32
	NAInteger int32 = math.MinInt32
)

const naRealBits = 0x7FF00000000007A2

var (
	// NAReal is the missing value of double vectors. It is a NaN with a
	// distinguished payload so that it can be told apart from the result of
	// an invalid arithmetic operation.
	NAReal = math.Float64frombits(naRealBits)
	// NAInt64 is the missing value of 64-bit integer vectors, whose values
	// are stored in the bits of a float64.
	NAInt64 = math.Float64frombits(uint64(1) << 63)
)

// IsNAReal reports whether f is the NAReal sentinel.
func IsNAReal(f float64) bool {
	return math.IsNaN(f) && uint32(math.Float64bits(f)) == 1954
}

// Vector is a host container.
type Vector interface {
	Kind() Kind
	// Len returns the number of elements, or the number of rows for a *Table.
	Len() int
	Attrs() *Attrs
}

// New allocates a zero-valued vector of the given storage kind. Tables are
// not allocated by New, see NewTable.
func New(kind Kind, n int) (Vector, error) {
	switch kind {
	case KindNull:
		return &Null{}, nil
	case KindLogical:
		return NewLogical(n), nil
	case KindInteger:
		return NewInteger(n), nil
	case KindDouble:
		return NewDouble(n), nil
	case KindString:
		return NewString(n), nil
	case KindRaw:
		return NewRaw(n), nil
	case KindList:
		return NewList(n), nil
	}
	return nil, fmt.Errorf("vector: cannot allocate %s", kind)
}

// Null is the empty vector.
type Null struct{ attrs Attrs }

func (*Null) Kind() Kind { return KindNull }
func (*Null) Len() int { return 0 }
func (v *Null) Attrs() *Attrs { return &v.attrs }

// Logical is a vector of three-valued booleans stored as int32: 0, 1 or
// NALogical.
type Logical struct {
	attrs  Attrs
	Values []int32
}

func NewLogical(n int) *Logical { return &Logical{Values: make([]int32, n)} }

func (*Logical) Kind() Kind { return KindLogical }
func (v *Logical) Len() int { return len(v.Values) }
func (v *Logical) Attrs() *Attrs { return &v.attrs }
func (v *Logical) IsNA(i int) bool { return v.Values[i] == NALogical }

// Integer is a vector of 32-bit integers. Factors are integer vectors of
// 1-based level codes.
type Integer struct {
	attrs  Attrs
	Values []int32
}

func NewInteger(n int) *Integer { return &Integer{Values: make([]int32, n)} }

func (*Integer) Kind() Kind { return KindInteger }
func (v *Integer) Len() int { return len(v.Values) }
func (v *Integer) Attrs() *Attrs { return &v.attrs }
func (v *Integer) IsNA(i int) bool { return v.Values[i] == NAInteger }

// Double is a vector of float64. Dates, timestamps, durations and 64-bit
// integers are double vectors with a class.
type Double struct {
	attrs  Attrs
	Values []float64
}

func NewDouble(n int) *Double { return &Double{Values: make([]float64, n)} }

func (*Double) Kind() Kind { return KindDouble }
func (v *Double) Len() int { return len(v.Values) }
func (v *Double) Attrs() *Attrs { return &v.attrs }

func (v *Double) IsNA(i int) bool {
	if v.attrs.Inherits(ClassInt64) {
		return math.Float64bits(v.Values[i]) == math.Float64bits(NAInt64)
	}
	return IsNAReal(v.Values[i])
}

// Int64 returns element i of a 64-bit integer vector.
func (v *Double) Int64(i int) int64 { return int64(math.Float64bits(v.Values[i])) }

// SetInt64 stores x as element i of a 64-bit integer vector.
func (v *Double) SetInt64(i int, x int64) { v.Values[i] = math.Float64frombits(uint64(x)) }

// String is a vector of strings with a per-element missing flag.
type String struct {
	attrs  Attrs
	Values []string
	na     []bool
}

func NewString(n int) *String {
	return &String{Values: make([]string, n), na: make([]bool, n)}
}

func (*String) Kind() Kind { return KindString }
func (v *String) Len() int { return len(v.Values) }
func (v *String) Attrs() *Attrs { return &v.attrs }
func (v *String) IsNA(i int) bool { return v.na[i] }

func (v *String) Set(i int, s string) {
	v.Values[i] = s
	v.na[i] = false
}

func (v *String) SetNA(i int) {
	v.Values[i] = ""
	v.na[i] = true
}

// Raw is a vector of bytes. It has no missing value.
type Raw struct {
	attrs  Attrs
	Values []byte
}

func NewRaw(n int) *Raw { return &Raw{Values: make([]byte, n)} }

func (*Raw) Kind() Kind { return KindRaw }
func (v *Raw) Len() int { return len(v.Values) }
func (v *Raw) Attrs() *Attrs { return &v.attrs }

// List is a vector of vectors. A nil element is an absent value.
type List struct {
	attrs  Attrs
	Values []Vector
}

func NewList(n int) *List { return &List{Values: make([]Vector, n)} }

func (*List) Kind() Kind { return KindList }
func (v *List) Len() int { return len(v.Values) }
func (v *List) Attrs() *Attrs { return &v.attrs }
func (v *List) IsNA(i int) bool { return v.Values[i] == nil }

// Table is a record table: ordered named columns sharing one row count.
type Table struct {
	attrs Attrs
	names []string
	cols  []Vector
	rows  RowNames
}

// NewTable creates a table over cols. Every column must have nrow
// elements.
func NewTable(names []string, cols []Vector, nrow int) *Table {
	if len(names) != len(cols) {
		panic(fmt.Sprintf("vector: %d names for %d columns", len(names), len(cols)))
	}
	for i, col := range cols {
		if col.Len() != nrow {
			panic(fmt.Sprintf("vector: column %q has %d rows, want %d", names[i], col.Len(), nrow))
		}
	}
	return &Table{
		attrs: Attrs{Class: []string{ClassTable}},
		names: slices.Clone(names),
		cols:  slices.Clone(cols),
		rows:  RowNames{n: int64(nrow)},
	}
}

func (*Table) Kind() Kind { return KindTable }
func (t *Table) Len() int { return int(t.rows.n) }
func (t *Table) Attrs() *Attrs { return &t.attrs }
func (t *Table) NumCols() int { return len(t.cols) }
func (t *Table) NumRows() int64 { return t.rows.n }
func (t *Table) Column(i int) Vector { return t.cols[i] }
func (t *Table) Names() []string { return t.names }
func (t *Table) RowNames() RowNames { return t.rows }

// ColumnByName returns the first column called name, or nil.
func (t *Table) ColumnByName(name string) Vector {
	if i := slices.Index(t.names, name); i >= 0 {
		return t.cols[i]
	}
	return nil
}

// RowNames is the row-identity metadata of a table. Row counts that fit in
// an int32 are stored compactly; larger ones are deferred and labels are
// produced on demand.
type RowNames struct {
	n int64
}

func (r RowNames) Len() int64 { return r.n }

// Compact reports whether the row names use the compact form.
func (r RowNames) Compact() bool { return r.n <= math.MaxInt32 }

// Label returns the label of row i.
func (r RowNames) Label(i int64) string { return fmt.Sprintf("%d", i+1) }
