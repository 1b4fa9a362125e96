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

package vector

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Equal reports whether a and b have the same kind, attributes and values.
// Missing values compare equal to each other, as do NaNs.
func Equal(a, b Vector) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.Len() != b.Len() || !a.Attrs().equal(b.Attrs()) {
		return false
	}

	switch a := a.(type) {
	case *Null:
		return true
	case *Logical:
		return slices.Equal(a.Values, b.(*Logical).Values)
	case *Integer:
		return slices.Equal(a.Values, b.(*Integer).Values)
	case *Double:
		bv := b.(*Double)
		for i, x := range a.Values {
			y := bv.Values[i]
			switch {
			case math.Float64bits(x) == math.Float64bits(y):
			case IsNAReal(x) || IsNAReal(y):
				return false
			case math.IsNaN(x) && math.IsNaN(y):
			case x != y:
				return false
			}
		}
		return true
	case *String:
		bv := b.(*String)
		for i := range a.Values {
			if a.na[i] != bv.na[i] || a.Values[i] != bv.Values[i] {
				return false
			}
		}
		return true
	case *Raw:
		return slices.Equal(a.Values, b.(*Raw).Values)
	case *List:
		return slices.EqualFunc(a.Values, b.(*List).Values, Equal)
	case *Table:
		bt := b.(*Table)
		return slices.Equal(a.names, bt.names) &&
			slices.EqualFunc(a.cols, bt.cols, Equal)
	}
	return false
}

// Slice returns a copy of elements [offset, offset+n) of v with the same
// attributes. List elements are shared, not copied.
func Slice(v Vector, offset, n int) Vector {
	end := offset + n
	switch v := v.(type) {
	case *Null:
		return &Null{attrs: v.attrs.Clone()}
	case *Logical:
		return &Logical{attrs: v.attrs.Clone(), Values: slices.Clone(v.Values[offset:end])}
	case *Integer:
		return &Integer{attrs: v.attrs.Clone(), Values: slices.Clone(v.Values[offset:end])}
	case *Double:
		return &Double{attrs: v.attrs.Clone(), Values: slices.Clone(v.Values[offset:end])}
	case *String:
		return &String{
			attrs:  v.attrs.Clone(),
			Values: slices.Clone(v.Values[offset:end]),
			na:     slices.Clone(v.na[offset:end]),
		}
	case *Raw:
		return &Raw{attrs: v.attrs.Clone(), Values: slices.Clone(v.Values[offset:end])}
	case *List:
		return &List{attrs: v.attrs.Clone(), Values: slices.Clone(v.Values[offset:end])}
	case *Table:
		cols := make([]Vector, len(v.cols))
		for i, col := range v.cols {
			cols[i] = Slice(col, offset, n)
		}
		out := NewTable(v.names, cols, n)
		out.attrs = v.attrs.Clone()
		return out
	}
	panic(fmt.Sprintf("vector: cannot slice %T", v))
}

// Signature returns a stable description of the shape of v: its kind,
// classes and attributes, recursively for tables and typed lists. Values
// are not part of the signature.
func Signature(v Vector) string {
	var b strings.Builder
	writeSignature(&b, v)
	return b.String()
}

func writeSignature(b *strings.Builder, v Vector) {
	if v == nil {
		b.WriteString("?")
		return
	}
	attrs := v.Attrs()
	b.WriteString(v.Kind().String())
	if len(attrs.Class) > 0 {
		fmt.Fprintf(b, "<%s>", strings.Join(attrs.Class, ","))
	}
	if len(attrs.Levels) > 0 {
		fmt.Fprintf(b, "[%s]", strings.Join(attrs.Levels, ","))
	}
	if attrs.TZone != "" {
		fmt.Fprintf(b, "{tz=%s}", attrs.TZone)
	}
	if attrs.Units != "" {
		fmt.Fprintf(b, "{units=%s}", attrs.Units)
	}
	if attrs.Elem != nil || attrs.Inherits(ClassListOf) {
		b.WriteString("(")
		writeSignature(b, attrs.Elem)
		b.WriteString(")")
	}
	if t, ok := v.(*Table); ok {
		b.WriteString("(")
		for i, col := range t.cols {
			if i > 0 {
				b.WriteString(",")
			}
			fmt.Fprintf(b, "%q:", t.names[i])
			writeSignature(b, col)
		}
		b.WriteString(")")
	}
}
