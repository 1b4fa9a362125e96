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
	"fmt"

	"github.com/amoeba/arrow-nanoarrow/internal/debug"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// node is one converter of the arena. Children are arena indices: one per
// column for tables, exactly one for typed lists.
type node struct {
	field    arrow.Field
	ptype    vector.Vector
	vtype    vector.SemanticType
	ext      bool
	children []int

	src ArraySlice
	dst VectorSlice

	// result is the container owned by a node driven as a unit: the root,
	// and the element converter of a list while it produces one element.
	result vector.Vector
	size   int64
}

// Converter materializes arrays of one Arrow type into containers shaped
// like one prototype. A Converter is not safe for concurrent use; see Cache
// for sharing converters between goroutines.
type Converter struct {
	cfg   *config
	nodes []node

	arr      arrow.Array
	pos      int64
	base     int64
	capacity int64
	external bool

	key uint64
}

// NewConverter builds a converter for values of field. A nil ptype infers
// the prototype from the field type, see InferPrototype.
//
// A table prototype must have one column per field of a struct or union
// source; a mismatch fails with ErrStructure.
func NewConverter(field arrow.Field, ptype vector.Vector, opts ...Option) (*Converter, error) {
	c := &Converter{cfg: newConfig(opts...)}
	if _, err := c.build(field, ptype); err != nil {
		return nil, err
	}
	debug.Log(func() string {
		return fmt.Sprintf("converter for %s: %d nodes, root %s", field.Type, len(c.nodes), c.nodes[0].vtype)
	})
	return c, nil
}

// NewSchemaConverter builds a converter for records of schema, which are
// materialized as a struct.
func NewSchemaConverter(schema *arrow.Schema, ptype vector.Vector, opts ...Option) (*Converter, error) {
	return NewConverter(arrow.Field{Type: arrow.StructOf(schema.Fields()...)}, ptype, opts...)
}

func (c *Converter) build(field arrow.Field, ptype vector.Vector) (int, error) {
	if ptype == nil {
		ptype = inferField(field, c.cfg)
	}
	idx := len(c.nodes)
	c.nodes = append(c.nodes, node{
		field: field,
		ptype: ptype,
		vtype: vector.SemanticTypeOf(ptype),
		ext:   extensionName(field) != "",
	})
	if c.nodes[idx].ext {
		return idx, nil
	}

	var children []int
	switch c.nodes[idx].vtype {
	case vector.TypeTable:
		var fields []arrow.Field
		switch dt := field.Type.(type) {
		case *arrow.StructType:
			fields = dt.Fields()
		case arrow.UnionType:
			fields = dt.Fields()
		default:
			return idx, nil
		}
		tbl := ptype.(*vector.Table)
		if len(fields) != tbl.NumCols() {
			return -1, structural("%s has %d fields, prototype has %d columns",
				field.Type, len(fields), tbl.NumCols())
		}
		for i, f := range fields {
			child, err := c.build(f, tbl.Column(i))
			if err != nil {
				return -1, fmt.Errorf("column %q: %w", tbl.Names()[i], err)
			}
			children = append(children, child)
		}

	case vector.TypeListOf:
		var elem arrow.Field
		switch dt := field.Type.(type) {
		case *arrow.ListType:
			elem = dt.ElemField()
		case *arrow.LargeListType:
			elem = dt.ElemField()
		case *arrow.FixedSizeListType:
			elem = dt.ElemField()
		case *arrow.MapType:
			elem = dt.ElemField()
		default:
			return idx, nil
		}
		child, err := c.build(elem, ptype.Attrs().Elem)
		if err != nil {
			return -1, err
		}
		children = append(children, child)
	}
	c.nodes[idx].children = children
	return idx, nil
}

// Field returns the schema node the converter was built for.
func (c *Converter) Field() arrow.Field { return c.nodes[0].field }

// Prototype returns the prototype of the converter's results.
func (c *Converter) Prototype() vector.Vector { return c.nodes[0].ptype }

// SetArray binds arr as the source of subsequent calls to MaterializeN,
// starting at its first row. The converter holds a reference to arr until
// the next SetArray or Close.
func (c *Converter) SetArray(arr arrow.Array) error {
	root := &c.nodes[0]
	if !arrow.TypeEqual(arr.DataType(), root.field.Type) {
		return structural("array of type %s bound to converter for %s", arr.DataType(), root.field.Type)
	}
	arr.Retain()
	c.releaseArray()
	c.arr = arr
	c.pos = 0
	c.bindSource(0, arr)
	return nil
}

func (c *Converter) bindSource(idx int, arr arrow.Array) {
	n := &c.nodes[idx]
	n.src = ArraySlice{Array: arr}
	if len(n.children) == 0 {
		return
	}

	switch a := arr.(type) {
	case *array.Struct:
		for i, child := range n.children {
			c.bindSource(child, a.Field(i))
		}
	case array.Union:
		for i, child := range n.children {
			c.bindSource(child, a.Field(i))
		}
	case *array.List:
		c.bindSource(n.children[0], a.ListValues())
	case *array.LargeList:
		c.bindSource(n.children[0], a.ListValues())
	case *array.FixedSizeList:
		c.bindSource(n.children[0], a.ListValues())
	case *array.Map:
		c.bindSource(n.children[0], a.ListValues())
	}
}

// Reserve allocates a destination for n rows.
func (c *Converter) Reserve(n int64) error {
	if err := c.reserve(0, n); err != nil {
		return err
	}
	c.base, c.capacity, c.external = 0, n, false
	return nil
}

func (c *Converter) reserve(idx int, n int64) error {
	out, err := Allocate(c.nodes[idx].ptype, n)
	if err != nil {
		return err
	}
	c.nodes[idx].result = out
	c.nodes[idx].size = 0
	c.bindDestination(idx, out)
	return nil
}

// SetDestination binds [offset, offset+length) of the caller-owned
// container dst as the destination of subsequent calls to MaterializeN.
// dst must be shaped like the converter's prototype.
func (c *Converter) SetDestination(dst vector.Vector, offset, length int64) error {
	if err := (VectorSlice{Vec: dst, Offset: offset, Length: length}).check(); err != nil {
		return err
	}
	root := &c.nodes[0]
	if vector.IsTable(dst) != (root.vtype == vector.TypeTable) {
		return structural("destination %s does not match prototype %s", dst.Kind(), root.vtype)
	}
	if tbl, ok := dst.(*vector.Table); ok && tbl.NumCols() != len(root.children) && len(root.children) > 0 {
		return structural("destination has %d columns, converter has %d", tbl.NumCols(), len(root.children))
	}
	root.result = dst
	root.size = 0
	c.base, c.capacity, c.external = offset, length, true
	c.bindDestination(0, dst)
	return nil
}

// bindDestination points the children of a table node at the columns of
// dst. List element converters allocate their own destinations.
func (c *Converter) bindDestination(idx int, dst vector.Vector) {
	n := &c.nodes[idx]
	n.dst = VectorSlice{Vec: dst}
	tbl, ok := dst.(*vector.Table)
	if !ok || n.vtype != vector.TypeTable {
		return
	}
	for i, child := range n.children {
		if i < tbl.NumCols() {
			c.bindDestination(child, tbl.Column(i))
		}
	}
}

// MaterializeN converts the next n rows of the bound array into the next n
// rows of the destination and returns the number of rows converted, which
// is less than n when either the array or the destination runs out.
func (c *Converter) MaterializeN(n int64) (int64, error) {
	root := &c.nodes[0]
	switch {
	case c.arr == nil:
		return 0, structural("no source array bound")
	case root.result == nil:
		return 0, structural("no destination reserved")
	}

	n = min(n, int64(c.arr.Len())-c.pos, c.capacity-root.size)
	if n <= 0 {
		return 0, nil
	}
	root.src.Offset, root.src.Length = c.pos, n
	root.dst.Offset, root.dst.Length = c.base+root.size, n
	if err := c.materialize(0); err != nil {
		return 0, err
	}
	c.pos += n
	root.size += n
	return n, nil
}

// Finalize completes the result. A reserved destination that received fewer
// rows than it was reserved for is shrunk to the rows converted.
func (c *Converter) Finalize() {
	root := &c.nodes[0]
	if root.result == nil || c.external || root.size == c.capacity {
		return
	}
	root.result = vector.Slice(root.result, 0, int(root.size))
	c.capacity = root.size
	c.bindDestination(0, root.result)
}

// Size returns the number of rows converted into the current destination.
func (c *Converter) Size() int64 { return c.nodes[0].size }

// Result hands the destination over to the caller. The converter keeps its
// bound array but needs a new destination before the next MaterializeN.
func (c *Converter) Result() vector.Vector {
	root := &c.nodes[0]
	out := root.result
	root.result = nil
	root.size = 0
	c.base, c.capacity, c.external = 0, 0, false
	c.bindDestination(0, nil)
	return out
}

// Close releases the bound array.
func (c *Converter) Close() {
	c.releaseArray()
	for i := range c.nodes {
		c.nodes[i].src = ArraySlice{}
	}
}

func (c *Converter) releaseArray() {
	if c.arr != nil {
		c.arr.Release()
		c.arr = nil
	}
}

// materializeElement runs the element converter idx over [offset,
// offset+length) of its source into a fresh container and returns it.
func (c *Converter) materializeElement(idx int, offset, length int64) (vector.Vector, error) {
	if err := c.reserve(idx, length); err != nil {
		return nil, err
	}
	n := &c.nodes[idx]
	n.src.Offset, n.src.Length = offset, length
	n.dst.Offset, n.dst.Length = 0, length
	if err := c.materialize(idx); err != nil {
		n.result = nil
		return nil, err
	}
	out := n.result
	n.result = nil
	n.size = 0
	return out, nil
}
