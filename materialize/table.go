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
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// materializeTable converts a struct or union source into a record table.
//
// Struct fields are converted column by column with the parent's windows.
// Unions are scaffolded with missing values first, then each row is
// converted by the converter of the branch it selects, so every other
// column of that row stays missing.
func (c *Converter) materializeTable(idx int) error {
	n := &c.nodes[idx]
	if n.vtype != vector.TypeTable {
		return typeMismatch("table converter used for %s prototype", n.vtype)
	}
	if n.src.Array.DataType().ID() == arrow.DICTIONARY {
		return typeMismatch("dictionary source for table prototype")
	}
	tbl, ok := n.dst.Vec.(*vector.Table)
	if !ok {
		return structural("table prototype with %s destination", n.dst.Vec.Kind())
	}

	switch src := n.src.Array.(type) {
	case *array.Struct:
		if err := c.checkColumns(idx, tbl, src.NumField()); err != nil {
			return err
		}
		for _, child := range n.children {
			cn := &c.nodes[child]
			cn.src.Offset, cn.src.Length = n.src.Offset, n.src.Length
			cn.dst.Offset, cn.dst.Length = n.dst.Offset, n.dst.Length
			if err := c.materialize(child); err != nil {
				return err
			}
		}
		return nil

	case array.Union:
		if err := c.checkColumns(idx, tbl, len(src.UnionType().Fields())); err != nil {
			return err
		}
		if err := FillNulls(tbl, n.dst.Offset, n.dst.Length); err != nil {
			return err
		}
		dense, _ := src.(*array.DenseUnion)
		for i := int64(0); i < n.src.Length; i++ {
			row := int(n.src.Offset + i)
			childOffset := int64(row)
			if dense != nil {
				childOffset = int64(dense.ValueOffset(row))
			}
			child := n.children[src.ChildID(row)]
			cn := &c.nodes[child]
			cn.src.Offset, cn.src.Length = childOffset, 1
			cn.dst.Offset, cn.dst.Length = n.dst.Offset+i, 1
			if err := c.materialize(child); err != nil {
				return err
			}
		}
		return nil
	}
	return notSupported("table from %s", n.src.Array.DataType())
}

func (c *Converter) checkColumns(idx int, tbl *vector.Table, nfields int) error {
	n := &c.nodes[idx]
	if nfields != len(n.children) || tbl.NumCols() != len(n.children) {
		return structural("source has %d fields, destination has %d columns", nfields, tbl.NumCols())
	}
	return nil
}
