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

// materializeList converts list sources into a typed list: every non-null
// row becomes a freshly materialized element container, null rows stay
// absent.
func (c *Converter) materializeList(idx int) error {
	n := &c.nodes[idx]
	arr := n.src.Array
	switch arr.DataType().ID() {
	case arrow.DICTIONARY:
		return typeMismatch("dictionary source for list prototype")
	case arrow.NULL:
		return nil
	}
	dst, ok := n.dst.Vec.(*vector.List)
	if !ok {
		return structural("list prototype with %s destination", n.dst.Vec.Kind())
	}

	var bounds func(row int) (int64, int64)
	switch a := arr.(type) {
	case *array.List:
		bounds = a.ValueOffsets
	case *array.LargeList:
		bounds = a.ValueOffsets
	case *array.Map:
		bounds = a.ValueOffsets
	case *array.FixedSizeList:
		stride := int64(a.DataType().(*arrow.FixedSizeListType).Len())
		base := int64(a.Data().Offset())
		bounds = func(row int) (int64, int64) {
			start := (base + int64(row)) * stride
			return start, start + stride
		}
	default:
		return typeMismatch("list prototype for %s source", arr.DataType())
	}
	if len(n.children) != 1 {
		return notSupported("list of %s", arr.DataType())
	}

	child := n.children[0]
	for i := int64(0); i < n.src.Length; i++ {
		row := int(n.src.Offset + i)
		if arr.IsNull(row) {
			continue
		}
		start, end := bounds(row)
		elem, err := c.materializeElement(child, start, end-start)
		if err != nil {
			return err
		}
		dst.Values[n.dst.Offset+i] = elem
	}
	return nil
}
