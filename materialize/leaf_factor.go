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
	"github.com/apache/arrow-go/v18/arrow/array"
)

// convertFactor maps string values, plain or dictionary encoded, to the
// 1-based codes of the prototype's levels. A value that is not a level is
// not supported natively; the window is checked before anything is written.
func convertFactor(src ArraySlice, dst VectorSlice, ctx *leafContext) error {
	out, err := destination[*vector.Integer](dst, "factor")
	if err != nil {
		return err
	}
	levels := ctx.ptype.Attrs().Levels
	codes := make(map[string]int32, len(levels))
	for i, level := range levels {
		if _, dup := codes[level]; !dup {
			codes[level] = int32(i + 1)
		}
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	var (
		isNull func(row int) bool
		value  func(row int) string
	)
	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAInteger)
		return nil
	case *array.Dictionary:
		dict, ok := stringValues(a.Dictionary())
		if !ok {
			return unsupportedSource("factor", src)
		}
		isNull = func(row int) bool { return a.IsNull(row) || dict.IsNull(a.GetValueIndex(row)) }
		value = func(row int) string { return dict.Value(a.GetValueIndex(row)) }
	default:
		strs, ok := stringValues(src.Array)
		if !ok {
			return unsupportedSource("factor", src)
		}
		isNull, value = strs.IsNull, strs.Value
	}

	for i := range values {
		if row := off + i; !isNull(row) {
			if _, ok := codes[value(row)]; !ok {
				return notSupported("%q is not a level of the factor prototype", value(row))
			}
		}
	}
	for i := range values {
		if row := off + i; isNull(row) {
			values[i] = vector.NAInteger
		} else {
			values[i] = codes[value(row)]
		}
	}
	return nil
}
