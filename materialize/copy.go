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
)

// CopyInto copies src into [offset, offset+length) of dst. Tables must
// agree in row and column count and are copied column by column by
// position; other containers must have the same storage kind and src must
// have exactly length elements. Nothing is written when the shapes
// disagree.
func CopyInto(src, dst vector.Vector, offset, length int64) error {
	if err := checkCopy(src, dst, offset, length); err != nil {
		return err
	}
	copyChecked(src, dst, int(offset))
	return nil
}

func checkCopy(src, dst vector.Vector, offset, length int64) error {
	if err := (VectorSlice{Vec: dst, Offset: offset, Length: length}).check(); err != nil {
		return err
	}

	dstTbl, dstIsTable := dst.(*vector.Table)
	srcTbl, srcIsTable := src.(*vector.Table)
	switch {
	case dstIsTable && !srcIsTable:
		return structural("cannot copy %s into a table", src.Kind())
	case srcIsTable && !dstIsTable:
		return structural("cannot copy a table into %s", dst.Kind())
	case dstIsTable:
		if srcTbl.NumRows() != length {
			return structural("table has %d rows, window has %d", srcTbl.NumRows(), length)
		}
		if srcTbl.NumCols() != dstTbl.NumCols() {
			return structural("table has %d columns, destination has %d", srcTbl.NumCols(), dstTbl.NumCols())
		}
		for i := 0; i < srcTbl.NumCols(); i++ {
			if err := checkCopy(srcTbl.Column(i), dstTbl.Column(i), offset, length); err != nil {
				return err
			}
		}
		return nil
	}

	if src.Kind() != dst.Kind() {
		return structural("cannot copy %s into %s", src.Kind(), dst.Kind())
	}
	if int64(src.Len()) != length {
		return structural("source has %d elements, window has %d", src.Len(), length)
	}
	return nil
}

func copyChecked(src, dst vector.Vector, offset int) {
	switch dst := dst.(type) {
	case *vector.Table:
		srcTbl := src.(*vector.Table)
		for i := 0; i < dst.NumCols(); i++ {
			copyChecked(srcTbl.Column(i), dst.Column(i), offset)
		}
	case *vector.Logical:
		copy(dst.Values[offset:], src.(*vector.Logical).Values)
	case *vector.Integer:
		copy(dst.Values[offset:], src.(*vector.Integer).Values)
	case *vector.Double:
		copy(dst.Values[offset:], src.(*vector.Double).Values)
	case *vector.String:
		s := src.(*vector.String)
		for i := range s.Values {
			if s.IsNA(i) {
				dst.SetNA(offset + i)
			} else {
				dst.Set(offset+i, s.Values[i])
			}
		}
	case *vector.Raw:
		copy(dst.Values[offset:], src.(*vector.Raw).Values)
	case *vector.List:
		copy(dst.Values[offset:], src.(*vector.List).Values)
	}
}
