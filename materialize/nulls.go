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

// FillNulls writes the missing value of each container's kind into
// [offset, offset+length) of v. Tables are filled column by column. Raw
// vectors have no missing value and are zeroed.
func FillNulls(v vector.Vector, offset, length int64) error {
	if err := (VectorSlice{Vec: v, Offset: offset, Length: length}).check(); err != nil {
		return err
	}
	lo, hi := int(offset), int(offset+length)

	switch v := v.(type) {
	case *vector.Table:
		for i := 0; i < v.NumCols(); i++ {
			if err := FillNulls(v.Column(i), offset, length); err != nil {
				return err
			}
		}
	case *vector.Raw:
		clear(v.Values[lo:hi])
	case *vector.Logical:
		fill(v.Values[lo:hi], vector.NALogical)
	case *vector.Integer:
		fill(v.Values[lo:hi], vector.NAInteger)
	case *vector.Double:
		na := vector.NAReal
		if v.Attrs().Inherits(vector.ClassInt64) {
			na = vector.NAInt64
		}
		fill(v.Values[lo:hi], na)
	case *vector.String:
		for i := lo; i < hi; i++ {
			v.SetNA(i)
		}
	case *vector.List:
		clear(v.Values[lo:hi])
	default:
		return structural("cannot fill %s container with missing values", v.Kind())
	}
	return nil
}

func fill[T any](s []T, x T) {
	for i := range s {
		s[i] = x
	}
}
