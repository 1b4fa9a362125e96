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
	"math"

	"github.com/amoeba/arrow-nanoarrow/vector"
)

// Allocate creates a container of length elements shaped like ptype.
//
// Tables allocate every column recursively and carry row names for length
// rows. Every other prototype allocates a container of the same storage
// kind and copies its attributes. A factor prototype without levels cannot
// be allocated.
func Allocate(ptype vector.Vector, length int64) (vector.Vector, error) {
	if length < 0 || length > math.MaxInt {
		return nil, fmt.Errorf("%w: invalid length %d", ErrAllocation, length)
	}
	if ptype == nil {
		return vector.WithAttrs(vector.NewLogical(int(length)), vector.Unspecified().Attrs().Clone()), nil
	}
	if ok, nlevels := vector.IsFactor(ptype); ok && nlevels == 0 {
		return nil, fmt.Errorf("%w: factor prototype has no levels", ErrAllocation)
	}

	if tbl, ok := ptype.(*vector.Table); ok {
		cols := make([]vector.Vector, tbl.NumCols())
		for i := range cols {
			col, err := Allocate(tbl.Column(i), length)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", tbl.Names()[i], err)
			}
			cols[i] = col
		}
		out := vector.NewTable(tbl.Names(), cols, int(length))
		*out.Attrs() = tbl.Attrs().Clone()
		return out, nil
	}

	out, err := vector.New(ptype.Kind(), int(length))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	*out.Attrs() = ptype.Attrs().Clone()
	return out, nil
}
