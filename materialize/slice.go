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
	"github.com/JohnCGriffin/overflow"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
)

// ArraySlice is a window [Offset, Offset+Length) over a source array.
// Offsets are logical: they are relative to the array's own slice.
type ArraySlice struct {
	Array  arrow.Array
	Offset int64
	Length int64
}

// VectorSlice is a window [Offset, Offset+Length) over a destination
// container.
type VectorSlice struct {
	Vec    vector.Vector
	Offset int64
	Length int64
}

func checkWindow(what string, offset, length, capacity int64) error {
	end, ok := overflow.Add64(offset, length)
	if !ok || offset < 0 || length < 0 || end > capacity {
		return structural("%s window [%d, %d+%d) exceeds length %d", what, offset, offset, length, capacity)
	}
	return nil
}

func (s ArraySlice) check() error {
	if s.Array == nil {
		return structural("no source array bound")
	}
	return checkWindow("source", s.Offset, s.Length, int64(s.Array.Len()))
}

func (s VectorSlice) check() error {
	if s.Vec == nil {
		return structural("no destination bound")
	}
	return checkWindow("destination", s.Offset, s.Length, int64(s.Vec.Len()))
}

// span returns the window as int bounds.
func (s ArraySlice) span() (int, int) {
	return int(s.Offset), int(s.Offset + s.Length)
}

func (s VectorSlice) span() (int, int) {
	return int(s.Offset), int(s.Offset + s.Length)
}
