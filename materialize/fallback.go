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
	"errors"
	"fmt"

	"github.com/amoeba/arrow-nanoarrow/generic"
	"github.com/amoeba/arrow-nanoarrow/internal/debug"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
)

// ErrRevoked is returned by ArrayRef.Array once the fallback call it was
// issued for has returned.
var ErrRevoked = errors.New("materialize: array reference used after fallback returned")

// Fallback is the general-purpose conversion routine. Convert must return
// an independent container of length elements, shaped like ptype, holding
// the values at [offset, offset+length) of the referenced array.
type Fallback interface {
	Convert(ref *ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error)
}

// FallbackFunc adapts a function to the Fallback interface.
type FallbackFunc func(ref *ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error)

func (f FallbackFunc) Convert(ref *ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error) {
	return f(ref, offset, length, ptype)
}

// ArrayRef is a non-owning reference to a source array, valid only for the
// duration of one Fallback call. A Fallback that needs the array longer
// must Retain it.
type ArrayRef struct {
	arr   arrow.Array
	field arrow.Field
}

// Array returns the referenced array.
func (r *ArrayRef) Array() (arrow.Array, error) {
	if r.arr == nil {
		return nil, ErrRevoked
	}
	return r.arr, nil
}

// Field returns the schema node of the referenced array, including any
// extension metadata.
func (r *ArrayRef) Field() arrow.Field { return r.field }

func (r *ArrayRef) revoke() { r.arr = nil }

var defaultFallback = FallbackFunc(func(ref *ArrayRef, offset, length int64, ptype vector.Vector) (vector.Vector, error) {
	arr, err := ref.Array()
	if err != nil {
		return nil, err
	}
	return generic.Convert(arr, offset, length, ptype)
})

// materializeFallback converts the windows of node idx with the fallback
// and copies the result into the destination window.
func (c *Converter) materializeFallback(idx int) error {
	n := &c.nodes[idx]

	var s scope
	defer s.close()

	debug.Log(func() string {
		return fmt.Sprintf("fallback for %s [%d, +%d) into %s", n.src.Array.DataType(), n.src.Offset, n.src.Length, n.vtype)
	})
	arr := s.retain(n.src.Array)
	ref := &ArrayRef{arr: arr, field: n.field}
	s.onClose(ref.revoke)

	out, err := c.cfg.fallback.Convert(ref, n.src.Offset, n.src.Length, n.ptype)
	if err != nil {
		return &FallbackError{Type: arr.DataType(), Err: err}
	}
	return CopyInto(out, n.dst.Vec, n.dst.Offset, n.dst.Length)
}
