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
	"bytes"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// stringValues returns the accessor of string-like arrays.
func stringValues(arr arrow.Array) (valuer[string], bool) {
	switch a := arr.(type) {
	case *array.String:
		return a, true
	case *array.LargeString:
		return a, true
	case *array.StringView:
		return a, true
	}
	return nil, false
}

func convertString(src ArraySlice, dst VectorSlice, _ *leafContext) error {
	out, err := destination[*vector.String](dst, "character")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	off := int(src.Offset)

	if src.Array.DataType().ID() == arrow.NULL {
		for i := lo; i < hi; i++ {
			out.SetNA(i)
		}
		return nil
	}

	if dict, ok := src.Array.(*array.Dictionary); ok {
		values, ok := stringValues(dict.Dictionary())
		if !ok {
			return unsupportedSource("character", src)
		}
		for i := lo; i < hi; i++ {
			row := off + i - lo
			if dict.IsNull(row) {
				out.SetNA(i)
				continue
			}
			if k := dict.GetValueIndex(row); values.IsNull(k) {
				out.SetNA(i)
			} else {
				out.Set(i, values.Value(k))
			}
		}
		return nil
	}

	values, ok := stringValues(src.Array)
	if !ok {
		return unsupportedSource("character", src)
	}
	for i := lo; i < hi; i++ {
		if row := off + i - lo; values.IsNull(row) {
			out.SetNA(i)
		} else {
			out.Set(i, values.Value(row))
		}
	}
	return nil
}

func binaryValues(arr arrow.Array) (valuer[[]byte], bool) {
	switch a := arr.(type) {
	case *array.Binary:
		return a, true
	case *array.LargeBinary:
		return a, true
	case *array.FixedSizeBinary:
		return a, true
	case *array.BinaryView:
		return a, true
	}
	return nil, false
}

// convertBlob copies each binary value into its own raw vector. Null
// values stay absent.
func convertBlob(src ArraySlice, dst VectorSlice, _ *leafContext) error {
	out, err := destination[*vector.List](dst, "blob")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	off := int(src.Offset)

	if src.Array.DataType().ID() == arrow.NULL {
		clear(out.Values[lo:hi])
		return nil
	}
	values, ok := binaryValues(src.Array)
	if !ok {
		return unsupportedSource("blob", src)
	}
	for i := lo; i < hi; i++ {
		row := off + i - lo
		if values.IsNull(row) {
			out.Values[i] = nil
			continue
		}
		raw := vector.NewRaw(0)
		raw.Values = bytes.Clone(values.Value(row))
		out.Values[i] = raw
	}
	return nil
}
