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

/*
Package materialize converts Arrow arrays into host vectors (see package
vector) under the direction of a prototype describing the desired result
shape.

A Converter is built once from a schema node and a prototype. It owns an
arena of child converters mirroring the nesting of both, and can be driven
over any number of source arrays with the same type:

	conv, err := materialize.NewConverter(field, ptype)
	if err != nil {
		return err
	}
	defer conv.Close()

	conv.SetArray(arr)
	conv.Reserve(int64(arr.Len()))
	if _, err := conv.MaterializeN(int64(arr.Len())); err != nil {
		return err
	}
	conv.Finalize()
	result := conv.Result()

Each conversion is expressed as a pair of windows: a source window
(ArraySlice) over the Arrow array and a destination window (VectorSlice)
over a pre-allocated host container. Record tables and lists are
materialized natively by recursing into child converters. Scalar columns
are handled by leaf converters selected by the prototype's semantic type.

Anything that cannot be converted natively, including every extension type,
is handed to a Fallback, the general-purpose conversion routine (by default
package generic). A native conversion that fails with ErrTypeMismatch or
ErrNotSupported is retried exactly once through the fallback. Structural
errors are never retried.

The convenience functions ConvertArray, ConvertRecord and ConvertReader
cover the common whole-array and whole-stream cases.
*/
package materialize
