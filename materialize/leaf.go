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
	"go.uber.org/zap"
)

type leafContext struct {
	ptype  vector.Vector
	logger *zap.Logger
}

// leafFunc converts a source window into a destination window of the same
// length. It checks that it accepts the source before writing anything.
type leafFunc func(src ArraySlice, dst VectorSlice, ctx *leafContext) error

// valuer is the accessor surface shared by Arrow's typed arrays.
type valuer[T any] interface {
	IsNull(i int) bool
	Value(i int) T
}

func destination[V vector.Vector](dst VectorSlice, converter string) (V, error) {
	v, ok := dst.Vec.(V)
	if !ok {
		return v, typeMismatch("%s converter cannot write into a %s container", converter, dst.Vec.Kind())
	}
	return v, nil
}

func unsupportedSource(converter string, src ArraySlice) error {
	return typeMismatch("%s converter does not accept %s", converter, src.Array.DataType())
}

func (ctx *leafContext) warnCoerced(msg string, count int, dt arrow.DataType) {
	if count > 0 {
		ctx.logger.Warn(msg, zap.Int("count", count), zap.Stringer("type", dt))
	}
}

// allNull reports whether every value of the window is null.
func allNull(src ArraySlice) bool {
	if src.Array.DataType().ID() == arrow.NULL {
		return true
	}
	lo, hi := src.span()
	for row := lo; row < hi; row++ {
		if !src.Array.IsNull(row) {
			return false
		}
	}
	return true
}
