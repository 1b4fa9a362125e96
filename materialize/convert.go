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

// ConvertArray materializes every row of arr into a new container shaped
// like ptype. A nil ptype infers the prototype from the array type.
func ConvertArray(arr arrow.Array, ptype vector.Vector, opts ...Option) (vector.Vector, error) {
	return convertField(arrow.Field{Type: arr.DataType(), Nullable: true}, arr, ptype, opts...)
}

// ConvertRecord materializes rec into a record table shaped like ptype.
func ConvertRecord(rec arrow.Record, ptype vector.Vector, opts ...Option) (vector.Vector, error) {
	arr := array.RecordToStructArray(rec)
	defer arr.Release()
	return convertField(arrow.Field{Type: arr.DataType()}, arr, ptype, opts...)
}

func convertField(field arrow.Field, arr arrow.Array, ptype vector.Vector, opts ...Option) (vector.Vector, error) {
	conv, err := NewConverter(field, ptype, opts...)
	if err != nil {
		return nil, err
	}
	defer conv.Close()
	return conv.convert(arr)
}

func (c *Converter) convert(arr arrow.Array) (vector.Vector, error) {
	if err := c.SetArray(arr); err != nil {
		return nil, err
	}
	if err := c.Reserve(int64(arr.Len())); err != nil {
		return nil, err
	}
	if _, err := c.MaterializeN(int64(arr.Len())); err != nil {
		c.Result()
		return nil, err
	}
	c.Finalize()
	return c.Result(), nil
}

// MaterializeInto converts [srcOffset, srcOffset+length) of arr into
// [dstOffset, dstOffset+length) of the caller-owned container dst, which
// doubles as the prototype. Rows of dst outside the window are left
// untouched.
func MaterializeInto(arr arrow.Array, srcOffset, length int64, dst vector.Vector, dstOffset int64, opts ...Option) error {
	if err := (ArraySlice{Array: arr, Offset: srcOffset, Length: length}).check(); err != nil {
		return err
	}
	conv, err := NewConverter(arrow.Field{Type: arr.DataType(), Nullable: true}, dst, opts...)
	if err != nil {
		return err
	}
	defer conv.Close()

	if err := conv.SetArray(arr); err != nil {
		return err
	}
	if err := conv.SetDestination(dst, dstOffset, length); err != nil {
		return err
	}
	conv.pos = srcOffset
	_, err = conv.MaterializeN(length)
	conv.Result()
	return err
}
