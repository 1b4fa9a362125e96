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
	"context"
	"fmt"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"go.uber.org/zap"
)

// ConvertReader materializes every record of rdr into one record table
// shaped like ptype. Each record is converted by one windowed call of a
// single converter.
func ConvertReader(ctx context.Context, rdr array.RecordReader, ptype vector.Vector, opts ...Option) (vector.Vector, error) {
	conv, err := NewSchemaConverter(rdr.Schema(), ptype, opts...)
	if err != nil {
		return nil, err
	}
	defer conv.Close()
	return conv.ConvertReader(ctx, rdr)
}

// ConvertReader materializes every record of rdr, whose schema must match
// the converter's, into one container.
func (c *Converter) ConvertReader(ctx context.Context, rdr array.RecordReader) (vector.Vector, error) {
	var s scope
	defer s.close()

	var (
		batches []arrow.Array
		total   int64
	)
	for rdr.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		arr := array.RecordToStructArray(rdr.Record())
		s.own(arr)
		batches = append(batches, arr)
		total += int64(arr.Len())
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("materialize: reading records: %w", err)
	}

	if err := c.Reserve(total); err != nil {
		return nil, err
	}
	for i, arr := range batches {
		if err := ctx.Err(); err != nil {
			c.Result()
			return nil, err
		}
		if err := c.SetArray(arr); err != nil {
			c.Result()
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, err := c.MaterializeN(int64(arr.Len())); err != nil {
			c.Result()
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	c.releaseArray()
	c.cfg.logger.Debug("materialized record stream",
		zap.Int("records", len(batches)),
		zap.Int64("rows", total))

	c.Finalize()
	return c.Result(), nil
}
