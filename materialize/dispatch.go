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

	"github.com/amoeba/arrow-nanoarrow/internal/debug"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"go.uber.org/zap"
)

// leafConverters maps each semantic type with a native scalar conversion to
// its converter. Types with no entry use the fallback.
var leafConverters = [...]leafFunc{
	vector.TypeUnspecified: convertUnspecified,
	vector.TypeLogical:     convertLogical,
	vector.TypeInteger:     convertInteger,
	vector.TypeDouble:      convertDouble,
	vector.TypeString:      convertString,
	vector.TypeBlob:        convertBlob,
	vector.TypeDate:        convertDate,
	vector.TypeTimestamp:   convertTimestamp,
	vector.TypeDuration:    convertDuration,
	vector.TypeInt64:       convertInt64,
	vector.TypeFactor:      convertFactor,
	vector.TypeListOf:      nil,
	vector.TypeTable:       nil,
	vector.TypeOther:       nil,
}

// materialize converts the source window of node idx into its destination
// window. A native failure that permits it is retried once through the
// fallback; no further retries happen.
func (c *Converter) materialize(idx int) error {
	n := &c.nodes[idx]
	if err := n.src.check(); err != nil {
		return err
	}
	if err := n.dst.check(); err != nil {
		return err
	}
	debug.Assert(n.src.Length == n.dst.Length, "materialize: source and destination windows differ in length")

	err := c.materializeBase(idx)
	if err == nil || c.cfg.nativeOnly || !retryable(err) {
		return err
	}

	c.cfg.logger.Debug("native conversion failed, using fallback",
		zap.Stringer("type", n.src.Array.DataType()),
		zap.Stringer("ptype", n.vtype),
		zap.Error(err))
	if ferr := c.materializeFallback(idx); ferr != nil {
		return fmt.Errorf("%w (after native conversion failed: %v)", ferr, err)
	}
	return nil
}

func (c *Converter) materializeBase(idx int) error {
	n := &c.nodes[idx]
	if n.ext {
		return c.materializeFallback(idx)
	}

	switch n.vtype {
	case vector.TypeListOf:
		return c.materializeList(idx)
	case vector.TypeTable:
		return c.materializeTable(idx)
	}

	if int(n.vtype) < len(leafConverters) {
		if conv := leafConverters[n.vtype]; conv != nil {
			if c.cfg.leafHook != nil {
				c.cfg.leafHook(n.vtype)
			}
			return conv(n.src, n.dst, &leafContext{ptype: n.ptype, logger: c.cfg.logger})
		}
	}
	return c.materializeFallback(idx)
}
