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
	"strings"
	"sync"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/zeebo/xxh3"
)

// Cache keeps idle converters for reuse. Each converter handed out by Get
// is used exclusively by the caller until it is returned with Put.
type Cache struct {
	opts []Option

	mu   sync.Mutex
	idle map[uint64][]*Converter
}

// NewCache creates a cache whose converters are built with opts.
func NewCache(opts ...Option) *Cache {
	return &Cache{opts: opts, idle: make(map[uint64][]*Converter)}
}

// Get returns an idle converter for records of schema materialized like
// ptype, building one if none is idle.
func (c *Cache) Get(schema *arrow.Schema, ptype vector.Vector) (*Converter, error) {
	key := schemaKey(schema, ptype)

	c.mu.Lock()
	if idle := c.idle[key]; len(idle) > 0 {
		conv := idle[len(idle)-1]
		c.idle[key] = idle[:len(idle)-1]
		c.mu.Unlock()
		return conv, nil
	}
	c.mu.Unlock()

	conv, err := NewSchemaConverter(schema, ptype, c.opts...)
	if err != nil {
		return nil, err
	}
	conv.key = key
	return conv, nil
}

// Put returns conv to the cache. Its bound array and any unclaimed result
// are released.
func (c *Cache) Put(conv *Converter) {
	conv.Close()
	conv.Result()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.idle[conv.key] = append(c.idle[conv.key], conv)
}

// Len returns the number of idle converters.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, idle := range c.idle {
		n += len(idle)
	}
	return n
}

func schemaKey(schema *arrow.Schema, ptype vector.Vector) uint64 {
	var b strings.Builder
	for _, f := range schema.Fields() {
		b.WriteString(f.Fingerprint())
		b.WriteString(extensionName(f))
		b.WriteByte(';')
	}
	b.WriteString(vector.Signature(ptype))
	return xxh3.HashString(b.String())
}
