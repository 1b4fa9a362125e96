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
	"go.uber.org/zap"
)

// Int64Mode selects the default prototype for 64-bit integer sources.
type Int64Mode int8

const (
	// Int64AsDouble materializes 64-bit integers as doubles.
	Int64AsDouble Int64Mode = iota
	// Int64AsOpaque materializes 64-bit integers into int64 vectors that
	// keep every bit of the value.
	Int64AsOpaque
)

type config struct {
	fallback   Fallback
	logger     *zap.Logger
	int64Mode  Int64Mode
	nativeOnly bool

	// leafHook observes every leaf converter invocation.
	leafHook func(vector.SemanticType)
}

// Option configures a Converter.
type Option func(*config)

// WithFallback sets the general-purpose conversion routine used for
// extension types, for prototypes with no native converter, and for the
// single retry after a native type mismatch.
func WithFallback(fb Fallback) Option {
	return func(cfg *config) {
		cfg.fallback = fb
	}
}

// WithLogger sets the logger receiving conversion events: downgrades to the
// fallback path and values coerced to missing.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithInt64 selects how inferred prototypes represent 64-bit integers.
func WithInt64(mode Int64Mode) Option {
	return func(cfg *config) {
		cfg.int64Mode = mode
	}
}

// WithNativeOnly disables the retry through the fallback after a native
// conversion fails. Extension types and prototypes with no native converter
// still use the fallback.
func WithNativeOnly() Option {
	return func(cfg *config) {
		cfg.nativeOnly = true
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		fallback: defaultFallback,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	return cfg
}
