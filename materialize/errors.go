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

	"github.com/apache/arrow-go/v18/arrow"
)

var (
	// ErrTypeMismatch is returned when a converter is asked to handle a
	// source or destination it does not accept. The dispatcher retries these
	// through the fallback.
	ErrTypeMismatch = fmt.Errorf("%w: materialize: type mismatch", arrow.ErrType)
	// ErrNotSupported is returned for conversions with no native
	// implementation. The dispatcher retries these through the fallback.
	ErrNotSupported = fmt.Errorf("%w: materialize: conversion not supported", arrow.ErrNotImplemented)
	// ErrStructure is returned when a source and a destination disagree in
	// shape: row counts, column counts, container kinds, or window bounds.
	ErrStructure = fmt.Errorf("%w: materialize: structural mismatch", arrow.ErrInvalid)
	// ErrAllocation is returned when a destination cannot be allocated for
	// a prototype.
	ErrAllocation = errors.New("materialize: cannot allocate destination")
)

// FallbackError reports a failure of the fallback conversion routine.
type FallbackError struct {
	Type arrow.DataType
	Err  error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("materialize: fallback conversion of %s failed: %v", e.Type, e.Err)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// retryable reports whether err permits the single downgrade to the
// fallback path.
func retryable(err error) bool {
	var fe *FallbackError
	if errors.As(err, &fe) {
		return false
	}
	return errors.Is(err, ErrTypeMismatch) || errors.Is(err, ErrNotSupported)
}

func typeMismatch(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrTypeMismatch}, args...)...)
}

func notSupported(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotSupported}, args...)...)
}

func structural(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrStructure}, args...)...)
}
