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

import "github.com/apache/arrow-go/v18/arrow"

// scope collects the cleanups of one operation and runs them in reverse
// order of acquisition.
type scope struct {
	cleanups []func()
}

// retain takes a reference to arr for the lifetime of the scope.
func (s *scope) retain(arr arrow.Array) arrow.Array {
	arr.Retain()
	s.cleanups = append(s.cleanups, arr.Release)
	return arr
}

// own hands an existing reference to the scope.
func (s *scope) own(r interface{ Release() }) {
	s.cleanups = append(s.cleanups, r.Release)
}

func (s *scope) onClose(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

func (s *scope) close() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}
