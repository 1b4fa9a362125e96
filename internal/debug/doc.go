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
Package debug provides conditional runtime assertions and debug logging
for the materialization engine.

# Using Assert

Build with the assert tag to check window invariants at run time. The
dispatcher asserts that every leaf call receives source and destination
windows of equal length. Without the tag, Assert compiles to nothing.

# Using Log

Build with the debug tag to trace converter activity to stderr:

  - NewConverter logs the source type, the arena size and the root
    semantic type of every converter it builds.
  - The fallback bridge logs the source type, the window and the
    destination type of every call it hands to a fallback.

Without the tag, Log compiles to nothing and its message closures are never
evaluated.
*/
package debug
