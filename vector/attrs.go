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

package vector

import "slices"

// Class names understood by SemanticTypeOf.
const (
	ClassFactor      = "factor"
	ClassDate        = "date"
	ClassTimestamp   = "timestamp"
	ClassDuration    = "duration"
	ClassInt64       = "int64"
	ClassBlob        = "blob"
	ClassListOf      = "list_of"
	ClassUnspecified = "unspecified"
	ClassTable       = "table"
)

// Duration units.
const (
	UnitSeconds = "secs"
	UnitMinutes = "mins"
	UnitHours   = "hours"
	UnitDays    = "days"
	UnitWeeks   = "weeks"
)

// UnitLength returns the length of a duration unit in seconds, or 0 for an
// unknown unit.
func UnitLength(units string) float64 {
	switch units {
	case UnitSeconds:
		return 1
	case UnitMinutes:
		return 60
	case UnitHours:
		return 3600
	case UnitDays:
		return 86400
	case UnitWeeks:
		return 604800
	}
	return 0
}

// Attrs is the attribute set of a vector.
type Attrs struct {
	Class  []string
	Levels []string
	TZone  string
	Units  string
	// Elem is the element prototype of a list_of vector.
	Elem Vector
}

// Inherits reports whether class is one of the vector's classes.
func (a *Attrs) Inherits(class string) bool {
	return slices.Contains(a.Class, class)
}

// Clone returns a copy of a. The element prototype is shared.
func (a *Attrs) Clone() Attrs {
	return Attrs{
		Class:  slices.Clone(a.Class),
		Levels: slices.Clone(a.Levels),
		TZone:  a.TZone,
		Units:  a.Units,
		Elem:   a.Elem,
	}
}

func (a *Attrs) equal(b *Attrs) bool {
	if !slices.Equal(a.Class, b.Class) || !slices.Equal(a.Levels, b.Levels) ||
		a.TZone != b.TZone || a.Units != b.Units {
		return false
	}
	if a.Elem == nil || b.Elem == nil {
		return a.Elem == nil && b.Elem == nil
	}
	return Equal(a.Elem, b.Elem)
}

// Factor returns a zero-length factor prototype with the given levels.
func Factor(levels ...string) *Integer {
	v := NewInteger(0)
	v.attrs.Class = []string{ClassFactor}
	v.attrs.Levels = levels
	return v
}

// Date returns a zero-length date prototype. Values are days since the
// epoch.
func Date() *Double {
	v := NewDouble(0)
	v.attrs.Class = []string{ClassDate}
	return v
}

// Timestamp returns a zero-length timestamp prototype in zone tz. Values
// are seconds since the epoch.
func Timestamp(tz string) *Double {
	v := NewDouble(0)
	v.attrs.Class = []string{ClassTimestamp}
	v.attrs.TZone = tz
	return v
}

// Duration returns a zero-length duration prototype measured in units.
func Duration(units string) *Double {
	v := NewDouble(0)
	v.attrs.Class = []string{ClassDuration}
	v.attrs.Units = units
	return v
}

// Int64 returns a zero-length 64-bit integer prototype.
func Int64() *Double {
	v := NewDouble(0)
	v.attrs.Class = []string{ClassInt64}
	return v
}

// Blob returns a zero-length blob prototype: a list of raw vectors.
func Blob() *List {
	v := NewList(0)
	v.attrs.Class = []string{ClassBlob}
	return v
}

// ListOf returns a zero-length typed list prototype. A nil elem leaves the
// element type to be inferred.
func ListOf(elem Vector) *List {
	v := NewList(0)
	v.attrs.Class = []string{ClassListOf}
	v.attrs.Elem = elem
	return v
}

// Unspecified returns a zero-length prototype that accepts only missing
// values.
func Unspecified() *Logical {
	v := NewLogical(0)
	v.attrs.Class = []string{ClassUnspecified}
	return v
}

// WithAttrs sets the attributes of v and returns it.
func WithAttrs[V Vector](v V, attrs Attrs) V {
	*v.Attrs() = attrs
	return v
}
