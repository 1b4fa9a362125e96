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

// SemanticType classifies a prototype.
type SemanticType int8

const (
	TypeUnspecified SemanticType = iota // unspecified
	TypeLogical                         // logical
	TypeInteger                         // integer
	TypeDouble                          // double
	TypeString                          // character
	TypeBlob                            // blob
	TypeDate                            // date
	TypeTimestamp                       // timestamp
	TypeDuration                        // duration
	TypeInt64                           // int64
	TypeFactor                          // factor
	TypeListOf                          // list_of
	TypeTable                           // table
	TypeOther                           // other

	numSemanticTypes = iota
)

var semanticTypeNames = [numSemanticTypes]string{
	"unspecified", "logical", "integer", "double", "character", "blob",
	"date", "timestamp", "duration", "int64", "factor", "list_of", "table",
	"other",
}

func (t SemanticType) String() string {
	if t >= 0 && int(t) < len(semanticTypeNames) {
		return semanticTypeNames[t]
	}
	return "other"
}

// SemanticTypeOf classifies v. Storage kinds carrying an unknown class, and
// kinds with no native conversion, are TypeOther.
func SemanticTypeOf(v Vector) SemanticType {
	if v == nil {
		return TypeOther
	}
	attrs := v.Attrs()
	switch v.(type) {
	case *Table:
		return TypeTable
	case *Logical:
		switch {
		case attrs.Inherits(ClassUnspecified):
			return TypeUnspecified
		case len(attrs.Class) == 0:
			return TypeLogical
		}
	case *Integer:
		switch {
		case attrs.Inherits(ClassFactor):
			return TypeFactor
		case len(attrs.Class) == 0:
			return TypeInteger
		}
	case *Double:
		switch {
		case attrs.Inherits(ClassDate):
			return TypeDate
		case attrs.Inherits(ClassTimestamp):
			return TypeTimestamp
		case attrs.Inherits(ClassDuration):
			return TypeDuration
		case attrs.Inherits(ClassInt64):
			return TypeInt64
		case len(attrs.Class) == 0:
			return TypeDouble
		}
	case *String:
		if len(attrs.Class) == 0 {
			return TypeString
		}
	case *List:
		switch {
		case attrs.Inherits(ClassBlob):
			return TypeBlob
		case attrs.Inherits(ClassListOf):
			return TypeListOf
		}
	}
	return TypeOther
}

// IsTable reports whether v is a record table.
func IsTable(v Vector) bool {
	_, ok := v.(*Table)
	return ok
}

// IsFactor reports whether v is a factor and how many levels it has.
func IsFactor(v Vector) (bool, int) {
	if iv, ok := v.(*Integer); ok && iv.attrs.Inherits(ClassFactor) {
		return true, len(iv.attrs.Levels)
	}
	return false, 0
}
