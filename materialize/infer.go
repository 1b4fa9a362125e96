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
)

const extensionNameKey = "ARROW:extension:name"

// extensionName returns the extension name of field, whether the type is a
// registered extension type or an unregistered one that only survives as
// field metadata.
func extensionName(field arrow.Field) string {
	if ext, ok := field.Type.(arrow.ExtensionType); ok {
		return ext.ExtensionName()
	}
	if i := field.Metadata.FindKey(extensionNameKey); i >= 0 {
		return field.Metadata.Values()[i]
	}
	return ""
}

// InferPrototype returns the default prototype for values of field.
//
// Integers that fit in 32 bits become integer vectors, wider integers and
// floating point or decimal values become doubles (or int64 vectors with
// WithInt64(Int64AsOpaque)), structs and unions become tables, list types
// and maps become typed lists, and dictionaries take the prototype of their
// values.
func InferPrototype(field arrow.Field, opts ...Option) vector.Vector {
	return inferField(field, newConfig(opts...))
}

func inferField(field arrow.Field, cfg *config) vector.Vector {
	switch extensionName(field) {
	case "arrow.uuid", "arrow.json":
		return vector.NewString(0)
	case "arrow.bool8":
		return vector.NewLogical(0)
	}
	dt := field.Type
	if ext, ok := dt.(arrow.ExtensionType); ok {
		dt = ext.StorageType()
	}
	return inferType(dt, cfg)
}

func inferType(dt arrow.DataType, cfg *config) vector.Vector {
	switch dt := dt.(type) {
	case *arrow.NullType:
		return vector.Unspecified()
	case *arrow.BooleanType:
		return vector.NewLogical(0)
	case *arrow.Int8Type, *arrow.Int16Type, *arrow.Int32Type,
		*arrow.Uint8Type, *arrow.Uint16Type:
		return vector.NewInteger(0)
	case *arrow.Int64Type, *arrow.Uint64Type:
		if cfg.int64Mode == Int64AsOpaque {
			return vector.Int64()
		}
		return vector.NewDouble(0)
	case *arrow.Uint32Type, *arrow.Float16Type, *arrow.Float32Type,
		*arrow.Float64Type, *arrow.Decimal128Type, *arrow.Decimal256Type:
		return vector.NewDouble(0)
	case *arrow.StringType, *arrow.LargeStringType, *arrow.StringViewType:
		return vector.NewString(0)
	case *arrow.BinaryType, *arrow.LargeBinaryType, *arrow.FixedSizeBinaryType,
		*arrow.BinaryViewType:
		return vector.Blob()
	case *arrow.Date32Type, *arrow.Date64Type:
		return vector.Date()
	case *arrow.TimestampType:
		return vector.Timestamp(dt.TimeZone)
	case *arrow.Time32Type, *arrow.Time64Type, *arrow.DurationType:
		return vector.Duration(vector.UnitSeconds)
	case *arrow.StructType:
		return inferTable(dt.Fields(), cfg)
	case arrow.UnionType:
		return inferTable(dt.Fields(), cfg)
	case *arrow.ListType:
		return vector.ListOf(inferField(dt.ElemField(), cfg))
	case *arrow.LargeListType:
		return vector.ListOf(inferField(dt.ElemField(), cfg))
	case *arrow.FixedSizeListType:
		return vector.ListOf(inferField(dt.ElemField(), cfg))
	case *arrow.MapType:
		return vector.ListOf(inferField(dt.ElemField(), cfg))
	case *arrow.DictionaryType:
		return inferType(dt.ValueType, cfg)
	}
	// no native conversion; the fallback decides what the values become
	return vector.NewList(0)
}

func inferTable(fields []arrow.Field, cfg *config) *vector.Table {
	names := make([]string, len(fields))
	cols := make([]vector.Vector, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		cols[i] = inferField(f, cfg)
	}
	return vector.NewTable(names, cols, 0)
}
