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
	"time"

	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

const (
	secondsPerDay = 86400
	millisPerDay  = 86400000
)

// ticksPerSecond returns the number of ticks of unit in one second.
func ticksPerSecond(unit arrow.TimeUnit) float64 {
	return float64(time.Second / unit.Multiplier())
}

func convertDate(src ArraySlice, dst VectorSlice, _ *leafContext) error {
	out, err := destination[*vector.Double](dst, "date")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAReal)
	case *array.Date32:
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = float64(a.Value(row))
			}
		}
	case *array.Date64:
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = float64(a.Value(row)) / millisPerDay
			}
		}
	default:
		return unsupportedSource("date", src)
	}
	return nil
}

// convertTimestamp writes seconds since the epoch. The time zone of the
// prototype is a display attribute; instants are not shifted.
func convertTimestamp(src ArraySlice, dst VectorSlice, _ *leafContext) error {
	out, err := destination[*vector.Double](dst, "timestamp")
	if err != nil {
		return err
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAReal)
	case *array.Timestamp:
		tps := ticksPerSecond(a.DataType().(*arrow.TimestampType).Unit)
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = float64(a.Value(row)) / tps
			}
		}
	case *array.Date32:
		for i := range values {
			if row := off + i; a.IsNull(row) {
				values[i] = vector.NAReal
			} else {
				values[i] = float64(a.Value(row)) * secondsPerDay
			}
		}
	default:
		return unsupportedSource("timestamp", src)
	}
	return nil
}

// convertDuration writes durations and times of day in the units of the
// prototype.
func convertDuration(src ArraySlice, dst VectorSlice, ctx *leafContext) error {
	out, err := destination[*vector.Double](dst, "duration")
	if err != nil {
		return err
	}
	units := ctx.ptype.Attrs().Units
	per := vector.UnitLength(units)
	if per == 0 {
		return notSupported("duration units %q", units)
	}
	lo, hi := dst.span()
	values, off := out.Values[lo:hi], int(src.Offset)

	var (
		tps   float64
		ticks func(row int) float64
	)
	switch a := src.Array.(type) {
	case *array.Null:
		fill(values, vector.NAReal)
		return nil
	case *array.Duration:
		tps = ticksPerSecond(a.DataType().(*arrow.DurationType).Unit)
		ticks = func(row int) float64 { return float64(a.Value(row)) }
	case *array.Time32:
		tps = ticksPerSecond(a.DataType().(*arrow.Time32Type).Unit)
		ticks = func(row int) float64 { return float64(a.Value(row)) }
	case *array.Time64:
		tps = ticksPerSecond(a.DataType().(*arrow.Time64Type).Unit)
		ticks = func(row int) float64 { return float64(a.Value(row)) }
	default:
		return unsupportedSource("duration", src)
	}

	for i := range values {
		if row := off + i; src.Array.IsNull(row) {
			values[i] = vector.NAReal
		} else {
			values[i] = ticks(row) / tps / per
		}
	}
	return nil
}
