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

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const secondsPerDay = 86400

// FormatElement renders element i of v as text. Missing values render as
// "NA".
func FormatElement(v Vector, i int) string {
	if isNA(v, i) {
		return "NA"
	}
	attrs := v.Attrs()
	switch v := v.(type) {
	case *Logical:
		if v.Values[i] != 0 {
			return "true"
		}
		return "false"
	case *Integer:
		if attrs.Inherits(ClassFactor) {
			if code := int(v.Values[i]); code >= 1 && code <= len(attrs.Levels) {
				return attrs.Levels[code-1]
			}
		}
		return strconv.FormatInt(int64(v.Values[i]), 10)
	case *Double:
		x := v.Values[i]
		switch SemanticTypeOf(v) {
		case TypeInt64:
			return strconv.FormatInt(v.Int64(i), 10)
		case TypeDate:
			return dateOf(x).Format(time.DateOnly)
		case TypeTimestamp:
			return timestampOf(x, attrs.TZone).Format(time.RFC3339Nano)
		case TypeDuration:
			return strconv.FormatFloat(x, 'g', -1, 64) + " " + attrs.Units
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *String:
		return strconv.Quote(v.Values[i])
	case *Raw:
		return fmt.Sprintf("%02x", v.Values[i])
	case *List:
		elem := v.Values[i]
		if raw, ok := elem.(*Raw); ok && attrs.Inherits(ClassBlob) {
			return fmt.Sprintf("blob[%d B]", len(raw.Values))
		}
		return FormatValues(elem)
	case *Table:
		return fmt.Sprintf("table[%d x %d]", v.NumRows(), v.NumCols())
	}
	return "?"
}

// FormatValues renders every element of v, space separated within
// brackets. Tables render as a brace-enclosed list of named columns.
func FormatValues(v Vector) string {
	var b strings.Builder
	if t, ok := v.(*Table); ok {
		b.WriteString("{")
		for i, col := range t.cols {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", t.names[i], FormatValues(col))
		}
		b.WriteString("}")
		return b.String()
	}
	b.WriteString("[")
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(FormatElement(v, i))
	}
	b.WriteString("]")
	return b.String()
}

// Format writes a text rendering of v to w. Tables are written one column
// per line.
func Format(w io.Writer, v Vector) error {
	t, ok := v.(*Table)
	if !ok {
		_, err := fmt.Fprintf(w, "%s\n", FormatValues(v))
		return err
	}
	if _, err := fmt.Fprintf(w, "table: %d rows, %d columns\n", t.NumRows(), t.NumCols()); err != nil {
		return err
	}
	for i, col := range t.cols {
		_, err := fmt.Fprintf(w, "  col[%d] %q <%s>: %s\n", i, t.names[i], SemanticTypeOf(col), FormatValues(col))
		if err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes v as JSON. Tables encode as an object of columns in
// column order, other vectors as arrays. Missing and non-finite values
// encode as null.
func MarshalJSON(v Vector) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v Vector) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	if t, ok := v.(*Table); ok {
		buf.WriteByte('{')
		for i, col := range t.cols {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(t.names[i])
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeJSON(buf, col); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	}
	if l, ok := v.(*List); ok && !l.attrs.Inherits(ClassBlob) {
		buf.WriteByte('[')
		for i, elem := range l.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}

	values := make([]any, v.Len())
	for i := range values {
		values[i] = jsonValue(v, i)
	}
	out, err := json.Marshal(values)
	if err != nil {
		return err
	}
	buf.Write(out)
	return nil
}

func jsonValue(v Vector, i int) any {
	if isNA(v, i) {
		return nil
	}
	attrs := v.Attrs()
	switch v := v.(type) {
	case *Logical:
		return v.Values[i] != 0
	case *Integer:
		if attrs.Inherits(ClassFactor) {
			return FormatElement(v, i)
		}
		return v.Values[i]
	case *Double:
		x := v.Values[i]
		switch SemanticTypeOf(v) {
		case TypeInt64:
			return v.Int64(i)
		case TypeDate:
			return dateOf(x).Format(time.DateOnly)
		case TypeTimestamp:
			return timestampOf(x, attrs.TZone).Format(time.RFC3339Nano)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case *String:
		return v.Values[i]
	case *Raw:
		return v.Values[i]
	case *List:
		if raw, ok := v.Values[i].(*Raw); ok {
			return raw.Values
		}
	}
	return nil
}

func isNA(v Vector, i int) bool {
	switch v := v.(type) {
	case *Logical:
		return v.IsNA(i)
	case *Integer:
		return v.IsNA(i)
	case *Double:
		return v.IsNA(i)
	case *String:
		return v.IsNA(i)
	case *List:
		return v.IsNA(i)
	}
	return false
}

func dateOf(days float64) time.Time {
	return time.Unix(int64(math.Floor(days))*secondsPerDay, 0).UTC()
}

func timestampOf(secs float64, tz string) time.Time {
	whole := math.Floor(secs)
	ts := time.Unix(int64(whole), int64(math.Round((secs-whole)*1e9)))
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return ts.In(loc)
	}
	return ts.UTC()
}
