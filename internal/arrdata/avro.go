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


package arrdata

import (
	"os"
	"testing"

	"github.com/hamba/avro/v2/ocf"
)

// AvroSchema is the schema of the Avro readings fixture. The optional
// fields are nullable unions.
const AvroSchema = `{
  "type": "record",
  "name": "reading",
  "fields": [
    {"name": "id", "type": "long"},
    {"name": "ok", "type": "boolean"},
    {"name": "value", "type": ["null", "double"]},
    {"name": "label", "type": ["null", "string"]}
  ]
}`

// Reading is one row of the Avro readings fixture.
type Reading struct {
	ID    int64    `avro:"id"`
	OK    bool     `avro:"ok"`
	Value *float64 `avro:"value"`
	Label *string  `avro:"label"`
}

// AvroReadings returns the rows of the Avro readings fixture.
func AvroReadings() []any {
	value, neg := 1.5, -2.0
	a, c := "a", "c"
	return []any{
		Reading{ID: 1, OK: true, Value: &value, Label: &a},
		Reading{ID: 2, OK: false},
		Reading{ID: 3, OK: true, Value: &neg, Label: &c},
	}
}

// WriteAvro writes rows to the given file descriptor as an Avro object
// container file with the given schema.
func WriteAvro(t *testing.T, f *os.File, schema string, rows []any) {
	t.Helper()

	enc, err := ocf.NewEncoder(schema, f)
	if err != nil {
		t.Fatal(err)
	}

	for i, row := range rows {
		err = enc.Encode(row)
		if err != nil {
			t.Fatalf("could not write row[%d]: %v", i, err)
		}
	}

	err = enc.Close()
	if err != nil {
		t.Fatal(err)
	}
}
