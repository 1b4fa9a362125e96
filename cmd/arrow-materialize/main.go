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

// Command arrow-materialize converts Arrow IPC, Parquet, CSV and Avro data
// into host vectors and prints them.
//
// Examples:
//
//	$> arrow-materialize ./testdata/primitives.arrow
//	table: 6 rows, 3 columns
//	  col[0] "bools" <logical>: [true NA false true NA false]
//	  col[1] "int32s" <integer>: [-1 NA -3 -11 NA -13]
//	  col[2] "float64s" <double>: [1.5 NA 3.5 11.5 NA 13.5]
//
//	$> gen-arrow-stream | arrow-materialize --json
//	{"bools":[true,null,false,true,null,false],...}
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/amoeba/arrow-nanoarrow/materialize"
	"github.com/amoeba/arrow-nanoarrow/vector"
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/avro"
	"github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/docopt/docopt-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const usage = `Arrow Materialize.
Usage:
  arrow-materialize -h | --help
  arrow-materialize [--json] [--int64] [--verbose] [--jobs=N] [<file>...]
Options:
  -h --help     Show this screen.
  --json        Format output as JSON instead of text.
  --int64       Keep 64-bit integers exact instead of converting them to doubles.
  --verbose     Log conversion events to stderr.
  --jobs=N      Number of files converted concurrently [default: 4].

Files ending in .parquet, .csv or .avro are read as such, anything else as
an Arrow IPC file or stream. Without files, an IPC stream is read from stdin.`

const batchSize = 64 * 1024

type config struct {
	JSON    bool `docopt:"--json"`
	Int64   bool
	Verbose bool
	Jobs    string
	File    []string
}

func main() {
	opts, _ := docopt.ParseDoc(usage)
	var cfg config
	if err := opts.Bind(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	logger := zap.NewNop()
	if cfg.Verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}

	r, err := newRunner(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	ctx := context.Background()
	switch len(cfg.File) {
	case 0:
		err = r.processStream(ctx, os.Stdout, os.Stdin)
	default:
		err = r.processFiles(ctx, os.Stdout, cfg.File)
	}
	if err != nil {
		logger.Sync()
		fmt.Fprintln(os.Stderr, "arrow-materialize:", err)
		os.Exit(1)
	}
}

type runner struct {
	cache  *materialize.Cache
	logger *zap.Logger
	mem    memory.Allocator
	json   bool
	jobs   int
}

func newRunner(cfg config, logger *zap.Logger) (*runner, error) {
	jobs := 1
	if cfg.Jobs != "" {
		n, err := strconv.Atoi(cfg.Jobs)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("--jobs needs a positive integer, got %q", cfg.Jobs)
		}
		jobs = n
	}

	opts := []materialize.Option{materialize.WithLogger(logger)}
	if cfg.Int64 {
		opts = append(opts, materialize.WithInt64(materialize.Int64AsOpaque))
	}
	return &runner{
		cache:  materialize.NewCache(opts...),
		logger: logger,
		mem:    memory.NewGoAllocator(),
		json:   cfg.JSON,
		jobs:   jobs,
	}, nil
}

func (r *runner) processStream(ctx context.Context, w io.Writer, rin io.Reader) error {
	rdr, err := ipc.NewReader(rin, ipc.WithAllocator(r.mem))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	defer rdr.Release()

	out, err := r.convert(ctx, "<stdin>", rdr)
	if err != nil {
		return err
	}
	return r.write(w, out)
}

// processFiles converts the files concurrently and writes the results in
// argument order.
func (r *runner) processFiles(ctx context.Context, w io.Writer, names []string) error {
	results := make([]vector.Vector, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, name := range names {
		g.Go(func() error {
			out, err := r.convertFile(ctx, name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, name := range names {
		if len(names) > 1 {
			fmt.Fprintf(w, "file: %s\n", filepath.Base(name))
		}
		if results[i] == nil {
			continue
		}
		if err := r.write(w, results[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) convertFile(ctx context.Context, fname string) (vector.Vector, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".parquet":
		return r.convertParquet(ctx, fname)
	case ".csv":
		return r.convertCSV(ctx, fname)
	case ".avro":
		return r.convertAvro(ctx, fname)
	}
	return r.convertIPC(ctx, fname)
}

func (r *runner) convertIPC(ctx context.Context, fname string) (vector.Vector, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hdr := make([]byte, len(ipc.Magic))
	_, err = io.ReadFull(f, hdr)
	if err != nil {
		return nil, fmt.Errorf("could not read file header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	if !bytes.Equal(hdr, ipc.Magic) {
		// try as a stream.
		rdr, err := ipc.NewReader(f, ipc.WithAllocator(r.mem))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		defer rdr.Release()
		return r.convert(ctx, fname, rdr)
	}

	fr, err := ipc.NewFileReader(f, ipc.WithAllocator(r.mem))
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	recs := make([]arrow.Record, 0, fr.NumRecords())
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for i := 0; i < fr.NumRecords(); i++ {
		rec, err := fr.RecordAt(i)
		if err != nil {
			return nil, fmt.Errorf("could not read record %d: %w", i, err)
		}
		recs = append(recs, rec)
	}

	rdr, err := array.NewRecordReader(fr.Schema(), recs)
	if err != nil {
		return nil, err
	}
	defer rdr.Release()
	return r.convert(ctx, fname, rdr)
}

func (r *runner) convertParquet(ctx context.Context, fname string) (vector.Vector, error) {
	pf, err := file.OpenParquetFile(fname, false)
	if err != nil {
		return nil, fmt.Errorf("could not open parquet file: %w", err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: batchSize}, r.mem)
	if err != nil {
		return nil, err
	}
	rdr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	defer rdr.Release()
	return r.convert(ctx, fname, rdr)
}

func (r *runner) convertCSV(ctx context.Context, fname string) (vector.Vector, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := csv.NewInferringReader(f,
		csv.WithHeader(true),
		csv.WithChunk(batchSize),
		csv.WithAllocator(r.mem),
		csv.WithNullReader(true, "", "NA"))
	defer rdr.Release()

	// the schema of an inferring reader is known once the first record is read
	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for rdr.Next() {
		rec := rdr.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := rdr.Err(); err != nil {
		return nil, err
	}
	if rdr.Schema() == nil {
		return nil, nil
	}

	rr, err := array.NewRecordReader(rdr.Schema(), recs)
	if err != nil {
		return nil, err
	}
	defer rr.Release()
	return r.convert(ctx, fname, rr)
}

func (r *runner) convertAvro(ctx context.Context, fname string) (vector.Vector, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr, err := avro.NewOCFReader(bufio.NewReader(f),
		avro.WithChunk(batchSize),
		avro.WithAllocator(r.mem))
	if err != nil {
		return nil, fmt.Errorf("could not open avro file: %w", err)
	}
	defer rdr.Release()
	defer rdr.Close()
	return r.convert(ctx, fname, rdr)
}

func (r *runner) convert(ctx context.Context, name string, rdr array.RecordReader) (vector.Vector, error) {
	conv, err := r.cache.Get(rdr.Schema(), nil)
	if err != nil {
		return nil, err
	}
	defer r.cache.Put(conv)

	start := time.Now()
	out, err := conv.ConvertReader(ctx, rdr)
	if err != nil {
		return nil, err
	}
	r.logger.Info("materialized",
		zap.String("source", name),
		zap.Int("rows", out.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}

func (r *runner) write(w io.Writer, v vector.Vector) error {
	if !r.json {
		return vector.Format(w, v)
	}
	out, err := vector.MarshalJSON(v)
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
