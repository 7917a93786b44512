package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aevon-lab/costroll/internal/core/costkey"
)

const (
	// maxRowErrorSamples caps the row errors kept per file for the run report.
	maxRowErrorSamples = 5

	utf8BOM = "\ufeff"
)

// RowError is one skipped row kept as a sample for the report.
type RowError struct {
	Line   int
	Reason costkey.SkipReason
	Err    error
}

// FileResult summarizes the ingestion of one input.
type FileResult struct {
	Name      string
	Rows      int64
	Triples   int64
	Skipped   map[costkey.SkipReason]int64
	RowErrors []RowError
	Elapsed   time.Duration

	// Err is a *FileAccessError when the file could not be fully read.
	Err error
}

// Failed reports whether the file was abandoned.
func (r FileResult) Failed() bool {
	return r.Err != nil
}

// Ingestor streams one CSV input and forwards extracted triples.
// It holds no mutable state, so one Ingestor serves all workers.
type Ingestor struct {
	columns costkey.Columns
}

// NewIngestor creates an Ingestor reading the given columns.
func NewIngestor(columns costkey.Columns) *Ingestor {
	return &Ingestor{columns: columns}
}

// Ingest reads name from src and sends every extracted triple on out.
// Rows that fail extraction are skipped and counted; the file continues.
// Failure to open or read the file is reported on FileResult.Err.
func (i *Ingestor) Ingest(ctx context.Context, src Source, name string, out chan<- costkey.Triple) FileResult {
	start := time.Now()
	result := FileResult{
		Name:    name,
		Skipped: make(map[costkey.SkipReason]int64),
	}

	slog.Info("[Ingestor] Processing file", "file", name)

	err := i.ingest(ctx, src, name, out, &result)
	result.Elapsed = time.Since(start)
	if err != nil {
		result.Err = &FileAccessError{Name: name, Err: err}
		slog.Error("[Ingestor] File failed",
			"file", name,
			"rows", result.Rows,
			"elapsed", result.Elapsed,
			"error", err,
		)
		return result
	}

	slog.Info("[Ingestor] Processed file",
		"file", name,
		"rows", result.Rows,
		"triples", result.Triples,
		"skipped", result.skippedTotal(),
		"elapsed", result.Elapsed,
	)
	return result
}

func (i *Ingestor) ingest(ctx context.Context, src Source, name string, out chan<- costkey.Triple, result *FileResult) error {
	body, err := src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer body.Close()

	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := readHeader(reader, i.columns)
	if err != nil {
		return err
	}

	rec := make(costkey.Record, len(header))
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("read: %w", err)
		}
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return fmt.Errorf("read: %w", err)
			}
			result.Rows++
			result.skip(parseErr.Line, costkey.SkipMalformedRow, err)
			continue
		}
		result.Rows++

		for idx, col := range header {
			if idx < len(fields) {
				rec[col] = fields[idx]
			} else {
				delete(rec, col)
			}
		}

		triples, reason, err := costkey.Extract(rec, i.columns)
		if reason != costkey.SkipNone {
			line, _ := reader.FieldPos(0)
			result.skip(line, reason, err)
			continue
		}

		for _, tr := range triples {
			select {
			case out <- tr:
				result.Triples++
			case <-ctx.Done():
				return fmt.Errorf("send: %w", ctx.Err())
			}
		}
	}
}

// readHeader returns the header columns, copied out of the reader's reused
// buffer, after checking the configured columns are present.
func readHeader(reader *csv.Reader, columns costkey.Columns) ([]string, error) {
	fields, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header := make([]string, len(fields))
	copy(header, fields)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var missing []string
	for _, want := range []string{columns.Cost, columns.Metadata} {
		if !contains(header, want) {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing column(s) %q", missing)
	}
	return header, nil
}

func (r *FileResult) skip(line int, reason costkey.SkipReason, err error) {
	r.Skipped[reason]++
	if err == nil {
		return
	}
	// The first error of each reason is always kept.
	if r.Skipped[reason] == 1 || len(r.RowErrors) < maxRowErrorSamples {
		r.RowErrors = append(r.RowErrors, RowError{Line: line, Reason: reason, Err: err})
	}
	slog.Debug("[Ingestor] Skipped row", "file", r.Name, "line", line, "reason", reason, "error", err)
}

func (r *FileResult) skippedTotal() int64 {
	var n int64
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
