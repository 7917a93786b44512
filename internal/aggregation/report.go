package aggregation

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/ingestion"
	"gopkg.in/yaml.v3"
)

// maxReportRowErrors caps the row error samples carried across all files.
const maxReportRowErrors = 20

// FileFailure names an input that could not be fully ingested.
type FileFailure struct {
	Name  string `json:"name" yaml:"name"`
	Error string `json:"error" yaml:"error"`
}

// RowErrorSample is one skipped row kept for operators.
type RowErrorSample struct {
	File   string             `json:"file" yaml:"file"`
	Line   int                `json:"line" yaml:"line"`
	Reason costkey.SkipReason `json:"reason" yaml:"reason"`
	Error  string             `json:"error" yaml:"error"`
}

// TypeFailure names an object type whose totals were not persisted.
type TypeFailure struct {
	ObjectType string `json:"object_type" yaml:"object_type"`
	Error      string `json:"error" yaml:"error"`
}

// Report is the outcome of one pipeline run. Recovered errors are never
// dropped: they are counted here next to the successful work.
type Report struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Source    string    `json:"source" yaml:"source"`
	Phase     Phase     `json:"phase" yaml:"phase"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	FilesDiscovered int           `json:"files_discovered" yaml:"files_discovered"`
	FilesProcessed  int           `json:"files_processed" yaml:"files_processed"`
	FilesFailed     []FileFailure `json:"files_failed,omitempty" yaml:"files_failed,omitempty"`

	RowsRead          int64                        `json:"rows_read" yaml:"rows_read"`
	RowsSkipped       map[costkey.SkipReason]int64 `json:"rows_skipped,omitempty" yaml:"rows_skipped,omitempty"`
	RowErrors         []RowErrorSample             `json:"row_errors,omitempty" yaml:"row_errors,omitempty"`
	TriplesAggregated int64                        `json:"triples_aggregated" yaml:"triples_aggregated"`
	Entries           int                          `json:"entries" yaml:"entries"`

	ObjectTypesPersisted []string      `json:"object_types_persisted,omitempty" yaml:"object_types_persisted,omitempty"`
	ObjectTypesFailed    []TypeFailure `json:"object_types_failed,omitempty" yaml:"object_types_failed,omitempty"`
	RowsWritten          int64         `json:"rows_written" yaml:"rows_written"`

	IngestElapsed  time.Duration `json:"ingest_elapsed" yaml:"ingest_elapsed"`
	PersistElapsed time.Duration `json:"persist_elapsed" yaml:"persist_elapsed"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(runID, source string) *Report {
	return &Report{
		RunID:       runID,
		Source:      source,
		Phase:       PhaseIdle,
		StartedAt:   time.Now().UTC(),
		RowsSkipped: make(map[costkey.SkipReason]int64),
	}
}

// Succeeded reports whether the run reached PhaseDone.
func (r *Report) Succeeded() bool {
	return r.Phase == PhaseDone
}

// SkippedTotal sums skipped rows over every reason.
func (r *Report) SkippedTotal() int64 {
	var n int64
	for _, c := range r.RowsSkipped {
		n += c
	}
	return n
}

func (r *Report) addFile(res ingestion.FileResult) {
	r.RowsRead += res.Rows
	for reason, n := range res.Skipped {
		r.RowsSkipped[reason] += n
	}
	for _, rowErr := range res.RowErrors {
		if len(r.RowErrors) >= maxReportRowErrors && r.hasSample(rowErr.Reason) {
			continue
		}
		r.RowErrors = append(r.RowErrors, RowErrorSample{
			File:   res.Name,
			Line:   rowErr.Line,
			Reason: rowErr.Reason,
			Error:  rowErr.Err.Error(),
		})
	}
	if res.Failed() {
		r.FilesFailed = append(r.FilesFailed, FileFailure{Name: res.Name, Error: res.Err.Error()})
		return
	}
	r.FilesProcessed++
}

func (r *Report) hasSample(reason costkey.SkipReason) bool {
	for _, sample := range r.RowErrors {
		if sample.Reason == reason {
			return true
		}
	}
	return false
}

func (r *Report) addPersist(res PersistResult) {
	r.PersistElapsed = res.Elapsed
	r.RowsWritten = res.RowsWritten
	for _, outcome := range res.Outcomes {
		if outcome.Err != nil {
			r.ObjectTypesFailed = append(r.ObjectTypesFailed, TypeFailure{
				ObjectType: outcome.Type.String(),
				Error:      outcome.Err.Error(),
			})
			continue
		}
		r.ObjectTypesPersisted = append(r.ObjectTypesPersisted, outcome.Type.String())
	}
}

// WriteYAML renders the report as YAML.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}

// WriteText renders a short human readable summary.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %s\n", r.RunID, r.Phase)
	if r.Error != "" {
		fmt.Fprintf(&b, "  error: %s\n", r.Error)
	}
	fmt.Fprintf(&b, "  files: %d discovered, %d processed, %d failed\n",
		r.FilesDiscovered, r.FilesProcessed, len(r.FilesFailed))
	for _, f := range r.FilesFailed {
		fmt.Fprintf(&b, "    %s: %s\n", f.Name, f.Error)
	}
	fmt.Fprintf(&b, "  rows: %d read, %d skipped\n", r.RowsRead, r.SkippedTotal())

	reasons := make([]string, 0, len(r.RowsSkipped))
	for reason := range r.RowsSkipped {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		fmt.Fprintf(&b, "    %s: %d\n", reason, r.RowsSkipped[costkey.SkipReason(reason)])
	}

	fmt.Fprintf(&b, "  aggregated: %d triples into %d entries\n", r.TriplesAggregated, r.Entries)
	fmt.Fprintf(&b, "  object types: %d persisted, %d failed (%d rows written)\n",
		len(r.ObjectTypesPersisted), len(r.ObjectTypesFailed), r.RowsWritten)
	for _, f := range r.ObjectTypesFailed {
		fmt.Fprintf(&b, "    %s: %s\n", f.ObjectType, f.Error)
	}
	fmt.Fprintf(&b, "  elapsed: ingest %s, persist %s\n", r.IngestElapsed, r.PersistElapsed)

	_, err := io.WriteString(w, b.String())
	return err
}
