package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	coreagg "github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/ingestion"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkerHeadroom    = 2
	defaultChannelBufferSize = 1024
)

// ErrRunInProgress is returned when Run is called while another run of the
// same pipeline has not finished.
var ErrRunInProgress = errors.New("pipeline run already in progress")

// Options controls the ingestion pool and channel sizing.
type Options struct {
	// Workers pins the ingestor pool size. Zero means NumCPU + WorkerHeadroom.
	Workers int
	// WorkerHeadroom is added to NumCPU so the sink and persister stay
	// schedulable next to I/O bound ingestors.
	WorkerHeadroom int
	// ChannelBufferSize is the capacity of the triple channel.
	ChannelBufferSize int
}

// DefaultOptions returns NumCPU+2 workers and a 1024 slot channel.
func DefaultOptions() Options {
	return Options{
		WorkerHeadroom:    defaultWorkerHeadroom,
		ChannelBufferSize: defaultChannelBufferSize,
	}
}

func (o Options) normalized() Options {
	n := o
	if n.WorkerHeadroom < 0 {
		n.WorkerHeadroom = defaultWorkerHeadroom
	}
	if n.Workers <= 0 {
		n.Workers = runtime.NumCPU() + n.WorkerHeadroom
	}
	if n.ChannelBufferSize < 0 {
		n.ChannelBufferSize = defaultChannelBufferSize
	}
	return n
}

// Pipeline coordinates one load: discover inputs, ingest them in parallel,
// aggregate through a single sink, persist per object type.
type Pipeline struct {
	source   ingestion.Source
	ingestor *ingestion.Ingestor
	store    ResultWriter
	metrics  *Metrics
	opts     Options

	runMu sync.Mutex
}

// NewPipeline wires a pipeline. metrics may be nil.
func NewPipeline(
	source ingestion.Source,
	ingestor *ingestion.Ingestor,
	store ResultWriter,
	metrics *Metrics,
	opts Options,
) *Pipeline {
	return &Pipeline{
		source:   source,
		ingestor: ingestor,
		store:    store,
		metrics:  metrics,
		opts:     opts.normalized(),
	}
}

// Run executes one load and returns its report. The error is non-nil only
// when the run failed as a whole (inputs could not be listed, the store is
// unavailable, or ctx was cancelled); per-row, per-file and per-object-type
// failures are recorded in the report of a successful run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	if !p.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	defer p.runMu.Unlock()

	run := &pipelineRun{report: newReport(uuid.New().String(), p.source.String()), metrics: p.metrics}
	report := run.report

	slog.Info("[Pipeline] Starting run",
		"run_id", report.RunID,
		"source", report.Source,
		"workers", p.opts.Workers,
		"channel_buffer_size", p.opts.ChannelBufferSize,
	)

	run.transition(PhaseDiscovering)
	files, err := p.source.List(ctx)
	if err != nil {
		return report, run.fail(fmt.Errorf("discover inputs: %w", err))
	}
	report.FilesDiscovered = len(files)

	run.transition(PhaseIngesting)
	ingestStart := time.Now()

	triples := make(chan costkey.Triple, p.opts.ChannelBufferSize)
	sink := NewSink(NewPersister(p.store, p.metrics), func(*coreagg.Table) {
		run.transition(PhasePersisting)
	})
	sinkDone := make(chan SinkResult, 1)
	go func() {
		sinkDone <- sink.Run(ctx, triples)
	}()

	results := make([]ingestion.FileResult, len(files))
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	for i, name := range files {
		g.Go(func() error {
			results[i] = p.ingestor.Ingest(ctx, p.source, name, triples)
			p.metrics.observeFile(results[i])
			return nil
		})
	}
	// Ingestors report failures on their FileResult so siblings keep running.
	_ = g.Wait()

	// Every producer has returned: nothing can be sent anymore. The sink moves
	// the run to persisting, so draining must be entered before the close.
	run.transition(PhaseDraining)
	close(triples)

	report.IngestElapsed = time.Since(ingestStart)
	for _, res := range results {
		report.addFile(res)
	}

	sinkResult := <-sinkDone
	report.TriplesAggregated = sinkResult.Table.Triples()
	report.Entries = sinkResult.Table.Len()
	if sinkResult.Err != nil {
		return report, run.fail(fmt.Errorf("aggregate: %w", sinkResult.Err))
	}

	report.addPersist(sinkResult.Persist)
	if sinkResult.Persist.Err != nil {
		return report, run.fail(fmt.Errorf("persist: %w", sinkResult.Persist.Err))
	}

	run.transition(PhaseDone)
	slog.Info("[Pipeline] Run complete",
		"run_id", report.RunID,
		"files_processed", report.FilesProcessed,
		"files_failed", len(report.FilesFailed),
		"rows_read", report.RowsRead,
		"rows_skipped", report.SkippedTotal(),
		"entries", report.Entries,
		"object_types_persisted", len(report.ObjectTypesPersisted),
		"object_types_failed", len(report.ObjectTypesFailed),
		"ingest_elapsed", report.IngestElapsed,
		"persist_elapsed", report.PersistElapsed,
	)
	return report, nil
}

// pipelineRun tracks the phase of one Run. The sink goroutine moves it to
// persisting, so transitions are guarded.
type pipelineRun struct {
	mu      sync.Mutex
	report  *Report
	metrics *Metrics
}

func (r *pipelineRun) transition(to Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from := r.report.Phase
	if !from.CanTransition(to) {
		slog.Warn("[Pipeline] Ignoring invalid phase transition", "run_id", r.report.RunID, "from", from, "to", to)
		return
	}
	r.report.Phase = to
	slog.Debug("[Pipeline] Phase", "run_id", r.report.RunID, "from", from, "to", to)
	if to.Terminal() {
		r.metrics.observeRun(to)
	}
}

func (r *pipelineRun) fail(err error) error {
	r.mu.Lock()
	r.report.Error = err.Error()
	r.mu.Unlock()

	r.transition(PhaseFailed)
	slog.Error("[Pipeline] Run failed", "run_id", r.report.RunID, "error", err)
	return err
}
