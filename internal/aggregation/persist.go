package aggregation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coreagg "github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
)

// errAborted marks object types that were never attempted because the store
// became unavailable earlier in the run.
var errAborted = errors.New("not attempted: store unavailable")

// TypeOutcome is the persistence result of one object type.
type TypeOutcome struct {
	Type costkey.ObjectType
	Rows int
	Err  error
}

// PersistResult collects the per-type outcomes of one Persist call.
type PersistResult struct {
	Outcomes    []TypeOutcome
	RowsWritten int64
	Elapsed     time.Duration

	// Err is fatal: the store is unavailable or the run was cancelled.
	Err error
}

// Persister writes a finished table one object type at a time.
type Persister struct {
	store   ResultWriter
	metrics *Metrics
}

// NewPersister creates a Persister. metrics may be nil.
func NewPersister(store ResultWriter, metrics *Metrics) *Persister {
	return &Persister{store: store, metrics: metrics}
}

// Persist commits the table with one transaction per object type, in ordinal
// order. A failed transaction only loses its own object type; a lost store
// aborts every type not yet written.
func (p *Persister) Persist(ctx context.Context, table *coreagg.Table) (result PersistResult) {
	start := time.Now()
	defer func() {
		result.Elapsed = time.Since(start)
		p.metrics.observePersist(result)
	}()

	slog.Info("[Persister] Writing to store", "entries", table.Len())

	if err := p.store.Ping(ctx); err != nil {
		if isContextError(err) {
			result.Err = err
			slog.Warn("[Persister] Cancelled before writing", "error", err)
			return result
		}
		if !storage.IsStoreUnavailable(err) {
			err = &storage.StoreUnavailableError{Op: "ping", Err: err}
		}
		result.Err = err
		slog.Error("[Persister] Store unavailable", "error", err)
		return result
	}

	for _, ot := range costkey.ObjectTypes() {
		entries := table.Entries(ot)
		if len(entries) == 0 {
			continue
		}

		if result.Err != nil {
			result.Outcomes = append(result.Outcomes, TypeOutcome{Type: ot, Rows: len(entries), Err: errAborted})
			continue
		}

		err := p.store.WriteTotals(ctx, ot, entries)
		result.Outcomes = append(result.Outcomes, TypeOutcome{Type: ot, Rows: len(entries), Err: err})
		if err == nil {
			result.RowsWritten += int64(len(entries))
			slog.Info("[Persister] Committed object type",
				"object_type", ot.String(),
				"rows", len(entries),
			)
			continue
		}

		slog.Error("[Persister] Object type not persisted",
			"object_type", ot.String(),
			"rows", len(entries),
			"error", err,
		)
		if storage.IsStoreUnavailable(err) {
			result.Err = err
		} else if ctxErr := ctx.Err(); ctxErr != nil {
			result.Err = fmt.Errorf("persist %s: %w", ot, ctxErr)
		}
	}

	slog.Info("[Persister] Save to store finished",
		"rows_written", result.RowsWritten,
		"elapsed", time.Since(start),
	)
	return result
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
