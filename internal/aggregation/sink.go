package aggregation

import (
	"context"
	"log/slog"

	coreagg "github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
)

// SinkResult is what the sink hands back once it has finished.
type SinkResult struct {
	Table   *coreagg.Table
	Persist PersistResult

	// Err is set when the sink stopped before its input was closed.
	// Nothing is persisted in that case.
	Err error
}

// Sink is the single consumer of the triple channel and the only writer of
// the aggregate table. It needs no locking: all synchronization happens at
// the channel.
type Sink struct {
	persister *Persister
	onDrained func(table *coreagg.Table)
}

// NewSink creates a sink that persists through p once drained.
// onDrained, if non-nil, is called after the last triple and before persistence.
func NewSink(p *Persister, onDrained func(table *coreagg.Table)) *Sink {
	return &Sink{persister: p, onDrained: onDrained}
}

// Run consumes in until it is closed, then persists the frozen table.
// Closing in is the only termination signal; an empty channel just blocks.
func (s *Sink) Run(ctx context.Context, in <-chan costkey.Triple) SinkResult {
	table := coreagg.NewTable()

receive:
	for {
		select {
		case tr, ok := <-in:
			if !ok {
				break receive
			}
			table.Add(tr)
		case <-ctx.Done():
			slog.Warn("[Sink] Stopped before input was closed",
				"triples", table.Triples(),
				"error", ctx.Err(),
			)
			return SinkResult{Table: table, Err: ctx.Err()}
		}
	}

	slog.Info("[Sink] Input drained",
		"triples", table.Triples(),
		"entries", table.Len(),
	)

	if s.onDrained != nil {
		s.onDrained(table)
	}

	return SinkResult{
		Table:   table,
		Persist: s.persister.Persist(ctx, table),
	}
}
