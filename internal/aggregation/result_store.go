package aggregation

import (
	"context"

	coreagg "github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
)

// ResultWriter is the durable sink for final totals.
//
// Contract: WriteTotals is atomic per call. Either every entry of the object
// type is committed or none is. Writes are append-only; calling WriteTotals
// twice with the same entries stores them twice.
type ResultWriter interface {
	// Ping fails with a *storage.StoreUnavailableError when the store cannot be reached.
	Ping(ctx context.Context) error

	// WriteTotals commits the entries of one object type in one transaction.
	// A failure that leaves other object types writable is a
	// *storage.TransactionError; connection loss is a *storage.StoreUnavailableError.
	WriteTotals(ctx context.Context, ot costkey.ObjectType, entries []coreagg.Entry) error
}
