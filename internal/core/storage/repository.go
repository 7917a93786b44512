package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/shopspring/decimal"
)

// ErrUnknownObjectType is returned by readers asked for a type outside the enumeration.
var ErrUnknownObjectType = errors.New("unknown object type")

// ResultRow is one persisted row of the results table.
type ResultRow struct {
	ResultID   int64
	ObjectType costkey.ObjectType
	ObjectID   string
	Cost       decimal.Decimal
}

// TypeSummary totals the persisted rows of one object type.
type TypeSummary struct {
	ObjectType costkey.ObjectType
	Rows       int64
	Objects    int64
	Cost       decimal.Decimal
}

// ResultQuery filters ListResults. An empty ObjectID matches every id.
type ResultQuery struct {
	ObjectType costkey.ObjectType
	ObjectID   string
	Limit      int
}

// ResultReader serves persisted totals to the read API.
type ResultReader interface {
	// ListResults returns rows of one object type ordered by result_id.
	ListResults(ctx context.Context, q ResultQuery) ([]ResultRow, error)

	// Summarize returns one summary per object type that has rows.
	Summarize(ctx context.Context) ([]TypeSummary, error)
}

// StoreUnavailableError means the store cannot be reached at all. It is fatal
// for a pipeline run.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// TransactionError means the transaction for one object type was aborted.
// Other object types are unaffected.
type TransactionError struct {
	ObjectType costkey.ObjectType
	Err        error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction for object type %s aborted: %v", e.ObjectType, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// IsStoreUnavailable reports whether err carries a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var target *StoreUnavailableError
	return errors.As(err, &target)
}
