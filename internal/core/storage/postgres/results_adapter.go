package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 1000

// ResultsAdapter writes and reads the results table.
// Each WriteTotals call is one transaction scoped to a single object type.
type ResultsAdapter struct {
	db *sql.DB
}

// NewResultsAdapter creates a ResultsAdapter sharing the given connection.
func NewResultsAdapter(db *sql.DB) *ResultsAdapter {
	return &ResultsAdapter{db: db}
}

// Ping checks that the store is reachable. Context cancellation is returned
// as is; any other failure is a *storage.StoreUnavailableError.
func (a *ResultsAdapter) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &storage.StoreUnavailableError{Op: "ping", Err: err}
	}
	return nil
}

// WriteTotals appends one row per entry for object type ot in a single
// transaction. On any failure the transaction is rolled back and the returned
// error is a *storage.TransactionError, or a *storage.StoreUnavailableError
// when the connection itself was lost.
func (a *ResultsAdapter) WriteTotals(ctx context.Context, ot costkey.ObjectType, entries []aggregation.Entry) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return classifyWriteError(ot, "begin tx", err)
	}
	defer tx.Rollback() //nolint:errcheck

	insertStmt, err := tx.PrepareContext(ctx, queryInsertResult)
	if err != nil {
		return classifyWriteError(ot, "prepare insert", err)
	}
	defer insertStmt.Close()

	for _, entry := range entries {
		if _, err := insertStmt.ExecContext(ctx, ot.String(), entry.ID, entry.Cost); err != nil {
			return classifyWriteError(ot, fmt.Sprintf("insert %q", entry.ID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classifyWriteError(ot, "commit", err)
	}

	slog.Debug("[ResultsAdapter] Committed",
		"object_type", ot.String(),
		"rows", len(entries),
	)
	return nil
}

// ListResults returns persisted rows of one object type ordered by result_id.
func (a *ResultsAdapter) ListResults(ctx context.Context, q storage.ResultQuery) ([]storage.ResultRow, error) {
	if !q.ObjectType.Valid() {
		return nil, storage.ErrUnknownObjectType
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := a.db.QueryContext(ctx, queryListResults, q.ObjectType.String(), q.ObjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []storage.ResultRow
	for rows.Next() {
		row, err := scanResultRow(rows)
		if err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: iterate rows: %w", err)
	}
	return results, nil
}

// Summarize returns row count, distinct objects and cost sum per object type.
func (a *ResultsAdapter) Summarize(ctx context.Context) ([]storage.TypeSummary, error) {
	rows, err := a.db.QueryContext(ctx, querySummarizeResults)
	if err != nil {
		return nil, fmt.Errorf("summarize results: %w", err)
	}
	defer rows.Close()

	var summaries []storage.TypeSummary
	for rows.Next() {
		var (
			typeName string
			summary  storage.TypeSummary
			cost     float64
		)
		if err := rows.Scan(&typeName, &summary.Rows, &summary.Objects, &cost); err != nil {
			return nil, fmt.Errorf("summarize results: scan row: %w", err)
		}
		ot, err := costkey.ParseObjectType(typeName)
		if err != nil {
			return nil, fmt.Errorf("summarize results: %w", err)
		}
		summary.ObjectType = ot
		summary.Cost = decimal.NewFromFloat(cost)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize results: iterate rows: %w", err)
	}
	return summaries, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanResultRow scans result_id, object_type, object_id, cost.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanResultRow(row scanner) (storage.ResultRow, error) {
	var (
		result   storage.ResultRow
		typeName string
		cost     float64
	)
	if err := row.Scan(&result.ResultID, &typeName, &result.ObjectID, &cost); err != nil {
		return storage.ResultRow{}, fmt.Errorf("failed to scan result row: %w", err)
	}
	ot, err := costkey.ParseObjectType(typeName)
	if err != nil {
		return storage.ResultRow{}, err
	}
	result.ObjectType = ot
	result.Cost = decimal.NewFromFloat(cost)
	return result, nil
}
