package aggregation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	coreagg "github.com/aevon-lab/costroll/internal/core/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
	"github.com/shopspring/decimal"
)

// InMemoryResultStore is a test helper that implements ResultWriter.
// Rows are appended, never merged, like the Postgres results table.
type InMemoryResultStore struct {
	mu   sync.Mutex
	rows []storage.ResultRow

	// PingErr, if set, is returned by Ping.
	PingErr error
	// FailTypes makes WriteTotals fail for the given object types.
	FailTypes map[costkey.ObjectType]error

	nextID int64
	writes int
}

// NewInMemoryResultStore creates an empty in-memory result store.
func NewInMemoryResultStore() *InMemoryResultStore {
	return &InMemoryResultStore{FailTypes: make(map[costkey.ObjectType]error)}
}

func (s *InMemoryResultStore) Ping(ctx context.Context) error {
	if s.PingErr != nil {
		return s.PingErr
	}
	return ctx.Err()
}

func (s *InMemoryResultStore) WriteTotals(ctx context.Context, ot costkey.ObjectType, entries []coreagg.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	if err, ok := s.FailTypes[ot]; ok {
		return err
	}
	// Same width check as the VARCHAR object_id column; the whole type fails.
	for _, e := range entries {
		if utf8.RuneCountInString(e.ID) > costkey.MaxObjectIDLength {
			return &storage.TransactionError{ObjectType: ot, Err: fmt.Errorf("object id %q too long", e.ID)}
		}
	}
	for _, e := range entries {
		s.nextID++
		s.rows = append(s.rows, storage.ResultRow{
			ResultID:   s.nextID,
			ObjectType: ot,
			ObjectID:   e.ID,
			Cost:       e.Cost,
		})
	}
	return nil
}

// Rows returns a copy of every stored row in insertion order.
func (s *InMemoryResultStore) Rows() []storage.ResultRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.ResultRow(nil), s.rows...)
}

// RowsFor returns the stored rows of one object type, ordered by object id.
func (s *InMemoryResultStore) RowsFor(ot costkey.ObjectType) []storage.ResultRow {
	var out []storage.ResultRow
	for _, r := range s.Rows() {
		if r.ObjectType == ot {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ObjectID < out[j].ObjectID })
	return out
}

// Total returns the sum of every stored cost for one key.
func (s *InMemoryResultStore) Total(ot costkey.ObjectType, id string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.RowsFor(ot) {
		if r.ObjectID == id {
			total = total.Add(r.Cost)
		}
	}
	return total
}

// Writes counts WriteTotals calls, including failed ones.
func (s *InMemoryResultStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
