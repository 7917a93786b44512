package aggregation

import (
	"sort"

	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/shopspring/decimal"
)

// Table holds running cost totals per (object type, object id).
//
// Table is not safe for concurrent use. The pipeline gives it a single owner
// (the sink) and hands it to the persister only after the owner is done.
type Table struct {
	sums    map[Key]decimal.Decimal
	perType [costkey.NumObjectTypes + 1]int
	triples int64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{sums: make(map[Key]decimal.Decimal)}
}

// Add folds one triple into the table, starting absent keys at zero.
func (t *Table) Add(tr costkey.Triple) {
	key := Key{Type: tr.Type, ID: tr.ID}
	current, ok := t.sums[key]
	if !ok {
		t.perType[tr.Type]++
		t.sums[key] = tr.Cost
	} else {
		t.sums[key] = current.Add(tr.Cost)
	}
	t.triples++
}

// Get returns the total for key.
func (t *Table) Get(key Key) (decimal.Decimal, bool) {
	v, ok := t.sums[key]
	return v, ok
}

// Len is the number of distinct keys.
func (t *Table) Len() int {
	return len(t.sums)
}

// LenType is the number of distinct ids recorded for ot.
func (t *Table) LenType(ot costkey.ObjectType) int {
	if !ot.Valid() {
		return 0
	}
	return t.perType[ot]
}

// Triples is the number of triples added so far.
func (t *Table) Triples() int64 {
	return t.triples
}

// Entries returns the totals of one object type ordered by id.
func (t *Table) Entries(ot costkey.ObjectType) []Entry {
	entries := make([]Entry, 0, t.LenType(ot))
	for key, cost := range t.sums {
		if key.Type == ot {
			entries = append(entries, Entry{ID: key.ID, Cost: cost})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
