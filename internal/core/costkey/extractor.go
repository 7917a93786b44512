package costkey

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	// SupportedVersion is the only composite key version that is rolled up.
	SupportedVersion = "v1"

	// MaxObjectIDLength is the width of results.object_id, in characters.
	MaxObjectIDLength = 64

	keySeparator = ":"
)

// Record is one parsed CSV row keyed by header column name.
type Record map[string]string

// Columns names the two columns the extractor reads.
type Columns struct {
	Cost     string
	Metadata string
}

// DefaultColumns matches the AWS cost export layout with the scalr-meta
// cost allocation tag.
func DefaultColumns() Columns {
	return Columns{
		Cost:     "Cost",
		Metadata: "user:scalr-meta",
	}
}

// Triple is the unit passed from ingestion to aggregation.
type Triple struct {
	Type ObjectType
	ID   string
	Cost decimal.Decimal
}

// Extract maps one record to the triples its composite key assigns.
// Records that carry no usable key yield no triples and a SkipReason.
// A malformed key or cost yields a typed error and no triples; the row is
// expected to be skipped by the caller.
func Extract(rec Record, cols Columns) ([]Triple, SkipReason, error) {
	meta := rec[cols.Metadata]
	if meta == "" {
		return nil, SkipMissingKey, nil
	}

	parts := strings.Split(meta, keySeparator)
	if parts[0] != SupportedVersion {
		return nil, SkipUnsupportedVersion, nil
	}
	if len(parts) <= NumObjectTypes {
		return nil, SkipMalformedKey, &MalformedKeyError{Key: meta, Parts: len(parts), Required: NumObjectTypes + 1}
	}

	for _, t := range ObjectTypes() {
		if id := parts[t.Ordinal()]; utf8.RuneCountInString(id) > MaxObjectIDLength {
			return nil, SkipMalformedKey, &MalformedKeyError{Key: meta, Parts: len(parts), Required: NumObjectTypes + 1, ID: id}
		}
	}

	var triples []Triple
	var cost decimal.Decimal
	for _, t := range ObjectTypes() {
		id := parts[t.Ordinal()]
		if id == "" {
			continue
		}
		// Cost is parsed lazily so rows that pertain to no object never fail on it.
		if triples == nil {
			c, err := parseCostColumn(rec, cols.Cost)
			if err != nil {
				return nil, SkipMalformedCost, err
			}
			cost = c
			triples = make([]Triple, 0, NumObjectTypes)
		}
		triples = append(triples, Triple{Type: t, ID: id, Cost: cost})
	}

	if len(triples) == 0 {
		return nil, SkipNoObjects, nil
	}
	return triples, SkipNone, nil
}

func parseCostColumn(rec Record, column string) (decimal.Decimal, error) {
	raw, ok := rec[column]
	if !ok {
		return decimal.Zero, &MalformedCostError{Value: raw, Err: errMissingCostColumn}
	}
	cost, err := ParseCost(raw)
	if err != nil {
		return decimal.Zero, &MalformedCostError{Value: raw, Err: err}
	}
	return cost, nil
}
