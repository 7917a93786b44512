package v1

import (
	"fmt"
	"unicode/utf8"

	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/shopspring/decimal"
)

const (
	// MaxObjectIDLength matches the width of results.object_id.
	MaxObjectIDLength = costkey.MaxObjectIDLength
	// MaxListLimit caps one page of persisted rows.
	MaxListLimit = 10000
)

// CostRow is one persisted total as served by the read API.
// Rows are append-only: the same object may appear once per pipeline run.
type CostRow struct {
	ResultID   int64           `json:"result_id"`
	ObjectType string          `json:"object_type"`
	ObjectID   string          `json:"object_id"`
	Cost       decimal.Decimal `json:"cost"`
}

// CostSummary totals the persisted rows of one object type.
type CostSummary struct {
	ObjectType string          `json:"object_type"`
	Ordinal    int             `json:"ordinal"`
	Rows       int64           `json:"rows"`
	Objects    int64           `json:"objects"`
	Cost       decimal.Decimal `json:"cost"`
}

// ListCostsRequest selects persisted rows of one object type.
type ListCostsRequest struct {
	ObjectType string `uri:"object_type" binding:"required"`
	ObjectID   string `form:"object_id"`
	Limit      int    `form:"limit"`
}

// Validate checks the request bounds. The object type itself is resolved by the service.
func (r *ListCostsRequest) Validate() error {
	if r.ObjectType == "" {
		return fmt.Errorf("object_type is required")
	}
	if utf8.RuneCountInString(r.ObjectID) > MaxObjectIDLength {
		return fmt.Errorf("object_id longer than %d characters", MaxObjectIDLength)
	}
	if r.Limit < 0 || r.Limit > MaxListLimit {
		return fmt.Errorf("limit must be between 0 and %d", MaxListLimit)
	}
	return nil
}
