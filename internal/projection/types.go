package projection

import (
	v1 "github.com/aevon-lab/costroll/internal/api/v1"
	"github.com/shopspring/decimal"
)

// CostListResponse is the body of GET /v1/costs/:object_type.
type CostListResponse struct {
	ObjectType string       `json:"object_type"`
	ObjectID   string       `json:"object_id,omitempty"`
	Limit      int          `json:"limit"`
	Count      int          `json:"count"`
	Rows       []v1.CostRow `json:"rows"`
}

// CostSummaryResponse is the body of GET /v1/costs.
type CostSummaryResponse struct {
	ObjectTypes []v1.CostSummary `json:"object_types"`
	Rows        int64            `json:"rows"`
	Cost        decimal.Decimal  `json:"cost"`
}
