package aggregation

import (
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/shopspring/decimal"
)

// Key uniquely identifies an aggregate entry.
type Key struct {
	Type costkey.ObjectType
	ID   string
}

// Entry is one (object id, total cost) pair within a single object type.
type Entry struct {
	ID   string
	Cost decimal.Decimal
}
