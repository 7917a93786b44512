package projection

import (
	v1 "github.com/aevon-lab/costroll/internal/api/v1"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
	"github.com/shopspring/decimal"
)

// rollupSummaries lays the store summaries out in ordinal order.
// Every object type is present; types without rows report zero.
// The grand total adds the per-type costs, so an object appearing under
// several types is counted once per type.
func rollupSummaries(summaries []storage.TypeSummary) CostSummaryResponse {
	byType := make(map[costkey.ObjectType]storage.TypeSummary, len(summaries))
	for _, s := range summaries {
		if !s.ObjectType.Valid() {
			continue
		}
		byType[s.ObjectType] = s
	}

	resp := CostSummaryResponse{
		ObjectTypes: make([]v1.CostSummary, 0, costkey.NumObjectTypes),
		Cost:        decimal.Zero,
	}
	for _, ot := range costkey.ObjectTypes() {
		s, ok := byType[ot]
		if !ok {
			s = storage.TypeSummary{ObjectType: ot, Cost: decimal.Zero}
		}
		resp.ObjectTypes = append(resp.ObjectTypes, v1.CostSummary{
			ObjectType: ot.String(),
			Ordinal:    ot.Ordinal(),
			Rows:       s.Rows,
			Objects:    s.Objects,
			Cost:       s.Cost,
		})
		resp.Rows += s.Rows
		resp.Cost = resp.Cost.Add(s.Cost)
	}
	return resp
}

func toCostRows(rows []storage.ResultRow) []v1.CostRow {
	out := make([]v1.CostRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, v1.CostRow{
			ResultID:   r.ResultID,
			ObjectType: r.ObjectType.String(),
			ObjectID:   r.ObjectID,
			Cost:       r.Cost,
		})
	}
	return out
}
