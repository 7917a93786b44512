package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aevon-lab/costroll/internal/aggregation"
	v1 "github.com/aevon-lab/costroll/internal/api/v1"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	"github.com/aevon-lab/costroll/internal/core/storage"
)

const defaultListLimit = 1000

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid cost query")

// Runner executes one pipeline run. *aggregation.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context) (*aggregation.Report, error)
}

// Service implements the read side over persisted totals and the run trigger.
type Service struct {
	reader storage.ResultReader
	runner Runner
}

// NewService creates a new projection service. runner may be nil, in which
// case the run trigger is not exposed.
func NewService(reader storage.ResultReader, runner Runner) *Service {
	return &Service{reader: reader, runner: runner}
}

// ListCosts returns persisted rows of one object type in insertion order.
func (s *Service) ListCosts(ctx context.Context, req v1.ListCostsRequest) (*CostListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	ot, err := costkey.ParseObjectType(req.ObjectType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", storage.ErrUnknownObjectType, req.ObjectType)
	}
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	rows, err := s.reader.ListResults(ctx, storage.ResultQuery{
		ObjectType: ot,
		ObjectID:   req.ObjectID,
		Limit:      req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list %s results: %w", ot, err)
	}

	return &CostListResponse{
		ObjectType: ot.String(),
		ObjectID:   req.ObjectID,
		Limit:      req.Limit,
		Count:      len(rows),
		Rows:       toCostRows(rows),
	}, nil
}

// SummarizeCosts returns per-type row counts and cost sums.
func (s *Service) SummarizeCosts(ctx context.Context) (*CostSummaryResponse, error) {
	summaries, err := s.reader.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize results: %w", err)
	}
	resp := rollupSummaries(summaries)
	return &resp, nil
}

// TriggerRun runs the pipeline once and returns its report. The run is
// detached from ctx cancellation so a dropped client does not abort persistence.
func (s *Service) TriggerRun(ctx context.Context) (*aggregation.Report, error) {
	if s.runner == nil {
		return nil, errors.New("pipeline runner not configured")
	}

	slog.Info("[Projection] Pipeline run requested")
	report, err := s.runner.Run(context.WithoutCancel(ctx))
	if err != nil && !errors.Is(err, aggregation.ErrRunInProgress) {
		slog.Error("[Projection] Pipeline run failed", "error", err)
	}
	return report, err
}
