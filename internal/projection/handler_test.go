package projection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aevon-lab/costroll/internal/aggregation"
	"github.com/aevon-lab/costroll/internal/core/costkey"
	httperr "github.com/aevon-lab/costroll/internal/core/errors"
	"github.com/aevon-lab/costroll/internal/core/storage"
	storagemocks "github.com/aevon-lab/costroll/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type runnerFunc func(ctx context.Context) (*aggregation.Report, error)

func (f runnerFunc) Run(ctx context.Context) (*aggregation.Report, error) { return f(ctx) }

func serve(svc *Service, method, url string) *httptest.ResponseRecorder {
	r := gin.New()
	svc.RegisterRoutes(r)
	req := httptest.NewRequest(method, url, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestService_HandleListCosts_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expectedType   string
		configure      func(reader *storagemocks.ResultReader)
	}{
		{
			name:           "rows returned",
			url:            "/v1/costs/server?object_id=srv-3&limit=5",
			expectedStatus: http.StatusOK,
			configure: func(reader *storagemocks.ResultReader) {
				reader.EXPECT().
					ListResults(mock.Anything, storage.ResultQuery{ObjectType: costkey.Server, ObjectID: "srv-3", Limit: 5}).
					Return([]storage.ResultRow{{ResultID: 4, ObjectType: costkey.Server, ObjectID: "srv-3", Cost: decimal.RequireFromString("10.5")}}, nil).
					Once()
			},
		},
		{
			name:           "non numeric limit returns 400",
			url:            "/v1/costs/env?limit=ten",
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
			configure:      func(_ *storagemocks.ResultReader) {},
		},
		{
			name:           "limit out of range returns 400",
			url:            "/v1/costs/env?limit=100000",
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQueryError,
			configure:      func(_ *storagemocks.ResultReader) {},
		},
		{
			name:           "unknown object type returns 404",
			url:            "/v1/costs/cluster",
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpUnknownObjectTypeError,
			configure:      func(_ *storagemocks.ResultReader) {},
		},
		{
			name:           "store unavailable returns 503",
			url:            "/v1/costs/env",
			expectedStatus: http.StatusServiceUnavailable,
			expectedType:   httperr.HttpStoreUnavailableError,
			configure: func(reader *storagemocks.ResultReader) {
				reader.EXPECT().
					ListResults(mock.Anything, mock.Anything).
					Return(nil, &storage.StoreUnavailableError{Op: "query", Err: errors.New("connection refused")}).
					Once()
			},
		},
		{
			name:           "store error returns 500",
			url:            "/v1/costs/env",
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
			configure: func(reader *storagemocks.ResultReader) {
				reader.EXPECT().
					ListResults(mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("db failure")).
					Once()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reader := storagemocks.NewResultReader(t)
			tc.configure(reader)

			resp := serve(NewService(reader, nil), http.MethodGet, tc.url)

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)
			if tc.expectedType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				assert.Equal(t, tc.expectedType, body.ErrorType)
			}
		})
	}
}

func TestService_HandleSummarizeCosts(t *testing.T) {
	gin.SetMode(gin.TestMode)

	reader := storagemocks.NewResultReader(t)
	reader.EXPECT().Summarize(mock.Anything).Return([]storage.TypeSummary{
		{ObjectType: costkey.Env, Rows: 1, Objects: 1, Cost: decimal.RequireFromString("7.25")},
	}, nil).Once()

	resp := serve(NewService(reader, nil), http.MethodGet, "/v1/costs")

	require.Equal(t, http.StatusOK, resp.Code)
	var body CostSummaryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.ObjectTypes, 4)
	assert.Equal(t, "7.25", body.Cost.String())
}

func TestService_HandleTriggerRun_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		runner         runnerFunc
		expectedStatus int
	}{
		{
			name: "completed run returns report",
			runner: func(context.Context) (*aggregation.Report, error) {
				return &aggregation.Report{RunID: "run-1", Phase: aggregation.PhaseDone}, nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "run in progress returns 409",
			runner: func(context.Context) (*aggregation.Report, error) {
				return nil, aggregation.ErrRunInProgress
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "store unavailable returns 503",
			runner: func(context.Context) (*aggregation.Report, error) {
				return &aggregation.Report{Phase: aggregation.PhaseFailed},
					fmt.Errorf("persist: %w", &storage.StoreUnavailableError{Op: "ping", Err: errors.New("refused")})
			},
			expectedStatus: http.StatusServiceUnavailable,
		},
		{
			name: "other fatal failure returns 500",
			runner: func(context.Context) (*aggregation.Report, error) {
				return &aggregation.Report{Phase: aggregation.PhaseFailed}, errors.New("discover inputs: access denied")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(storagemocks.NewResultReader(t), tc.runner)
			resp := serve(svc, http.MethodPost, "/v1/runs")

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)
		})
	}
}

func TestService_RunRouteAbsentWithoutRunner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resp := serve(NewService(storagemocks.NewResultReader(t), nil), http.MethodPost, "/v1/runs")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
