package projection

import (
	"errors"
	"net/http"

	"github.com/aevon-lab/costroll/internal/aggregation"
	v1 "github.com/aevon-lab/costroll/internal/api/v1"
	httperr "github.com/aevon-lab/costroll/internal/core/errors"
	"github.com/aevon-lab/costroll/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/costs", s.HandleSummarizeCosts)
	r.GET("/v1/costs/:object_type", s.HandleListCosts)

	if s.runner != nil {
		r.POST("/v1/runs", s.HandleTriggerRun)
	}
}

// HandleSummarizeCosts handles GET /v1/costs
func (s *Service) HandleSummarizeCosts(c *gin.Context) {
	resp, err := s.SummarizeCosts(c.Request.Context())
	if err != nil {
		writeStoreError(c, "Failed to summarize costs", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleListCosts handles GET /v1/costs/:object_type
// Query parameters: object_id, limit
func (s *Service) HandleListCosts(c *gin.Context) {
	var req v1.ListCostsRequest

	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.ListCosts(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidQueryError,
				Message:   "Invalid cost query",
				Details:   err.Error(),
			})
		case errors.Is(err, storage.ErrUnknownObjectType):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpUnknownObjectTypeError,
				Message:   "Unknown object type",
				Details:   err.Error(),
			})
		default:
			writeStoreError(c, "Failed to list costs", err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleTriggerRun handles POST /v1/runs
func (s *Service) HandleTriggerRun(c *gin.Context) {
	report, err := s.TriggerRun(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, aggregation.ErrRunInProgress):
			c.JSON(http.StatusConflict, httperr.ErrorResponse{
				ErrorType: httperr.HttpRunInProgressError,
				Message:   "A pipeline run is already in progress",
			})
		case storage.IsStoreUnavailable(err):
			c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
				ErrorType: httperr.HttpStoreUnavailableError,
				Message:   "Result store unavailable",
				Details:   report,
			})
		default:
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpRunFailedError,
				Message:   err.Error(),
				Details:   report,
			})
		}
		return
	}

	c.JSON(http.StatusOK, report)
}

func writeStoreError(c *gin.Context, message string, err error) {
	if storage.IsStoreUnavailable(err) {
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStoreUnavailableError,
			Message:   message,
			Details:   err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   message,
		Details:   err.Error(),
	})
}
