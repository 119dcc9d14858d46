package projection

import (
	"errors"
	"net/http"

	httperr "github.com/aevon-lab/project-locus/internal/core/errors"
	"github.com/aevon-lab/project-locus/internal/core/stat"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all stats API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/stats", s.HandleSummary)
	r.GET("/v1/stats/:kind", s.HandleSeries)
	r.POST("/v1/stats/:kind/sweep", s.HandleSweep)
}

// HandleSummary handles GET /v1/stats
func (s *Service) HandleSummary(c *gin.Context) {
	resp, err := s.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to load stats summary")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleSeries handles GET /v1/stats/:kind
// Query parameters: days
func (s *Service) HandleSeries(c *gin.Context) {
	kind, ok := bindKind(c)
	if !ok {
		return
	}

	var req SeriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Series(c.Request.Context(), kind, req)
	if err != nil {
		writeError(c, err, "Failed to query stats")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleSweep handles POST /v1/stats/:kind/sweep
// Query parameters: start, end, ago
func (s *Service) HandleSweep(c *gin.Context) {
	kind, ok := bindKind(c)
	if !ok {
		return
	}

	var req SweepRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Sweep(c.Request.Context(), kind, req)
	if err != nil {
		writeError(c, err, "Sweep failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindKind(c *gin.Context) (stat.Kind, bool) {
	kind, err := stat.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownKindError,
			Message:   "Unknown stat kind",
			Details:   err.Error(),
		})
		return 0, false
	}
	return kind, true
}

func writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, stat.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidWindowError,
			Message:   "Invalid day window",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid stats query",
			Details:   err.Error(),
		})
	case errors.Is(err, stat.ErrUnknownKind):
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpUnknownKindError,
			Message:   "Unknown stat kind",
			Details:   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
