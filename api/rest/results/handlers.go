package results

import (
	"net/http"

	"codeberg.org/wexam/server/api/rest/pagination"
	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/wexam/results"
	"github.com/gin-gonic/gin"
)

// CreateResultHandler godoc
// @Summary Record a quiz result
// @Description Records one completed quiz attempt for the authenticated user
// @Tags results
// @Accept json
// @Produce json
// @Param request body results.CreateResultRequest true "Result data"
// @Success 201 {object} results.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/results [post]
// @Security BearerAuth
func CreateResultHandler(store ResultStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req results.CreateResultRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid result", err)
			return
		}

		if err := results.ValidateCreate(req); err != nil {
			errors.ValidationError(c, err.Error())
			return
		}

		result, err := store.Create(c.Request.Context(), userID, req)
		if err != nil {
			errors.InternalError(c, "failed to save result", err)
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}

// PerformanceHandler godoc
// @Summary Get performance analytics
// @Description Aggregates overview, chapter stats and suggestions over the user's recent results
// @Tags results
// @Produce json
// @Param limit query int false "Number of recent results to analyze"
// @Success 200 {object} results.Performance
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/results/performance [get]
// @Security BearerAuth
func PerformanceHandler(store ResultStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, results.DefaultPerformanceLimit, results.MaxPerformanceLimit)

		list, err := store.ListRecent(c.Request.Context(), userID, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to load results", err)
			return
		}

		c.JSON(http.StatusOK, results.Analyze(list))
	}
}
