package generate

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/internal/logger"
	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/internal/quota"
	"github.com/gin-gonic/gin"
)

const fallbackErrorMessage = "Failed to generate quiz. Please try again."

// Handler godoc
// @Summary Generate a quiz from study text
// @Description Generates multiple-choice or free-text questions from the supplied notes; counts against the daily quota
// @Tags generate
// @Accept json
// @Produce json
// @Param request body generate.Request true "Study text and quiz options"
// @Success 200 {object} generate.Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/generate-quiz [post]
// @Security BearerAuth
func Handler(generator QuizGenerator, usage UsageReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "Unauthorized: Missing or invalid token")
			return
		}

		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "Invalid request body.", err)
			return
		}

		result, err := generator.Generate(c.Request.Context(), userID, quizgen.RawRequest{
			Text:       req.Text,
			Difficulty: req.Difficulty,
			Type:       req.Type,
			Count:      req.Count,
		})
		if err != nil {
			respondGenerateError(c, err, usage.Limit())
			return
		}

		logger.FromContext(c.Request.Context()).Info("quiz generated",
			"user_id", userID,
			"model", result.Model,
			"attempts", len(result.Attempts),
			"questions", len(result.Quiz.Questions),
		)

		c.JSON(http.StatusOK, Response{Questions: result.Quiz.Questions})
	}
}

// maps each failure kind to its status; upstream detail never reaches the body
func respondGenerateError(c *gin.Context, err error, limit int) {
	var (
		validationErr *quizgen.ValidationError
		generationErr *quizgen.GenerationFailedError
	)

	switch {
	case stderrors.Is(err, quota.ErrLimitExceeded):
		errors.RateLimited(c, fmt.Sprintf("You have reached your daily limit of %d quizzes. Please try again tomorrow.", limit))
	case stderrors.As(err, &validationErr):
		errors.ValidationError(c, validationErr.Message)
	case stderrors.As(err, &generationErr):
		errors.GenerationFailed(c, generationErr.Reason.Message(), err)
	default:
		errors.InternalError(c, fallbackErrorMessage, err)
	}
}

// UsageHandler godoc
// @Summary Get today's quiz usage
// @Description Returns how many quizzes the caller generated today and the daily limit
// @Tags generate
// @Produce json
// @Success 200 {object} quota.Usage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/generate-quiz/usage [get]
// @Security BearerAuth
func UsageHandler(usage UsageReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.GetUserID(c)
		if !ok {
			errors.Unauthorized(c, "")
			return
		}

		u, err := usage.Usage(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load quiz usage", err)
			return
		}

		c.JSON(http.StatusOK, u)
	}
}
