package quizzes

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/wexam/server/api/rest/pagination"
	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/internal/quizgen"
	"codeberg.org/wexam/server/wexam/quizzes"
	"github.com/gin-gonic/gin"
)

// CreateQuizHandler godoc
// @Summary Save a quiz
// @Description Saves a generated quiz for the authenticated user
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body quizzes.CreateQuizRequest true "Quiz data"
// @Success 201 {object} quizzes.Quiz
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/quizzes [post]
// @Security BearerAuth
func CreateQuizHandler(store QuizStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req quizzes.CreateQuizRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid quiz", err)
			return
		}

		if err := quizzes.ValidateCreate(req); err != nil {
			var validationErr *quizgen.ValidationError
			if stderrors.As(err, &validationErr) {
				errors.ValidationError(c, validationErr.Message)
				return
			}

			errors.ValidationError(c, err.Error())
			return
		}

		quiz, err := store.Create(c.Request.Context(), userID, req)
		if err != nil {
			errors.InternalError(c, "failed to save quiz", err)
			return
		}

		c.JSON(http.StatusCreated, quiz)
	}
}

// ListQuizzesHandler godoc
// @Summary List saved quizzes
// @Description Lists the user's quizzes, newest first
// @Tags quizzes
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} QuizzesListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/quizzes [get]
// @Security BearerAuth
func ListQuizzesHandler(store QuizStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, defaultListLimit, maxListLimit)

		list, total, err := store.List(c.Request.Context(), userID, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list quizzes", err)
			return
		}

		c.JSON(http.StatusOK, QuizzesListResponse{
			Quizzes:    list,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetQuizHandler godoc
// @Summary Get a quiz by ID
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} quizzes.Quiz
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/quizzes/{id} [get]
// @Security BearerAuth
func GetQuizHandler(store QuizStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		quizID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		quiz, err := store.Get(c.Request.Context(), quizID, userID)
		if stderrors.Is(err, quizzes.ErrQuizNotFound) {
			errors.NotFound(c, "quiz")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to load quiz", err)
			return
		}

		c.JSON(http.StatusOK, quiz)
	}
}

// DeleteQuizHandler godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/quizzes/{id} [delete]
// @Security BearerAuth
func DeleteQuizHandler(store QuizStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		quizID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		err := store.Delete(c.Request.Context(), quizID, userID)
		if stderrors.Is(err, quizzes.ErrQuizNotFound) {
			errors.NotFound(c, "quiz")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to delete quiz", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
	}
}
