package words

import (
	stderrors "errors"
	"io"
	"net/http"

	"codeberg.org/wexam/server/api/rest/pagination"
	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/wexam/words"
	"github.com/gin-gonic/gin"
)

// SaveWordHandler godoc
// @Summary Save a word
// @Description Saves a word with an optional definition snapshot; saving again replaces the snapshot
// @Tags words
// @Accept json
// @Produce json
// @Param word path string true "Word"
// @Param request body words.SaveWordRequest false "Definition snapshot"
// @Success 200 {object} words.SavedWord
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/words/{word} [put]
// @Security BearerAuth
func SaveWordHandler(store WordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		// the body is optional
		var req words.SaveWordRequest
		if err := c.ShouldBindJSON(&req); err != nil && !stderrors.Is(err, io.EOF) {
			errors.BadRequest(c, "invalid word entry", err)
			return
		}

		saved, err := store.Save(c.Request.Context(), userID, c.Param("word"), req.Entry)
		if stderrors.Is(err, words.ErrInvalidWord) {
			errors.ValidationError(c, err.Error())
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to save word", err)
			return
		}

		c.JSON(http.StatusOK, saved)
	}
}

// RemoveWordHandler godoc
// @Summary Remove a saved word
// @Tags words
// @Produce json
// @Param word path string true "Word"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/words/{word} [delete]
// @Security BearerAuth
func RemoveWordHandler(store WordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		err := store.Remove(c.Request.Context(), userID, c.Param("word"))
		switch {
		case stderrors.Is(err, words.ErrInvalidWord):
			errors.ValidationError(c, err.Error())
		case stderrors.Is(err, words.ErrWordNotFound):
			errors.NotFound(c, "word")
		case err != nil:
			errors.InternalError(c, "failed to remove word", err)
		default:
			c.JSON(http.StatusOK, MessageResponse{Message: "word removed"})
		}
	}
}

// IsSavedHandler godoc
// @Summary Check whether a word is saved
// @Tags words
// @Produce json
// @Param word path string true "Word"
// @Success 200 {object} SavedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/words/{word}/saved [get]
// @Security BearerAuth
func IsSavedHandler(store WordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		word := c.Param("word")
		saved, err := store.IsSaved(c.Request.Context(), userID, word)
		if stderrors.Is(err, words.ErrInvalidWord) {
			errors.ValidationError(c, err.Error())
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to check word", err)
			return
		}

		id, _ := words.WordID(word)
		c.JSON(http.StatusOK, SavedResponse{Word: id, Saved: saved})
	}
}

// ListWordsHandler godoc
// @Summary List saved words
// @Description Lists saved words, most recent first
// @Tags words
// @Produce json
// @Success 200 {object} map[string][]words.SavedWord
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/words [get]
// @Security BearerAuth
func ListWordsHandler(store WordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		list, err := store.List(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list words", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"words": list})
	}
}

// AddHistoryHandler godoc
// @Summary Record a search
// @Tags words
// @Accept json
// @Produce json
// @Param request body words.AddHistoryRequest true "Searched word"
// @Success 201 {object} words.HistoryEntry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/history [post]
// @Security BearerAuth
func AddHistoryHandler(store WordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req words.AddHistoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "word is required", err)
			return
		}

		entry, err := store.AddHistory(c.Request.Context(), userID, req.Word)
		if stderrors.Is(err, words.ErrInvalidWord) {
			errors.ValidationError(c, err.Error())
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to record search", err)
			return
		}

		c.JSON(http.StatusCreated, entry)
	}
}

// HistoryHandler godoc
// @Summary List recent searches
// @Tags words
// @Produce json
// @Param limit query int false "Number of entries"
// @Success 200 {object} map[string][]words.HistoryEntry
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/history [get]
// @Security BearerAuth
func HistoryHandler(store WordStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		params := pagination.FromQuery(c, words.DefaultHistoryLimit, maxHistoryLimit)

		history, err := store.History(c.Request.Context(), userID, params.Limit)
		if err != nil {
			errors.InternalError(c, "failed to load history", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"history": history})
	}
}
