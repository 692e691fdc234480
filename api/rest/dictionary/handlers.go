package dictionary

import (
	"net/http"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/dictionary"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// LookupHandler godoc
// @Summary Look up a word
// @Description Returns definition, thesaurus and translation for a word; a signed-in caller also gets the search recorded in history
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Success 200 {object} dictionary.Lookup
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/dictionary/{word} [get]
func LookupHandler(client Lookuper, history HistoryRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := client.Lookup(c.Request.Context(), c.Param("word"))
		if dictionary.IsNotFound(err) {
			errors.NotFound(c, "word")
			return
		}
		if err != nil {
			errors.UpstreamFailed(c, "dictionary service unavailable", err)
			return
		}

		recordHistory(c, history, result.Word)

		c.JSON(http.StatusOK, result)
	}
}

// history is best effort, a failed insert never fails the lookup
func recordHistory(c *gin.Context, history HistoryRecorder, word string) {
	userID, ok := auth.GetUserID(c)
	if !ok || history == nil {
		return
	}

	if _, err := history.AddHistory(c.Request.Context(), userID, word); err != nil {
		logger.FromContext(c.Request.Context()).Warn("failed to record search history",
			"user_id", userID,
			"word", word,
			"error", err,
		)
	}
}

// SuggestHandler godoc
// @Summary Autocomplete a partial word
// @Tags dictionary
// @Produce json
// @Param q query string true "Partial word"
// @Success 200 {object} SuggestResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /api/v1/dictionary/suggest [get]
func SuggestHandler(client Lookuper) gin.HandlerFunc {
	return func(c *gin.Context) {
		suggestions, err := client.Suggest(c.Request.Context(), c.Query("q"))
		if err != nil {
			errors.UpstreamFailed(c, "suggestion service unavailable", err)
			return
		}

		c.JSON(http.StatusOK, SuggestResponse{Suggestions: suggestions})
	}
}

// DailyHandler godoc
// @Summary Get the word of the day
// @Description Returns the word of the day and trending words
// @Tags dictionary
// @Produce json
// @Success 200 {object} dictionary.Daily
// @Router /api/v1/dictionary/daily [get]
func DailyHandler(client Lookuper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, client.Daily(c.Request.Context()))
	}
}
