package dictionary

import (
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers public dictionary routes; a valid token on lookups adds the
// word to the caller's search history
func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, client Lookuper, history HistoryRecorder) {
	group := router.Group("/dictionary")
	{
		group.GET("/suggest", SuggestHandler(client))
		group.GET("/daily", DailyHandler(client))
		group.GET("/:word", auth.OptionalAuthMiddleware(verifier), LookupHandler(client, history))
	}
}
