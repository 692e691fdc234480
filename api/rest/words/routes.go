package words

import (
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, store WordStore) {
	authed := router.Group("")
	authed.Use(auth.AuthMiddleware(verifier))
	{
		authed.GET("/words", ListWordsHandler(store))
		authed.PUT("/words/:word", SaveWordHandler(store))
		authed.DELETE("/words/:word", RemoveWordHandler(store))
		authed.GET("/words/:word/saved", IsSavedHandler(store))

		authed.GET("/history", HistoryHandler(store))
		authed.POST("/history", AddHistoryHandler(store))
	}
}
