package results

import (
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, store ResultStore) {
	resultsGroup := router.Group("/results")
	resultsGroup.Use(auth.AuthMiddleware(verifier))
	{
		resultsGroup.POST("", CreateResultHandler(store))
		resultsGroup.GET("/performance", PerformanceHandler(store))
	}
}
