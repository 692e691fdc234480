package generate

import (
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers quiz generation routes
func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, generator QuizGenerator, usage UsageReporter) {
	group := router.Group("/generate-quiz")
	group.Use(auth.AuthMiddleware(verifier))
	{
		group.POST("", Handler(generator, usage))
		group.GET("/usage", UsageHandler(usage))
	}
}
