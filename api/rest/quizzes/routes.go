package quizzes

import (
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, store QuizStore) {
	quizzesGroup := router.Group("/quizzes")
	quizzesGroup.Use(auth.AuthMiddleware(verifier))
	{
		quizzesGroup.GET("", ListQuizzesHandler(store))
		quizzesGroup.POST("", CreateQuizHandler(store))
		quizzesGroup.GET("/:id", GetQuizHandler(store))
		quizzesGroup.DELETE("/:id", DeleteQuizHandler(store))
	}
}
