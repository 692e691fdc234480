package users

import (
	"codeberg.org/wexam/server/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, verifier auth.TokenVerifier, store ProfileStore) {
	usersGroup := router.Group("/users")
	usersGroup.Use(auth.AuthMiddleware(verifier))
	{
		usersGroup.GET("/me", GetProfile(store))
		usersGroup.PUT("/me", UpdateProfile(store))
	}
}
