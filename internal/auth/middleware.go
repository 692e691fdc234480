package auth

import (
	"strings"

	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	contextUserID = "user_id"
	contextEmail  = "user_email"
	contextClaims = "user_claims"

	msgMissingToken = "Unauthorized: Missing or invalid token"
	msgInvalidToken = "Unauthorized: Invalid token"
)

// verifies the bearer token and adds user info to context
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			errors.Unauthorized(c, msgMissingToken)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			logger.FromContext(c.Request.Context()).Debug("token verification failed", "error", err)
			errors.Unauthorized(c, msgInvalidToken)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// verifies the token if present but doesn't require it
func OptionalAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := verifier.Verify(token); err == nil {
				setClaims(c, claims)
			}
		}

		c.Next()
	}
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(contextUserID)
	return userID, userID != ""
}

// returns the verified claims after AuthMiddleware
func GetClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get(contextClaims)
	if !exists {
		return nil, false
	}

	claims, ok := v.(*Claims)
	return claims, ok
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(contextUserID, claims.UserID)
	c.Set(contextEmail, claims.Email)
	c.Set(contextClaims, claims)
}

func bearerToken(header string) (string, bool) {
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)

	if !found || token == "" {
		return "", false
	}

	return token, true
}
