package users

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/wexam/server/internal/auth"
	"codeberg.org/wexam/server/internal/errors"
	"codeberg.org/wexam/server/wexam/users"
	"github.com/gin-gonic/gin"
)

// GetProfile godoc
// @Summary Get the current user's profile
// @Description Returns the profile of the authenticated user, creating it from the token on first access
// @Tags users
// @Produce json
// @Success 200 {object} users.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/users/me [get]
// @Security BearerAuth
func GetProfile(store ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.GetClaims(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		user, err := store.FindOrCreate(c.Request.Context(), identityFrom(claims))
		if err != nil {
			errors.InternalError(c, "failed to load profile", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Changes display name and photo; an empty photo_url clears the photo
// @Tags users
// @Accept json
// @Produce json
// @Param request body users.UpdateProfileRequest true "Profile data"
// @Success 200 {object} users.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/users/me [put]
// @Security BearerAuth
func UpdateProfile(store ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.GetClaims(c)
		if !ok {
			errors.Unauthorized(c, "user not authenticated")
			return
		}

		var req users.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.BadRequest(c, "invalid profile", err)
			return
		}

		// the row may not exist yet if the profile was never fetched
		if _, err := store.FindOrCreate(c.Request.Context(), identityFrom(claims)); err != nil {
			errors.InternalError(c, "failed to load profile", err)
			return
		}

		user, err := store.UpdateProfile(c.Request.Context(), claims.UserID, req)
		if stderrors.Is(err, users.ErrUserNotFound) {
			errors.NotFound(c, "user")
			return
		}
		if err != nil {
			errors.InternalError(c, "failed to update profile", err)
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

func identityFrom(claims *auth.Claims) users.Identity {
	return users.Identity{
		ID:       claims.UserID,
		Email:    claims.Email,
		Name:     claims.Name,
		PhotoURL: claims.Picture,
	}
}
