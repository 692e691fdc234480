package users

import (
	"context"

	"codeberg.org/wexam/server/wexam/users"
)

// user profile persistence used by the handlers
type ProfileStore interface {
	FindOrCreate(ctx context.Context, id users.Identity) (*users.User, error)
	UpdateProfile(ctx context.Context, userID string, req users.UpdateProfileRequest) (*users.User, error)
}
