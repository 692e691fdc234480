package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableSQL)
	return err
}

// falls back to the local part of the email when the token carries no name
func DisplayName(id Identity) string {
	if name := strings.TrimSpace(id.Name); name != "" {
		return name
	}

	if local, _, ok := strings.Cut(id.Email, "@"); ok && local != "" {
		return local
	}

	return "Student"
}

// returns the profile for id, creating it on first sight
func (r *Repository) FindOrCreate(ctx context.Context, id Identity) (*User, error) {
	if _, err := r.db.Exec(ctx, queryInsertIfMissing, id.ID, id.Email, DisplayName(id), id.PhotoURL); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id.ID)
}

func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	var u User
	err := r.db.QueryRow(ctx, queryFindByID, userID).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PhotoURL,
		&u.WordsLearned,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// updates name and photo; an empty name keeps the current one, a nil photo
// keeps the current photo and an empty photo clears it
func (r *Repository) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*User, error) {
	tag, err := r.db.Exec(ctx, queryUpdateProfile, userID, strings.TrimSpace(req.Name), req.PhotoURL)
	if err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		return nil, ErrUserNotFound
	}

	return r.FindByID(ctx, userID)
}
