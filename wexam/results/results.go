package results

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableSQL)
	return err
}

// checks the counts are consistent with each other
func ValidateCreate(req CreateResultRequest) error {
	if req.Correct+req.Wrong > req.Total {
		return errors.New("correct and wrong answers exceed total")
	}

	return nil
}

func (r *Repository) Create(ctx context.Context, userID string, req CreateResultRequest) (*Result, error) {
	row := r.db.QueryRow(
		ctx,
		queryCreate,
		userID,
		req.QuizID,
		req.Score,
		req.Total,
		req.Correct,
		req.Wrong,
		req.TimeElapsed,
		req.Subject,
		req.Chapter,
		req.Difficulty,
		req.Type,
	)

	return scanResult(row)
}

// returns the user's latest results, newest first
func (r *Repository) ListRecent(ctx context.Context, userID string, limit int) ([]Result, error) {
	rows, err := r.db.Query(ctx, queryListRecent, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Result{}
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}

		list = append(list, *result)
	}

	return list, rows.Err()
}

func (r *Repository) Performance(ctx context.Context, userID string, limit int) (Performance, error) {
	list, err := r.ListRecent(ctx, userID, limit)
	if err != nil {
		return Performance{}, err
	}

	return Analyze(list), nil
}

func scanResult(row pgx.Row) (*Result, error) {
	var result Result
	err := row.Scan(
		&result.ID,
		&result.UserID,
		&result.QuizID,
		&result.Score,
		&result.Total,
		&result.Correct,
		&result.Wrong,
		&result.TimeElapsed,
		&result.Subject,
		&result.Chapter,
		&result.Difficulty,
		&result.Type,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
