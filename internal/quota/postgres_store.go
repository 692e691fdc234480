package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `
		CREATE TABLE IF NOT EXISTS quiz_usage (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			usage_date TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0 CHECK (count >= 0),
			last_updated TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_quiz_usage_user_id ON quiz_usage(user_id);
	`

	// makes sure a row exists so SELECT ... FOR UPDATE has something to lock
	ensureRowSQL = `
		INSERT INTO quiz_usage (id, user_id, usage_date, count)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (id) DO NOTHING
	`

	selectForUpdateSQL = `
		SELECT user_id, usage_date, count, last_updated
		FROM quiz_usage
		WHERE id = $1
		FOR UPDATE
	`

	updateSQL = `
		UPDATE quiz_usage
		SET count = $2, last_updated = $3
		WHERE id = $1
	`

	getSQL = `
		SELECT user_id, usage_date, count, last_updated
		FROM quiz_usage
		WHERE id = $1
	`
)

// implements Store using a row lock inside a PostgreSQL transaction
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// creates the required tables if they don't exist
func (s *PostgresStore) Initialize(ctx context.Context) error {
	_, err := s.db.Exec(ctx, createTableSQL)
	return err
}

func (s *PostgresStore) Update(ctx context.Context, userID, date string, fn func(rec *Record) error) error {
	id := DocumentID(userID, date)

	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, ensureRowSQL, id, userID, date); err != nil {
			return fmt.Errorf("failed to create usage row: %w", err)
		}

		var rec Record
		err := tx.QueryRow(ctx, selectForUpdateSQL, id).Scan(
			&rec.UserID,
			&rec.Date,
			&rec.Count,
			&rec.LastUpdated,
		)
		if err != nil {
			return fmt.Errorf("failed to lock usage row: %w", err)
		}

		// returning fn's error rolls back, including the placeholder row
		if err := fn(&rec); err != nil {
			return err
		}

		if rec.LastUpdated.IsZero() {
			rec.LastUpdated = time.Now().UTC()
		}

		if _, err := tx.Exec(ctx, updateSQL, id, rec.Count, rec.LastUpdated); err != nil {
			return fmt.Errorf("failed to update usage row: %w", err)
		}

		return nil
	})
}

func (s *PostgresStore) Get(ctx context.Context, userID, date string) (*Record, error) {
	var rec Record

	err := s.db.QueryRow(ctx, getSQL, DocumentID(userID, date)).Scan(
		&rec.UserID,
		&rec.Date,
		&rec.Count,
		&rec.LastUpdated,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &rec, nil
}
