package words

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultHistoryLimit = 50
	maxWordLength       = 100
)

var (
	ErrWordNotFound = errors.New("word not found")
	ErrInvalidWord  = errors.New("word must be between 1 and 100 characters")
)

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates the required tables if they don't exist
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createTableSQL)
	return err
}

// saved words are keyed case-insensitively
func WordID(word string) (string, error) {
	id := strings.ToLower(strings.TrimSpace(word))
	if id == "" || len([]rune(id)) > maxWordLength {
		return "", ErrInvalidWord
	}

	return id, nil
}

// saves or refreshes a word; saving the same word twice keeps one row
func (r *Repository) Save(ctx context.Context, userID, word string, entry json.RawMessage) (*SavedWord, error) {
	id, err := WordID(word)
	if err != nil {
		return nil, err
	}

	if len(entry) == 0 {
		entry = json.RawMessage("{}")
	} else if !json.Valid(entry) {
		return nil, errors.New("entry must be valid JSON")
	}

	return scanWord(r.db.QueryRow(ctx, querySave, userID, id, strings.TrimSpace(word), string(entry)))
}

func (r *Repository) Remove(ctx context.Context, userID, word string) error {
	id, err := WordID(word)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, queryRemove, userID, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrWordNotFound
	}

	return nil
}

func (r *Repository) IsSaved(ctx context.Context, userID, word string) (bool, error) {
	id, err := WordID(word)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRow(ctx, queryExists, userID, id).Scan(&exists)
	return exists, err
}

func (r *Repository) List(ctx context.Context, userID string) ([]SavedWord, error) {
	rows, err := r.db.Query(ctx, queryList, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []SavedWord{}
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}

		list = append(list, *w)
	}

	return list, rows.Err()
}

func (r *Repository) AddHistory(ctx context.Context, userID, word string) (*HistoryEntry, error) {
	word = strings.TrimSpace(word)
	if _, err := WordID(word); err != nil {
		return nil, err
	}

	var entry HistoryEntry
	if err := r.db.QueryRow(ctx, queryAddHistory, userID, word).Scan(&entry.Word, &entry.SearchedAt); err != nil {
		return nil, err
	}

	return &entry, nil
}

// most recent searches first
func (r *Repository) History(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	rows, err := r.db.Query(ctx, queryHistory, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (HistoryEntry, error) {
		var e HistoryEntry
		err := row.Scan(&e.Word, &e.SearchedAt)
		return e, err
	})
}

func scanWord(row pgx.Row) (*SavedWord, error) {
	var (
		w     SavedWord
		entry []byte
	)

	if err := row.Scan(&w.WordID, &w.Word, &entry, &w.SavedAt); err != nil {
		return nil, err
	}

	w.Entry = json.RawMessage(entry)
	return &w, nil
}
