package words

import (
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles saved word and search history database operations
type Repository struct {
	db *pgxpool.Pool
}

type SavedWord struct {
	WordID  string          `json:"word_id"`
	Word    string          `json:"word"`
	Entry   json.RawMessage `json:"entry"` // definition snapshot at save time
	SavedAt time.Time       `json:"saved_at"`
}

type HistoryEntry struct {
	Word       string    `json:"word"`
	SearchedAt time.Time `json:"searched_at"`
}

type SaveWordRequest struct {
	Entry json.RawMessage `json:"entry"`
}

type AddHistoryRequest struct {
	Word string `json:"word" binding:"required"`
}
