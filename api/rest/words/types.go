package words

import (
	"context"
	"encoding/json"

	"codeberg.org/wexam/server/wexam/words"
)

const maxHistoryLimit = 200

// saved word and history persistence used by the handlers
type WordStore interface {
	Save(ctx context.Context, userID, word string, entry json.RawMessage) (*words.SavedWord, error)
	Remove(ctx context.Context, userID, word string) error
	IsSaved(ctx context.Context, userID, word string) (bool, error)
	List(ctx context.Context, userID string) ([]words.SavedWord, error)
	AddHistory(ctx context.Context, userID, word string) (*words.HistoryEntry, error)
	History(ctx context.Context, userID string, limit int) ([]words.HistoryEntry, error)
}

type SavedResponse struct {
	Word  string `json:"word"`
	Saved bool   `json:"saved"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
