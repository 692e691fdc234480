package dictionary

import (
	"context"

	"codeberg.org/wexam/server/internal/dictionary"
	"codeberg.org/wexam/server/wexam/words"
)

// word lookups backed by third-party dictionary services
type Lookuper interface {
	Lookup(ctx context.Context, word string) (*dictionary.Lookup, error)
	Suggest(ctx context.Context, query string) ([]string, error)
	Daily(ctx context.Context) *dictionary.Daily
}

// records a signed-in caller's lookups; nil when profiles are disabled
type HistoryRecorder interface {
	AddHistory(ctx context.Context, userID, word string) (*words.HistoryEntry, error)
}

type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}
