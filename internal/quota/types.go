package quota

import (
	"context"
	"errors"
	"time"
)

// returned when a user has used every generation for the day
var ErrLimitExceeded = errors.New("daily quiz limit reached")

// per-user, per-day generation counter
type Record struct {
	UserID      string    `json:"user_id"`
	Date        string    `json:"date"` // UTC, YYYY-MM-DD
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"last_updated"`
}

// Store persists counters. Update must run fn as one atomic read-modify-write:
// fn sees the current record (zero count when absent) and the mutated record
// is written only when fn returns nil.
type Store interface {
	Update(ctx context.Context, userID, date string, fn func(rec *Record) error) error
	Get(ctx context.Context, userID, date string) (*Record, error)
}

type Usage struct {
	Used      int    `json:"used"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Date      string `json:"date"`
}
