package quota

import (
	"context"
	"fmt"
	"time"
)

const DefaultDailyLimit = 10

// enforces the daily generation quota on top of a Store
type Limiter struct {
	store Store
	limit int
	now   func() time.Time
}

func NewLimiter(store Store, limit int) *Limiter {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}

	return &Limiter{store: store, limit: limit, now: time.Now}
}

// overrides the clock, used by tests
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func (l *Limiter) Limit() int {
	return l.limit
}

// day boundaries are UTC so every server agrees on the key
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// identifier of the counter document, {userId}_{date}
func DocumentID(userID, date string) string {
	return userID + "_" + date
}

// consumes one generation for today or returns ErrLimitExceeded
func (l *Limiter) CheckAndIncrement(ctx context.Context, userID string) error {
	now := l.now()
	date := DateKey(now)

	err := l.store.Update(ctx, userID, date, func(rec *Record) error {
		if rec.Count >= l.limit {
			return ErrLimitExceeded
		}

		rec.UserID = userID
		rec.Date = date
		rec.Count++
		rec.LastUpdated = now.UTC()

		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to update quota for %s: %w", DocumentID(userID, date), err)
	}

	return nil
}

// reports today's usage without consuming anything
func (l *Limiter) Usage(ctx context.Context, userID string) (*Usage, error) {
	date := DateKey(l.now())

	rec, err := l.store.Get(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read quota: %w", err)
	}

	used := 0
	if rec != nil {
		used = rec.Count
	}

	return &Usage{
		Used:      used,
		Limit:     l.limit,
		Remaining: max(l.limit-used, 0),
		Date:      date,
	}, nil
}
