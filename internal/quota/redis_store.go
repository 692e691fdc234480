package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyQuizUsage = "wexam:quiz_usage:%s"

	// counters outlive their day so late readers still see them
	usageTTL = 48 * time.Hour

	// optimistic transaction retries before giving up
	maxWatchRetries = 20
)

// returned when concurrent writers kept invalidating the WATCH
var ErrContention = errors.New("quota update contention")

// implements Store with WATCH/MULTI optimistic transactions
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func usageKey(userID, date string) string {
	return fmt.Sprintf(keyQuizUsage, DocumentID(userID, date))
}

func (s *RedisStore) Update(ctx context.Context, userID, date string, fn func(rec *Record) error) error {
	key := usageKey(userID, date)

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, key).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}

		rec := recordFromHash(userID, date, fields)
		if err := fn(rec); err != nil {
			return err
		}

		// HSET merges, any extra fields on the hash survive
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, recordToHash(rec))
			pipe.Expire(ctx, key, usageTTL)
			return nil
		})

		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		return err
	}

	return ErrContention
}

func (s *RedisStore) Get(ctx context.Context, userID, date string) (*Record, error) {
	fields, err := s.client.HGetAll(ctx, usageKey(userID, date)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, nil
	}

	return recordFromHash(userID, date, fields), nil
}

func recordFromHash(userID, date string, fields map[string]string) *Record {
	rec := &Record{UserID: userID, Date: date}

	if v, ok := fields["count"]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rec.Count = n
		}
	}

	if v, ok := fields["lastUpdated"]; ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			rec.LastUpdated = ts
		}
	}

	return rec
}

func recordToHash(rec *Record) map[string]any {
	return map[string]any{
		"userId":      rec.UserID,
		"date":        rec.Date,
		"count":       rec.Count,
		"lastUpdated": rec.LastUpdated.UTC().Format(time.RFC3339Nano),
	}
}
