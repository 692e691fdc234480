package quota

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestDateKey_UsesUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2026, 10, 16, 2, 0, 0, 0, loc) // 2026-10-15 20:30 UTC

	assert.Equal(t, "2026-10-15", DateKey(local))
	assert.Equal(t, "u1_2026-10-15", DocumentID("u1", DateKey(local)))
}

func TestCheckAndIncrement_CountsUpToLimit(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	limiter := NewLimiter(store, 10).WithClock(fixedClock(now))
	ctx := context.Background()

	for i := 1; i <= 10; i++ {
		require.NoError(t, limiter.CheckAndIncrement(ctx, "user-1"))

		rec, err := store.Get(ctx, "user-1", "2026-10-15")
		require.NoError(t, err)
		assert.Equal(t, i, rec.Count)
	}

	err := limiter.CheckAndIncrement(ctx, "user-1")
	assert.ErrorIs(t, err, ErrLimitExceeded)

	rec, err := store.Get(ctx, "user-1", "2026-10-15")
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Count, "a rejected call does not write")
	assert.Equal(t, now, rec.LastUpdated)
}

// fires n simultaneous CheckAndIncrement calls for one user
func hammer(limiter *Limiter, userID string, n int) (ok, rejected, other int32) {
	var (
		wg                  sync.WaitGroup
		okN, rejectedN, otN atomic.Int32
	)

	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			err := limiter.CheckAndIncrement(context.Background(), userID)
			switch {
			case err == nil:
				okN.Add(1)
			case errors.Is(err, ErrLimitExceeded):
				rejectedN.Add(1)
			default:
				otN.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	return okN.Load(), rejectedN.Load(), otN.Load()
}

func TestCheckAndIncrement_Concurrent(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 10)

	ok, rejected, other := hammer(limiter, "fresh-user", 15)

	assert.Equal(t, int32(10), ok)
	assert.Equal(t, int32(5), rejected)
	assert.Equal(t, int32(0), other)

	usage, err := limiter.Usage(context.Background(), "fresh-user")
	require.NoError(t, err)
	assert.Equal(t, 10, usage.Used)
	assert.Equal(t, 0, usage.Remaining)
}

func TestCheckAndIncrement_NewDayResets(t *testing.T) {
	store := NewMemoryStore()
	day1 := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)
	limiter := NewLimiter(store, 2).WithClock(fixedClock(day1))
	ctx := context.Background()

	require.NoError(t, limiter.CheckAndIncrement(ctx, "u"))
	require.NoError(t, limiter.CheckAndIncrement(ctx, "u"))
	require.ErrorIs(t, limiter.CheckAndIncrement(ctx, "u"), ErrLimitExceeded)

	limiter.WithClock(fixedClock(day1.Add(2 * time.Minute)))
	assert.NoError(t, limiter.CheckAndIncrement(ctx, "u"))
}

func TestCheckAndIncrement_UsersAreIndependent(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 1)
	ctx := context.Background()

	require.NoError(t, limiter.CheckAndIncrement(ctx, "a"))
	assert.NoError(t, limiter.CheckAndIncrement(ctx, "b"))
	assert.ErrorIs(t, limiter.CheckAndIncrement(ctx, "a"), ErrLimitExceeded)
}

func TestUsage_FreshUser(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter := NewLimiter(NewMemoryStore(), 0).WithClock(fixedClock(now))

	usage, err := limiter.Usage(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Equal(t, &Usage{Used: 0, Limit: DefaultDailyLimit, Remaining: DefaultDailyLimit, Date: "2026-10-15"}, usage)
}

type failingStore struct{}

func (failingStore) Update(context.Context, string, string, func(*Record) error) error {
	return errors.New("connection refused")
}

func (failingStore) Get(context.Context, string, string) (*Record, error) {
	return nil, errors.New("connection refused")
}

func TestCheckAndIncrement_StoreErrorIsNotLimit(t *testing.T) {
	err := NewLimiter(failingStore{}, 10).CheckAndIncrement(context.Background(), "u")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLimitExceeded)
}
