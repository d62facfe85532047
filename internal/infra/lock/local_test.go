package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_AcquireRelease(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	token, ok, err := l.Acquire(ctx, "day:2025-12-01", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Acquire(ctx, "day:2025-12-01", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// чужой токен не освобождает ключ
	require.NoError(t, l.Release(ctx, "day:2025-12-01", "other"))
	_, ok, _ = l.Acquire(ctx, "day:2025-12-01", time.Minute)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, "day:2025-12-01", token))
	_, ok, _ = l.Acquire(ctx, "day:2025-12-01", time.Minute)
	assert.True(t, ok)
}

func TestLocalLocker_Expiry(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, ok, _ := l.Acquire(context.Background(), "k", time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.Acquire(context.Background(), "k", time.Second)
	assert.True(t, ok)
}

func TestLocalLocker_PrunesExpiredKeys(t *testing.T) {
	l := NewLocalLocker()
	now := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for _, day := range []string{"day:2025-12-01", "day:2025-12-02", "day:2025-12-03"} {
		_, ok, _ := l.Acquire(ctx, day, time.Second)
		require.True(t, ok)
	}
	require.Len(t, l.locks, 3)

	now = now.Add(2 * time.Second)
	_, ok, _ := l.Acquire(ctx, "day:2025-12-04", time.Second)
	require.True(t, ok)
	assert.Len(t, l.locks, 1)
	assert.Contains(t, l.locks, "day:2025-12-04")
}

func TestAcquireWait_Timeout(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	_, ok, _ := l.Acquire(ctx, "k", time.Minute)
	require.True(t, ok)

	_, err := AcquireWait(ctx, l, "k", time.Minute, 120*time.Millisecond)
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestAcquireWait_Serializes(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := AcquireWait(ctx, l, "k", time.Minute, 5*time.Second)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxSeen)
				if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			_ = l.Release(ctx, "k", token)
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxSeen)
}

func TestDayKey(t *testing.T) {
	morning := time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 12, 1, 23, 45, 0, 0, time.UTC)

	assert.Equal(t, "day:2025-12-01", DayKey(morning))
	assert.Equal(t, DayKey(morning), DayKey(evening))
	assert.NotEqual(t, DayKey(morning), DayKey(morning.AddDate(0, 0, 1)))
}
