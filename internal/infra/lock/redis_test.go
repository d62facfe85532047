package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisLocker(client), srv
}

func TestRedisLocker_AcquireRelease(t *testing.T) {
	l, srv := newRedisLocker(t)
	ctx := context.Background()

	token, ok, err := l.Acquire(ctx, "day:2025-12-01", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token, mustGet(t, srv, keyPrefix+"day:2025-12-01"))

	_, ok, err = l.Acquire(ctx, "day:2025-12-01", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// другой день не заблокирован
	_, ok, err = l.Acquire(ctx, "day:2025-12-02", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// чужой токен не освобождает ключ
	require.NoError(t, l.Release(ctx, "day:2025-12-01", "other"))
	assert.True(t, srv.Exists(keyPrefix+"day:2025-12-01"))

	require.NoError(t, l.Release(ctx, "day:2025-12-01", token))
	assert.False(t, srv.Exists(keyPrefix+"day:2025-12-01"))

	_, ok, err = l.Acquire(ctx, "day:2025-12-01", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_Expiry(t *testing.T) {
	l, srv := newRedisLocker(t)
	ctx := context.Background()

	_, ok, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	srv.FastForward(2 * time.Second)

	_, ok, err = l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func mustGet(t *testing.T, srv *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := srv.Get(key)
	require.NoError(t, err)
	return v
}
