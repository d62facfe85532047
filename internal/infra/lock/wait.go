package lock

import (
	"context"
	"time"
)

// RetryInterval период повторных попыток захвата
const RetryInterval = 50 * time.Millisecond

// AcquireWait пытается захватить ключ, пока не истечет wait или не отменится контекст
func AcquireWait(ctx context.Context, l Locker, key string, ttl, wait time.Duration) (string, error) {
	deadline := time.Now().Add(wait)
	ticker := time.NewTicker(RetryInterval)
	defer ticker.Stop()

	for {
		token, ok, err := l.Acquire(ctx, key, ttl)
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if !time.Now().Before(deadline) {
			return "", ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
