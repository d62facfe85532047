package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type localEntry struct {
	token     string
	expiresAt time.Time
}

// LocalLocker блокировка внутри одного процесса
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]localEntry
	now   func() time.Time
}

// NewLocalLocker создает блокировку внутри процесса
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		locks: make(map[string]localEntry),
		now:   time.Now,
	}
}

// Acquire захватывает ключ, если он свободен или его ttl истек.
// Истекшие ключи удаляются при каждом захвате
func (l *LocalLocker) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneExpired(now)

	if _, ok := l.locks[key]; ok {
		return "", false, nil
	}

	token := uuid.NewString()
	l.locks[key] = localEntry{token: token, expiresAt: now.Add(ttl)}

	return token, true, nil
}

// Release освобождает ключ, если токен совпадает
func (l *LocalLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.locks[key]; ok && entry.token == token {
		delete(l.locks, key)
	}

	return nil
}

func (l *LocalLocker) pruneExpired(now time.Time) {
	for key, entry := range l.locks {
		if !now.Before(entry.expiresAt) {
			delete(l.locks, key)
		}
	}
}
