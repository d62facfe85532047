package lock

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Locker распределенная (или локальная) блокировка по ключу
type Locker interface {
	// Acquire пытается захватить ключ на ttl. ok=false, если ключ уже занят
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release освобождает ключ, только если он захвачен с этим token
	Release(ctx context.Context, key, token string) error
}

// DayKey ключ блокировки календарного дня записи
func DayKey(startsAt time.Time) string {
	return "day:" + startsAt.Format(domain.DateFormat)
}
