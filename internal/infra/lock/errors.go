package lock

import "errors"

var (
	// ErrNotAcquired возвращается, когда блокировку не удалось получить за отведенное время
	ErrNotAcquired = errors.New("lock: not acquired")

	// ErrBackend возвращается при ошибке хранилища блокировок
	ErrBackend = errors.New("lock: backend error")
)
