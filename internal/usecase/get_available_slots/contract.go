package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WorkWindowRepository интерфейс репозитория рабочих окон
type WorkWindowRepository interface {
	// GetByWeekday возвращает окна дня недели, упорядоченные по времени начала
	GetByWeekday(ctx context.Context, weekday domain.Weekday) ([]*domain.WorkWindow, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListPendingInRange возвращает невыполненные записи с началом в [from, to]
	ListPendingInRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
}

// CatalogRepository интерфейс каталога услуг
type CatalogRepository interface {
	// GetDurations возвращает длительность услуг по ID
	GetDurations(ctx context.Context, ids []int64) (map[int64]int, error)
}

// TxManager выполняет чтения в одной read-only транзакции
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder фиксирует результаты вычисления слотов
type MetricsRecorder interface {
	ObserveAvailability(outcome string, windows string, slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
