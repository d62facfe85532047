package workwindows

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// WorkWindowRepository интерфейс репозитория рабочих окон
type WorkWindowRepository interface {
	Create(ctx context.Context, window *domain.WorkWindow) (*domain.WorkWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkWindow, error)
	List(ctx context.Context) ([]*domain.WorkWindow, error)
	GetByWeekday(ctx context.Context, weekday domain.Weekday) ([]*domain.WorkWindow, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
