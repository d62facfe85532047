package clients

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, params domain.ListParams) ([]*domain.Client, error)
	Update(ctx context.Context, id int64, upd domain.ClientUpdate) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentCounter считает записи клиента
type AppointmentCounter interface {
	CountByClient(ctx context.Context, clientID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
