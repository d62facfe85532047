package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/lock"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	clientRepo      ClientRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	locker          lock.Locker
	lockSettings    LockSettings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clientRepo ClientRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	locker lock.Locker,
	lockSettings LockSettings,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clientRepo:      clientRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		locker:          locker,
		lockSettings:    lockSettings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
// Проверка занятости и вставка выполняются под блокировкой дня в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	startsAt, err := parseStartsAt(req.StartsAt)
	if err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: client=%d, services=%v, startsAt=%s",
		req.ClientID, req.ServiceIDs, startsAt.Format(domain.SlotFormat))

	// 2. Нельзя записать на прошедшее время (выполненные записи вносятся задним числом)
	now := domain.Naive(uc.timeProvider.Now())
	if !req.Completed && startsAt.Before(now) {
		uc.logger.Warn("CreateAppointment: startsAt=%s is before now=%s",
			startsAt.Format(domain.SlotFormat), now.Format(domain.SlotFormat))
		return nil, ErrStartsInPast
	}

	// 3. Проверяем клиента
	if _, err := uc.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 4. Проверяем услуги
	services, err := uc.catalogRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get services %v: %v", req.ServiceIDs, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	if missing := missingServices(req.ServiceIDs, services); len(missing) > 0 {
		uc.logger.Warn("CreateAppointment: services %v not found", missing)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, missing)
	}

	price := totalPrice(services)
	if req.Price != nil {
		price = *req.Price
	}

	// 5. Блокировка дня: проверка и вставка выполняются последовательно
	key := lock.DayKey(startsAt)
	token, err := lock.AcquireWait(ctx, uc.locker, key, uc.lockSettings.TTL, uc.lockSettings.Wait)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			uc.logger.Warn("CreateAppointment: lock %s is busy", key)
			return nil, ErrBusy
		}
		uc.logger.Error("CreateAppointment: failed to acquire lock %s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := uc.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			uc.logger.Error("CreateAppointment: failed to release lock %s: %v", key, err)
		}
	}()

	var result *domain.Appointment

	// 6. Проверка конфликта и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Конфликт только при точном совпадении времени начала
		if !req.Completed {
			taken, err := uc.appointmentRepo.ExistsPendingAt(txCtx, startsAt)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to check conflict: %v", err)
				return fmt.Errorf("%w: failed to check conflict: %v", ErrInternal, err)
			}
			if taken {
				uc.logger.Warn("CreateAppointment: slot %s is already taken", startsAt.Format(domain.SlotFormat))
				return ErrSlotTaken
			}
		}

		// 6.2. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ClientID:   req.ClientID,
			StartsAt:   startsAt,
			ServiceIDs: req.ServiceIDs,
			Price:      price,
			Completed:  req.Completed,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d at %s",
		result.ID, result.StartsAt.Format(domain.SlotFormat))

	return &Response{
		ID:         result.ID,
		ClientID:   result.ClientID,
		ServiceIDs: result.ServiceIDs,
		StartsAt:   result.StartsAt,
		Price:      result.Price,
		Completed:  result.Completed,
		CreatedAt:  result.CreatedAt,
		UpdatedAt:  result.UpdatedAt,
	}, nil
}
