package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulingService/internal/service/appointments/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// LockSettings параметры блокировки дня при переносе записи
type LockSettings struct {
	TTL  time.Duration
	Wait time.Duration
}

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	txManager       TransactionManager
	locker          lock.Locker
	lockSettings    LockSettings
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	locker lock.Locker,
	lockSettings LockSettings,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		txManager:       txManager,
		locker:          locker,
		lockSettings:    lockSettings,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appointment), nil
}

// List получает записи по фильтру (день, клиент, статус)
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter := domain.AppointmentsFilter{
		ClientID:  req.ClientID,
		Completed: req.Completed,
	}

	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
		}
		filter.From = ptr.Ptr(domain.DayStart(date))
		filter.To = ptr.Ptr(domain.DayEnd(date))
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Update частично обновляет запись.
// Перенос активной записи проверяется так же, как создание: по точному совпадению времени начала
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	// 1. Валидация
	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	upd := domain.AppointmentUpdate{
		Price:      req.Price,
		Completed:  req.Completed,
		ServiceIDs: req.ServiceIDs,
	}
	if req.StartsAt != nil {
		startsAt, err := domain.ParseWallClock(req.StartsAt.String())
		if err != nil {
			s.logger.Warn("Update: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStartsAt, err)
		}
		upd.StartsAt = &startsAt
	}

	// 2. Текущее состояние записи
	current, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Update: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Update: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Проверяем новые услуги
	if len(upd.ServiceIDs) > 0 {
		if err := s.checkServices(ctx, upd.ServiceIDs); err != nil {
			return nil, err
		}
	}

	// 4. Перенос активной записи или возврат выполненной в работу проверяется по времени начала
	target := current.StartsAt
	if upd.StartsAt != nil {
		target = *upd.StartsAt
	}
	moving := !target.Equal(current.StartsAt)
	reopening := current.Completed && upd.Completed != nil && !*upd.Completed
	pending := !current.Completed
	if upd.Completed != nil {
		pending = !*upd.Completed
	}
	guard := pending && (moving || reopening)

	if guard {
		key := lock.DayKey(target)
		token, err := lock.AcquireWait(ctx, s.locker, key, s.lockSettings.TTL, s.lockSettings.Wait)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				s.logger.Warn("Update: lock %s is busy", key)
				return nil, ErrBusy
			}
			s.logger.Error("Update: failed to acquire lock %s: %v", key, err)
			return nil, fmt.Errorf("%w: Update - acquire lock: %v", ErrInternal, err)
		}
		defer func() {
			if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
				s.logger.Error("Update: failed to release lock %s: %v", key, err)
			}
		}()
	}

	// 5. Проверка и обновление в сериализуемой транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if guard {
			taken, err := s.appointmentRepo.ExistsPendingAt(txCtx, target)
			if err != nil {
				return fmt.Errorf("%w: Update - check conflict: %v", ErrInternal, err)
			}
			if taken {
				return ErrSlotTaken
			}
		}

		if err := s.appointmentRepo.Update(txCtx, id, upd); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken):
			s.logger.Warn("Update: slot %s is already taken", target.Format(domain.SlotFormat))
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("Update: appointment id=%d not found", id)
		default:
			s.logger.Error("Update: failed to update appointment id=%d: %v", id, err)
			if !errors.Is(err, ErrInternal) {
				err = fmt.Errorf("%w: Update - transaction failed: %v", ErrInternal, err)
			}
		}
		return nil, err
	}

	s.logger.Info("Update: appointment id=%d updated", id)
	return s.GetByID(ctx, id)
}

// Complete отмечает запись выполненной. Выполненная запись больше не занимает время
func (s *Service) Complete(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	upd := domain.AppointmentUpdate{Completed: ptr.Ptr(true)}
	if err := s.appointmentRepo.Update(ctx, id, upd); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Complete: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Complete: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: appointment id=%d completed", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}

func (s *Service) checkServices(ctx context.Context, ids []int64) error {
	services, err := s.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Update: failed to get services %v: %v", ids, err)
		return fmt.Errorf("%w: Update - get services: %v", ErrInternal, err)
	}

	known := make(map[int64]struct{}, len(services))
	for _, svc := range services {
		known[svc.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			s.logger.Warn("Update: service id=%d not found", id)
			return fmt.Errorf("%w: id=%d", ErrServiceNotFound, id)
		}
	}
	return nil
}
