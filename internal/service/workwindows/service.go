package workwindows

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	windowRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/workwindow"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис для управления рабочими окнами
type Service struct {
	windowRepo WorkWindowRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса рабочих окон
func NewService(windowRepo WorkWindowRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		windowRepo: windowRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// List возвращает все рабочие окна, упорядоченные по дню недели и началу
func (s *Service) List(ctx context.Context) (*models.WorkWindowListResponse, error) {
	windows, err := s.windowRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkWindowList(windows), nil
}

// GetByID возвращает рабочее окно по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.WorkWindowResponse, error) {
	window, err := s.windowRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			return nil, ErrWindowNotFound
		}
		s.logger.Error("GetByID: repository error for window id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkWindow(window), nil
}

// Create создает рабочее окно. Окна одного дня не должны пересекаться
func (s *Service) Create(ctx context.Context, req *models.CreateWorkWindowRequest) (*models.WorkWindowResponse, error) {
	window, err := normalize(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var created *domain.WorkWindow

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := s.windowRepo.GetByWeekday(txCtx, window.Weekday)
		if err != nil {
			return fmt.Errorf("%w: Create - get windows: %v", ErrInternal, err)
		}

		for _, w := range existing {
			if overlaps(w, window) {
				return fmt.Errorf("%w: %s-%s", ErrWindowOverlap, w.StartTime, w.EndTime)
			}
		}

		created, err = s.windowRepo.Create(txCtx, window)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrWindowOverlap) {
			s.logger.Warn("Create: %v", err)
			return nil, err
		}
		s.logger.Error("Create: failed to create window: %v", err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: Create - transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	s.logger.Info("Create: window id=%d created (weekday=%d, %s-%s)",
		created.ID, created.Weekday, created.StartTime, created.EndTime)
	return models.FromDomainWorkWindow(created), nil
}

// Delete удаляет рабочее окно
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.windowRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, windowRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: window id=%d deleted", id)
	return nil
}

// normalize приводит время к "HH:MM" и проверяет окно
func normalize(req *models.CreateWorkWindowRequest) (*domain.WorkWindow, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	window := req.ToDomain()
	window.StartTime = start
	window.EndTime = end
	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return window, nil
}

func overlaps(a, b *domain.WorkWindow) bool {
	return a.StartTime.IsBefore(b.EndTime) && b.StartTime.IsBefore(a.EndTime)
}
