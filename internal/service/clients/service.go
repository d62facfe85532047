package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

// Service сервис для работы с клиентами
type Service struct {
	clientRepo   ClientRepository
	appointments AppointmentCounter
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(
	clientRepo ClientRepository,
	appointments AppointmentCounter,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		clientRepo:   clientRepo,
		appointments: appointments,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает клиента
func (s *Service) Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	client := req.ToDomain()
	if client.Name == "" || client.Phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: client id=%d created", created.ID)
	return models.FromDomainClient(created), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("GetByID: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("GetByID: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClient(client), nil
}

// List ищет клиентов по имени или телефону
func (s *Service) List(ctx context.Context, req *models.ListClientsRequest) (*models.ClientListResponse, error) {
	params := domain.ListParams{Search: req.Search, Limit: req.Limit}
	if params.Limit <= 0 {
		params.Limit = domain.DefaultSearchLimit
	}
	if params.Limit > domain.MaxSearchLimit {
		params.Limit = domain.MaxSearchLimit
	}

	clients, err := s.clientRepo.List(ctx, params)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d clients (search=%q, limit=%d)", len(clients), params.Search, params.Limit)
	return models.FromDomainClientList(clients), nil
}

// Update обновляет клиента и возвращает актуальные данные
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := s.clientRepo.Update(ctx, id, req.ToDomain()); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("Update: client id=%d not found", id)
			return nil, ErrClientNotFound
		}
		s.logger.Error("Update: repository error for client id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: client id=%d updated", id)
	return s.GetByID(ctx, id)
}

// Delete удаляет клиента. Клиента с записями удалить нельзя
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		count, err := s.appointments.CountByClient(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - count appointments: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("Delete: client id=%d has %d appointments", id, count)
			return ErrClientHasAppointments
		}

		if err := s.clientRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, clientRepo.ErrClientNotFound) {
				return ErrClientNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrClientHasAppointments) && !errors.Is(err, ErrClientNotFound) {
			s.logger.Error("Delete: failed to delete client id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: client id=%d deleted", id)
	return nil
}
