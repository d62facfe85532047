package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(*domain.Client)
	return created, args.Error(1)
}

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*domain.Client)
	return client, args.Error(1)
}

func (m *mockClientRepo) List(ctx context.Context, params domain.ListParams) ([]*domain.Client, error) {
	args := m.Called(ctx, params)
	clients, _ := args.Get(0).([]*domain.Client)
	return clients, args.Error(1)
}

func (m *mockClientRepo) Update(ctx context.Context, id int64, upd domain.ClientUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *mockClientRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCounter struct{ mock.Mock }

func (m *mockCounter) CountByClient(ctx context.Context, clientID int64) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService() (*Service, *mockClientRepo, *mockCounter) {
	repo := new(mockClientRepo)
	counter := new(mockCounter)
	return NewService(repo, counter, inlineTx{}, logger.NewNop()), repo, counter
}

func TestCreate_TrimsAndDropsEmptyEmail(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("Create", mock.Anything, &domain.Client{Name: "Ana", Phone: "+351900"}).
		Return(&domain.Client{ID: 1, Name: "Ana", Phone: "+351900"}, nil)

	resp, err := svc.Create(context.Background(), &models.CreateClientRequest{
		Name:  "  Ana ",
		Phone: "+351900",
		Email: ptr.Ptr("  "),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Nil(t, resp.Email)
	repo.AssertExpectations(t)
}

func TestCreate_BlankName(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Create(context.Background(), &models.CreateClientRequest{Name: "  ", Phone: "1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("GetByID", mock.Anything, int64(5)).Return(nil, clientRepo.ErrClientNotFound)

	_, err := svc.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestList_AppliesLimits(t *testing.T) {
	svc, repo, _ := newService()

	repo.On("List", mock.Anything, domain.ListParams{Search: "an", Limit: domain.DefaultSearchLimit}).
		Return([]*domain.Client{{ID: 1, Name: "Ana"}}, nil)
	repo.On("List", mock.Anything, domain.ListParams{Limit: domain.MaxSearchLimit}).
		Return([]*domain.Client{}, nil)

	resp, err := svc.List(context.Background(), &models.ListClientsRequest{Search: "an"})
	require.NoError(t, err)
	assert.Len(t, resp.Clients, 1)

	resp, err = svc.List(context.Background(), &models.ListClientsRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Empty(t, resp.Clients)
	repo.AssertExpectations(t)
}

func TestUpdate_Empty(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Update(context.Background(), 1, &models.UpdateClientRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ReturnsFreshClient(t *testing.T) {
	svc, repo, _ := newService()

	upd := &models.UpdateClientRequest{Phone: ptr.Ptr("222")}
	repo.On("Update", mock.Anything, int64(1), upd.ToDomain()).Return(nil)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1, Name: "Ana", Phone: "222"}, nil)

	resp, err := svc.Update(context.Background(), 1, upd)
	require.NoError(t, err)
	assert.Equal(t, "222", resp.Phone)
}

func TestDelete_RefusedWithAppointments(t *testing.T) {
	svc, repo, counter := newService()
	counter.On("CountByClient", mock.Anything, int64(1)).Return(2, nil)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClientHasAppointments)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{name: "deleted"},
		{name: "not found", repoErr: clientRepo.ErrClientNotFound, wantErr: ErrClientNotFound},
		{name: "storage failure", repoErr: errors.New("boom"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, counter := newService()
			counter.On("CountByClient", mock.Anything, int64(1)).Return(0, nil)
			repo.On("Delete", mock.Anything, int64(1)).Return(tt.repoErr)

			err := svc.Delete(context.Background(), 1)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
