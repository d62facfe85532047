package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	clientRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/client"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/lock"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(*domain.Appointment)
	return created, args.Error(1)
}

func (m *mockAppointmentRepo) ExistsPendingAt(ctx context.Context, startsAt time.Time) (bool, error) {
	args := m.Called(ctx, startsAt)
	return args.Bool(0), args.Error(1)
}

type mockClientRepo struct{ mock.Mock }

func (m *mockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	client, _ := args.Get(0).(*domain.Client)
	return client, args.Error(1)
}

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	args := m.Called(ctx, ids)
	services, _ := args.Get(0).([]*domain.Service)
	return services, args.Error(1)
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	appointments *mockAppointmentRepo
	clients      *mockClientRepo
	catalog      *mockCatalogRepo
	locker       *lock.LocalLocker
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		appointments: new(mockAppointmentRepo),
		clients:      new(mockClientRepo),
		catalog:      new(mockCatalogRepo),
		locker:       lock.NewLocalLocker(),
	}
	f.uc = NewUseCase(f.appointments, f.clients, f.catalog, inlineTx{}, f.locker,
		LockSettings{TTL: time.Second, Wait: 100 * time.Millisecond}, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)}
	return f
}

var slotTime = time.Date(2025, 12, 1, 10, 45, 0, 0, time.UTC)

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1, Name: "Ana"}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3, 4}).Return([]*domain.Service{
		{ID: 3, Price: 35, DurationMinutes: 30},
		{ID: 4, Price: 15, DurationMinutes: 15},
	}, nil)
	f.appointments.On("ExistsPendingAt", mock.Anything, slotTime).Return(false, nil)
	f.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.ClientID == 1 && a.StartsAt.Equal(slotTime) && a.Price == 50 && !a.Completed
	})).Return(&domain.Appointment{ID: 9, ClientID: 1, StartsAt: slotTime, ServiceIDs: []int64{3, 4}, Price: 50}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID:   1,
		ServiceIDs: []int64{3, 4},
		StartsAt:   "2025-12-01T10:45:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, 50.0, resp.Price)

	// блокировка дня освобождена
	_, ok, _ := f.locker.Acquire(context.Background(), lock.DayKey(slotTime), time.Second)
	assert.True(t, ok)

	f.appointments.AssertExpectations(t)
}

func TestExecute_ExplicitPrice(t *testing.T) {
	f := newFixture()
	price := 20.0

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{{ID: 3, Price: 35}}, nil)
	f.appointments.On("ExistsPendingAt", mock.Anything, slotTime).Return(false, nil)
	f.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.Price == 20
	})).Return(&domain.Appointment{ID: 1, Price: 20}, nil)

	_, err := f.uc.Execute(context.Background(), &Request{
		ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "2025-12-01 10:45:00", Price: &price,
	})
	require.NoError(t, err)
}

func TestExecute_SlotTaken(t *testing.T) {
	f := newFixture()

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{{ID: 3}}, nil)
	f.appointments.On("ExistsPendingAt", mock.Anything, slotTime).Return(true, nil)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "2025-12-01T10:45:00Z"})
	assert.ErrorIs(t, err, ErrSlotTaken)
	f.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_InvalidStartsAt(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "next monday"})
	assert.ErrorIs(t, err, ErrInvalidStartsAt)
	f.clients.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestExecute_StartsInPast(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "2025-11-29 09:00:00"})
	assert.ErrorIs(t, err, ErrStartsInPast)
}

func TestExecute_CompletedInPastSkipsConflictCheck(t *testing.T) {
	f := newFixture()
	past := time.Date(2025, 11, 29, 9, 0, 0, 0, time.UTC)

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{{ID: 3, Price: 10}}, nil)
	f.appointments.On("Create", mock.Anything, mock.Anything).Return(&domain.Appointment{ID: 2, StartsAt: past, Completed: true}, nil)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "2025-11-29 09:00:00", Completed: true,
	})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	f.appointments.AssertNotCalled(t, "ExistsPendingAt", mock.Anything, mock.Anything)
}

func TestExecute_ClientNotFound(t *testing.T) {
	f := newFixture()

	f.clients.On("GetByID", mock.Anything, int64(5)).Return(nil, clientRepo.ErrClientNotFound)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 5, ServiceIDs: []int64{3}, StartsAt: "2025-12-01T10:45:00"})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	f := newFixture()

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3, 8}).Return([]*domain.Service{{ID: 3}}, nil)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 1, ServiceIDs: []int64{3, 8}, StartsAt: "2025-12-01T10:45:00"})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_LockBusy(t *testing.T) {
	f := newFixture()

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{{ID: 3}}, nil)

	_, ok, _ := f.locker.Acquire(context.Background(), lock.DayKey(slotTime), time.Minute)
	require.True(t, ok)

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "2025-12-01T10:45:00"})
	assert.ErrorIs(t, err, ErrBusy)
}

func TestExecute_StorageError(t *testing.T) {
	f := newFixture()

	f.clients.On("GetByID", mock.Anything, int64(1)).Return(&domain.Client{ID: 1}, nil)
	f.catalog.On("GetByIDs", mock.Anything, []int64{3}).Return([]*domain.Service{{ID: 3}}, nil)
	f.appointments.On("ExistsPendingAt", mock.Anything, slotTime).Return(false, errors.New("conn closed"))

	_, err := f.uc.Execute(context.Background(), &Request{ClientID: 1, ServiceIDs: []int64{3}, StartsAt: "2025-12-01T10:45:00"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestValidateRequest(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name string
		req  *Request
	}{
		{"nil", nil},
		{"no client", &Request{ServiceIDs: []int64{1}}},
		{"no services", &Request{ClientID: 1}},
		{"bad service", &Request{ClientID: 1, ServiceIDs: []int64{-2}}},
		{"negative price", &Request{ClientID: 1, ServiceIDs: []int64{1}, Price: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validateRequest(tt.req), ErrInvalidInput)
		})
	}
}
