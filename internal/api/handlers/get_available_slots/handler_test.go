package get_available_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

func TestHandle_Success(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.NewNop())

	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.Date.Equal(date) &&
			req.DurationMinutes == nil &&
			*req.BufferMinutes == 0 &&
			assert.ObjectsAreEqual([]int64{3, 4}, req.ServiceIDs)
	})).Return(&getAvailableSlots.Response{
		Date:  date,
		Slots: []string{"2025-12-01T09:00:00", "2025-12-01T09:15:00"},
	}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-12-01&buffer=0&serviceIds=3,4", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var slots []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Equal(t, []string{"2025-12-01T09:00:00", "2025-12-01T09:15:00"}, slots)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	uc := new(mockUseCase)
	h := NewHandler(uc, logger.NewNop())
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{Slots: []string{}}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-12-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		ucErr      error
		wantStatus int
	}{
		{name: "missing date", url: "/api/v1/availability", wantStatus: http.StatusBadRequest},
		{name: "malformed date", url: "/api/v1/availability?date=01-12-2025", wantStatus: http.StatusBadRequest},
		{name: "malformed duration", url: "/api/v1/availability?date=2025-12-01&duration=abc", wantStatus: http.StatusBadRequest},
		{name: "malformed service ids", url: "/api/v1/availability?date=2025-12-01&serviceIds=1,x", wantStatus: http.StatusBadRequest},
		{name: "invalid input", url: "/api/v1/availability?date=2025-12-01&granularity=0",
			ucErr: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "storage down", url: "/api/v1/availability?date=2025-12-01",
			ucErr: getAvailableSlots.ErrComputationUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", url: "/api/v1/availability?date=2025-12-01",
			ucErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			h := NewHandler(uc, logger.NewNop())
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
