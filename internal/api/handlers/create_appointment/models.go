package create_appointment

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	createAppointment "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ClientID   int64               `json:"clientId" validate:"gt=0"`
	ServiceIDs []int64             `json:"serviceIds" validate:"required,min=1,dive,gt=0"`
	StartsAt   types.DateTimeInput `json:"startsAt" validate:"required"` // "2025-12-01T10:45:00" или unix seconds
	Price      *float64            `json:"price,omitempty" validate:"omitempty,gte=0"`
	Completed  bool                `json:"completed,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	ClientID   int64   `json:"clientId"`
	ServiceIDs []int64 `json:"serviceIds"`
	StartsAt   string  `json:"startsAt"`
	Price      float64 `json:"price"`
	Completed  bool    `json:"completed"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() *createAppointment.Request {
	return &createAppointment.Request{
		ClientID:   r.ClientID,
		ServiceIDs: r.ServiceIDs,
		StartsAt:   r.StartsAt.String(),
		Price:      r.Price,
		Completed:  r.Completed,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		ClientID:   resp.ClientID,
		ServiceIDs: resp.ServiceIDs,
		StartsAt:   resp.StartsAt.Format(domain.SlotFormat),
		Price:      resp.Price,
		Completed:  resp.Completed,
		CreatedAt:  resp.CreatedAt.Format(domain.SlotFormat),
		UpdatedAt:  resp.UpdatedAt.Format(domain.SlotFormat),
	}
}
