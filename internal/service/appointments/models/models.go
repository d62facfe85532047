package models

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// UpdateAppointmentRequest запрос на частичное обновление записи
type UpdateAppointmentRequest struct {
	StartsAt   *types.DateTimeInput `json:"startsAt,omitempty"`
	Price      *float64             `json:"price,omitempty" validate:"omitempty,gte=0"`
	Completed  *bool                `json:"completed,omitempty"`
	ServiceIDs []int64              `json:"serviceIds,omitempty" validate:"omitempty,dive,gt=0"`
}

// IsEmpty возвращает true, если не задано ни одно поле
func (r *UpdateAppointmentRequest) IsEmpty() bool {
	return r.StartsAt == nil && r.Price == nil && r.Completed == nil && len(r.ServiceIDs) == 0
}

// ListAppointmentsRequest фильтр списка записей
type ListAppointmentsRequest struct {
	Date      *string // YYYY-MM-DD (опционально)
	ClientID  *int64
	Completed *bool
}

// AppointmentResponse ответ с данными записи
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

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}
	serviceIDs := a.ServiceIDs
	if serviceIDs == nil {
		serviceIDs = []int64{}
	}
	return &AppointmentResponse{
		ID:         a.ID,
		ClientID:   a.ClientID,
		ServiceIDs: serviceIDs,
		StartsAt:   a.StartsAt.Format(domain.SlotFormat),
		Price:      a.Price,
		Completed:  a.Completed,
		CreatedAt:  a.CreatedAt.Format(domain.SlotFormat),
		UpdatedAt:  a.UpdatedAt.Format(domain.SlotFormat),
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{Appointments: make([]AppointmentResponse, 0, len(appointments))}
	for _, a := range appointments {
		if dto := FromDomainAppointment(a); dto != nil {
			resp.Appointments = append(resp.Appointments, *dto)
		}
	}
	return resp
}
