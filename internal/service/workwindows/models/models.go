package models

import (
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// CreateWorkWindowRequest запрос на создание рабочего окна
type CreateWorkWindowRequest struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateWorkWindowRequest) ToDomain() *domain.WorkWindow {
	return &domain.WorkWindow{
		Weekday:   domain.Weekday(r.Weekday),
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
	}
}

// WorkWindowResponse ответ с данными рабочего окна
type WorkWindowResponse struct {
	ID        int64  `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// WorkWindowListResponse ответ со списком рабочих окон
type WorkWindowListResponse struct {
	WorkWindows []WorkWindowResponse `json:"workWindows"`
}

// FromDomainWorkWindow конвертирует domain модель в DTO
func FromDomainWorkWindow(w *domain.WorkWindow) *WorkWindowResponse {
	if w == nil {
		return nil
	}
	return &WorkWindowResponse{
		ID:        w.ID,
		Weekday:   int(w.Weekday),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
	}
}

// FromDomainWorkWindowList конвертирует список domain моделей в DTO
func FromDomainWorkWindowList(windows []*domain.WorkWindow) *WorkWindowListResponse {
	resp := &WorkWindowListResponse{WorkWindows: make([]WorkWindowResponse, 0, len(windows))}
	for _, w := range windows {
		if dto := FromDomainWorkWindow(w); dto != nil {
			resp.WorkWindows = append(resp.WorkWindows, *dto)
		}
	}
	return resp
}
