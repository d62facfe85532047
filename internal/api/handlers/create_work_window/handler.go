package create_work_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidWindow      = "некорректное рабочее окно: день недели 0..6, время HH:MM, начало раньше конца"
	msgOverlap            = "рабочее окно пересекается с существующим"
)

type Handler struct {
	service WorkWindowService
	logger  Logger
}

func NewHandler(service WorkWindowService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/work-windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /work-windows - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	window, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, workwindows.ErrInvalidInput):
			h.logger.Warn("POST /work-windows - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, workwindows.ErrWindowOverlap):
			h.logger.Warn("POST /work-windows - Overlap: weekday=%d, %s-%s", req.Weekday, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgOverlap)

		default:
			h.logger.Error("POST /work-windows - Failed to create window: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /work-windows - Window created successfully: window_id=%d", window.ID)
	handlers.RespondJSON(w, http.StatusCreated, window)
}
