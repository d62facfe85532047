package get_work_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/workwindows"
)

const (
	msgInvalidWindowID = "некорректный ID рабочего окна"
	msgNotFound        = "рабочее окно не найдено"
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

// Handle GET /api/v1/work-windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		h.logger.Warn("GET /work-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	window, err := h.service.GetByID(r.Context(), windowID)
	if err != nil {
		if errors.Is(err, workwindows.ErrWindowNotFound) {
			h.logger.Warn("GET /work-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /work-windows/{id} - Failed to get window: window_id=%d, error=%v", windowID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, window)
}
