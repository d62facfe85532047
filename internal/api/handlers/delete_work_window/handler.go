package delete_work_window

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

// Handle DELETE /api/v1/work-windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowID, err := handlers.PathID(r, "windowId")
	if err != nil {
		h.logger.Warn("DELETE /work-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	if err := h.service.Delete(r.Context(), windowID); err != nil {
		switch {
		case errors.Is(err, workwindows.ErrWindowNotFound):
			h.logger.Warn("DELETE /work-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /work-windows/{id} - Failed to delete window: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /work-windows/{id} - Window deleted successfully: window_id=%d", windowID)
	handlers.RespondNoContent(w)
}
