package list_work_windows

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
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

// Handle GET /api/v1/work-windows
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /work-windows - Failed to get work windows: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /work-windows - Work windows retrieved successfully: count=%d", len(result.WorkWindows))
	handlers.RespondJSON(w, http.StatusOK, result.WorkWindows)
}
