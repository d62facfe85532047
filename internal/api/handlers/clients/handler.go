package clients

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	clientsService "github.com/m04kA/SMC-SchedulingService/internal/service/clients"
	"github.com/m04kA/SMC-SchedulingService/internal/service/clients/models"
)

const (
	msgInvalidClientID    = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgNotFound           = "клиент не найден"
	msgHasAppointments    = "у клиента есть записи, удаление невозможно"
)

// Handler обработчики справочника клиентов
type Handler struct {
	service ClientService
	logger  Logger
}

func NewHandler(service ClientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/clients
// Query params: search, limit (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := &models.ListClientsRequest{Search: r.URL.Query().Get("search")}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.logger.Warn("GET /clients - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /clients - Failed to list clients: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Clients)
}

// Get GET /api/v1/clients/{clientId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /clients/{id} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	client, err := h.service.GetByID(r.Context(), clientID)
	if err != nil {
		h.respondServiceError(w, "GET /clients/{id}", clientID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, client)
}

// Create POST /api/v1/clients
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /clients - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /clients", 0, err)
		return
	}

	h.logger.Info("POST /clients - Client created successfully: client_id=%d", client.ID)
	handlers.RespondJSON(w, http.StatusCreated, client)
}

// Update PUT /api/v1/clients/{clientId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("PUT /clients/{id} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	var req models.UpdateClientRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /clients/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	client, err := h.service.Update(r.Context(), clientID, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /clients/{id}", clientID, err)
		return
	}

	h.logger.Info("PUT /clients/{id} - Client updated successfully: client_id=%d", clientID)
	handlers.RespondJSON(w, http.StatusOK, client)
}

// Delete DELETE /api/v1/clients/{clientId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathID(r, "clientId")
	if err != nil {
		h.logger.Warn("DELETE /clients/{id} - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	if err := h.service.Delete(r.Context(), clientID); err != nil {
		h.respondServiceError(w, "DELETE /clients/{id}", clientID, err)
		return
	}

	h.logger.Info("DELETE /clients/{id} - Client deleted successfully: client_id=%d", clientID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, clientID int64, err error) {
	switch {
	case errors.Is(err, clientsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, clientsService.ErrClientNotFound):
		h.logger.Warn("%s - Client not found: client_id=%d", route, clientID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, clientsService.ErrClientHasAppointments):
		h.logger.Warn("%s - Client has appointments: client_id=%d", route, clientID)
		handlers.RespondConflict(w, msgHasAppointments)

	default:
		h.logger.Error("%s - Failed: client_id=%d, error=%v", route, clientID, err)
		handlers.RespondInternalError(w)
	}
}
