package models

import (
	"strings"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модели

// CreateClientRequest запрос на создание клиента
type CreateClientRequest struct {
	Name  string  `json:"name" validate:"required,max=120"`
	Phone string  `json:"phone" validate:"required,max=32"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
}

// ToDomain конвертирует запрос в domain модель
func (r *CreateClientRequest) ToDomain() *domain.Client {
	client := &domain.Client{
		Name:  strings.TrimSpace(r.Name),
		Phone: strings.TrimSpace(r.Phone),
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) != "" {
		email := strings.TrimSpace(*r.Email)
		client.Email = &email
	}
	return client
}

// UpdateClientRequest запрос на частичное обновление клиента
type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=1,max=32"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
}

// ToDomain конвертирует запрос в domain модель обновления
func (r *UpdateClientRequest) ToDomain() domain.ClientUpdate {
	return domain.ClientUpdate{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
	}
}

// IsEmpty возвращает true, если не задано ни одно поле
func (r *UpdateClientRequest) IsEmpty() bool {
	return r.Name == nil && r.Phone == nil && r.Email == nil
}

// ListClientsRequest параметры поиска клиентов
type ListClientsRequest struct {
	Search string
	Limit  int
}

// Response модели

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// ClientListResponse ответ со списком клиентов
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// FromDomainClient конвертирует domain модель в DTO
func FromDomainClient(c *domain.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:    c.ID,
		Name:  c.Name,
		Phone: c.Phone,
		Email: c.Email,
	}
}

// FromDomainClientList конвертирует список domain моделей в DTO
func FromDomainClientList(clients []*domain.Client) *ClientListResponse {
	resp := &ClientListResponse{Clients: make([]ClientResponse, 0, len(clients))}
	for _, c := range clients {
		if dto := FromDomainClient(c); dto != nil {
			resp.Clients = append(resp.Clients, *dto)
		}
	}
	return resp
}
