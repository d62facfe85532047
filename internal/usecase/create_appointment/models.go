package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	ClientID   int64    // ID клиента
	ServiceIDs []int64  // Услуги (минимум одна)
	StartsAt   string   // Время начала: RFC3339, "YYYY-MM-DD HH:MM:SS" или "YYYY-MM-DDTHH:MM:SS"
	Price      *float64 // Цена; если не задана - сумма цен услуг
	Completed  bool     // Запись уже выполнена (учет прошедшего визита)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	ClientID   int64
	ServiceIDs []int64
	StartsAt   time.Time
	Price      float64
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LockSettings параметры блокировки дня при записи
type LockSettings struct {
	TTL  time.Duration
	Wait time.Duration
}
