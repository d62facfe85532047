package domain

import "time"

// Appointment binds a client to one or more services at a wall-clock instant
type Appointment struct {
	ID         int64
	ClientID   int64
	StartsAt   time.Time
	ServiceIDs []int64
	Price      float64
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsBlocking returns true if the appointment occupies the calendar
func (a *Appointment) IsBlocking() bool {
	return !a.Completed
}

// AppointmentsFilter фильтр для получения списка записей
type AppointmentsFilter struct {
	From      *time.Time // Начало периода включительно (опционально)
	To        *time.Time // Конец периода включительно (опционально)
	ClientID  *int64     // Фильтр по клиенту (опционально)
	Completed *bool      // Фильтр по статусу выполнения (опционально)
}

// AppointmentUpdate частичное обновление записи (nil поля не меняются)
type AppointmentUpdate struct {
	StartsAt   *time.Time
	Price      *float64
	Completed  *bool
	ServiceIDs []int64 // nil - не менять, непустой - заменить список услуг
}
