package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidStartsAt возвращается, когда время начала не удалось разобрать
	ErrInvalidStartsAt = errors.New("invalid startsAt")

	// ErrSlotTaken возвращается, когда на новое время уже есть активная запись
	ErrSlotTaken = errors.New("slot already taken")

	// ErrBusy возвращается, когда день записи заблокирован другим запросом
	ErrBusy = errors.New("appointment day is busy, retry later")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
