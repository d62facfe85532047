package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidStartsAt возвращается, когда время начала не удалось разобрать
	ErrInvalidStartsAt = errors.New("create_appointment: invalid startsAt")

	// ErrStartsInPast возвращается при попытке записать на прошедшее время
	ErrStartsInPast = errors.New("create_appointment: startsAt is in the past")

	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = errors.New("create_appointment: client not found")

	// ErrServiceNotFound возвращается, когда одна из услуг не найдена
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrSlotTaken возвращается, когда на это время уже есть невыполненная запись
	ErrSlotTaken = errors.New("create_appointment: slot is already taken")

	// ErrBusy возвращается, когда блокировку дня не удалось получить
	ErrBusy = errors.New("create_appointment: booking is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
