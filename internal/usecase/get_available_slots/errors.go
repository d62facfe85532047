package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrComputationUnavailable возвращается, когда данные для расчета не удалось прочитать из хранилища
	ErrComputationUnavailable = errors.New("availability computation unavailable")
)
