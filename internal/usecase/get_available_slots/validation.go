package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

// validateRequest валидирует запрос и подставляет значения по умолчанию
// Длительность остается nil, если её нужно вычислить по услугам
func validateRequest(req *Request, defaults Defaults) (*params, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := validateMinutes("duration", req.DurationMinutes); err != nil {
		return nil, err
	}
	if err := validateMinutes("buffer", req.BufferMinutes); err != nil {
		return nil, err
	}
	if err := validateMinutes("granularity", req.GranularityMinutes); err != nil {
		return nil, err
	}

	p := &params{
		date:        domain.DayStart(req.Date),
		buffer:      ptr.Deref(req.BufferMinutes, defaults.BufferMinutes),
		granularity: ptr.Deref(req.GranularityMinutes, defaults.GranularityMinutes),
	}

	if p.granularity <= 0 {
		return nil, fmt.Errorf("%w: granularity must be positive", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
	}

	switch {
	case req.DurationMinutes != nil:
		p.duration = ptr.Ptr(*req.DurationMinutes)
	case len(req.ServiceIDs) == 0:
		p.duration = ptr.Ptr(defaults.DurationMinutes)
	}

	return p, nil
}

func validateMinutes(name string, value *int) error {
	if value == nil {
		return nil
	}
	if *value < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
	}
	if *value > domain.MaxMinutesValue {
		return fmt.Errorf("%w: %s must not exceed %d minutes", ErrInvalidInput, name, domain.MaxMinutesValue)
	}
	return nil
}
