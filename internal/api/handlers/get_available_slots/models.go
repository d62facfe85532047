package get_available_slots

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// ToUseCaseRequest создает запрос use case из query параметров
// date (обязателен), duration, buffer, granularity, serviceIds (через запятую)
func ToUseCaseRequest(r *http.Request) (*getAvailableSlots.Request, error) {
	q := r.URL.Query()

	dateStr := q.Get("date")
	if dateStr == "" {
		return nil, errMissingDate
	}

	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	req := &getAvailableSlots.Request{Date: date}

	if req.DurationMinutes, err = handlers.QueryInt(r, "duration"); err != nil {
		return nil, err
	}
	if req.BufferMinutes, err = handlers.QueryInt(r, "buffer"); err != nil {
		return nil, err
	}
	if req.GranularityMinutes, err = handlers.QueryInt(r, "granularity"); err != nil {
		return nil, err
	}
	if req.ServiceIDs, err = handlers.QueryInt64s(q.Get("serviceIds")); err != nil {
		return nil, err
	}

	return req, nil
}
