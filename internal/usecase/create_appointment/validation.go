package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientId must be positive", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}

// parseStartsAt разбирает время начала в локальное время без часового пояса
func parseStartsAt(raw string) (time.Time, error) {
	startsAt, err := domain.ParseWallClock(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidStartsAt, err)
	}
	return startsAt, nil
}

// missingServices возвращает ID, которых нет среди найденных услуг
func missingServices(requested []int64, found []*domain.Service) []int64 {
	known := make(map[int64]struct{}, len(found))
	for _, s := range found {
		known[s.ID] = struct{}{}
	}

	missing := make([]int64, 0)
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// totalPrice сумма цен услуг; повторяющийся ID учитывается один раз
func totalPrice(services []*domain.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.Price
	}
	return total
}
