package domain

// Service represents a catalog entry with price and duration
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
}

// ServiceUpdate частичное обновление услуги
type ServiceUpdate struct {
	Name            *string
	Price           *float64
	DurationMinutes *int
}

// TotalDuration sums service durations for the given ids.
// Unknown ids contribute zero; a zero total falls back to FallbackServiceDurationMinutes.
func TotalDuration(serviceIDs []int64, durations map[int64]int) int {
	total := 0
	for _, id := range serviceIDs {
		total += durations[id]
	}
	if total <= 0 {
		return FallbackServiceDurationMinutes
	}
	return total
}
