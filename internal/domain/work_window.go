package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

var (
	// ErrInvalidWeekday returned when weekday is outside 0..6
	ErrInvalidWeekday = errors.New("weekday must be in range 0..6")

	// ErrInvalidWindow returned when window start is not before its end
	ErrInvalidWindow = errors.New("window start must be before end")
)

// WorkWindow represents a time-of-day interval when booking is allowed on a weekday.
// A weekday may have several windows; they are never merged.
type WorkWindow struct {
	ID        int64
	Weekday   Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate checks weekday range, time format and start < end
func (w *WorkWindow) Validate() error {
	if !w.Weekday.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, w.Weekday)
	}
	if err := w.StartTime.Validate(); err != nil {
		return err
	}
	if err := w.EndTime.Validate(); err != nil {
		return err
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}
	return nil
}

// Bounds returns the window as an interval on the given date
func (w *WorkWindow) Bounds(date time.Time) Interval {
	day := DayStart(date)
	return Interval{Start: w.StartTime.OnDate(day), End: w.EndTime.OnDate(day)}
}

// DefaultWorkWindow returns the window used when a weekday has none configured
func DefaultWorkWindow(weekday Weekday) WorkWindow {
	return WorkWindow{
		Weekday:   weekday,
		StartTime: types.TimeString(DefaultWindowStart),
		EndTime:   types.TimeString(DefaultWindowEnd),
	}
}
