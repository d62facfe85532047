package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateTime returned when a wall-clock instant cannot be parsed
var ErrInvalidDateTime = errors.New("invalid date-time")

// ParseWallClock parses an appointment start instant.
// Accepted forms: RFC3339 (the wall clock of its offset is kept, the offset is dropped),
// "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DDTHH:MM:SS". Unix seconds arrive as a JSON
// number and are converted before parsing, so digit strings are rejected.
func ParseWallClock(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidDateTime)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Naive(t), nil
	}

	for _, layout := range []string{DateTimeFormat, SlotFormat} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, raw)
}
