package domain

import "time"

// Weekday day of week numbered from Monday=0 to Sunday=6
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayOf returns the Monday-based weekday of the given date
func WeekdayOf(date time.Time) Weekday {
	return Weekday((int(date.Weekday()) + 6) % 7)
}

// IsValid returns true if the weekday is in range 0..6
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// DayStart returns 00:00:00 of the date as a naive wall-clock instant
func DayStart(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayEnd returns 23:59:59 of the date as a naive wall-clock instant
func DayEnd(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

// Naive drops the zone of t keeping its wall clock, so that values read
// from TIMESTAMP WITHOUT TIME ZONE compare equal to locally built instants
func Naive(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	return time.Date(y, m, d, hh, mm, ss, t.Nanosecond(), time.UTC)
}
