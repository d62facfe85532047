package domain

// Default availability values
const (
	DefaultDurationMinutes    = 30
	DefaultBufferMinutes      = 15
	DefaultGranularityMinutes = 15

	// FallbackServiceDurationMinutes используется, когда суммарная длительность услуг записи равна нулю
	// (услуга удалена или у неё не задана длительность)
	FallbackServiceDurationMinutes = 30
)

// Default working window, applied when a weekday has no configured windows
const (
	DefaultWindowStart = "08:00"
	DefaultWindowEnd   = "18:00"
)

// Business validation constants
const (
	DefaultSearchLimit = 15
	MaxSearchLimit     = 100
	MaxNameLength      = 120
	MaxPhoneLength     = 32
	MaxEmailLength     = 254
	MaxMinutesValue    = 24 * 60
)

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	SlotFormat     = "2006-01-02T15:04:05" // YYYY-MM-DDTHH:MM:SS
	DateTimeFormat = "2006-01-02 15:04:05" // YYYY-MM-DD HH:MM:SS
)
