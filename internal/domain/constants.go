package domain

import "time"

// Default configuration values
const (
	DefaultMaxSlots            = 5
	DefaultSlotDurationMinutes = 30
)

// Business validation constants
const (
	MinMaxSlots        = 1
	MaxMaxSlots        = 100
	MaxCommentLength   = 500
	MaxServicesPerBook = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DateOf truncates t to its calendar day in t's location and returns it as midnight UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
