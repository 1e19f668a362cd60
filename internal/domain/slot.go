package domain

import "github.com/m04kA/SMC-SalonBookingService/pkg/types"

// SlotStatus offerability of a slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotWaitlist    SlotStatus = "waitlist"
	SlotUnavailable SlotStatus = "unavailable"
)

// SlotAvailability per-slot result of the availability calculation
type SlotAvailability struct {
	Time        types.TimeString
	Status      SlotStatus
	Occupancy   int
	Max         int
	IsSensitive bool // at or near capacity, UI warning only
}

// IsOffered returns true if the slot can be booked
func (s SlotAvailability) IsOffered() bool {
	return s.Status == SlotAvailable
}

// DaySchedule opening hours for one weekday
type DaySchedule struct {
	IsOpen              bool
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
}
