package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// DayCapacity per-date administrative overlay.
// A missing record means defaults, dates never need pre-creation.
type DayCapacity struct {
	SalonID          int64
	Date             time.Time
	MaxSlots         int
	ClosedSlots      []types.TimeString // sorted, unique
	DayClosed        bool
	AllowOverbooking bool
	UpdatedAt        time.Time
	UpdatedBy        *int64
}

// DefaultDayCapacity returns the capacity used when no record exists
func DefaultDayCapacity(salonID int64, date time.Time) *DayCapacity {
	return &DayCapacity{
		SalonID:  salonID,
		Date:     date,
		MaxSlots: DefaultMaxSlots,
	}
}

// IsSlotClosed returns true if the slot was closed administratively
func (c *DayCapacity) IsSlotClosed(t types.TimeString) bool {
	for _, closed := range c.ClosedSlots {
		if closed.Equal(t) {
			return true
		}
	}
	return false
}

// CloseSlot adds a slot to the closed set
func (c *DayCapacity) CloseSlot(t types.TimeString) {
	if c.IsSlotClosed(t) {
		return
	}
	c.ClosedSlots = append(c.ClosedSlots, t)
	sort.Slice(c.ClosedSlots, func(i, j int) bool {
		return c.ClosedSlots[i].IsBefore(c.ClosedSlots[j])
	})
}

// OpenSlot removes a slot from the closed set
func (c *DayCapacity) OpenSlot(t types.TimeString) {
	kept := c.ClosedSlots[:0]
	for _, closed := range c.ClosedSlots {
		if !closed.Equal(t) {
			kept = append(kept, closed)
		}
	}
	c.ClosedSlots = kept
}

// Clone returns a deep copy
func (c *DayCapacity) Clone() *DayCapacity {
	if c == nil {
		return nil
	}
	cp := *c
	cp.ClosedSlots = append([]types.TimeString(nil), c.ClosedSlots...)
	if c.UpdatedBy != nil {
		by := *c.UpdatedBy
		cp.UpdatedBy = &by
	}
	return &cp
}
