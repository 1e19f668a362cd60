package capacity

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// UpdateRequest частичное изменение настроек дня.
// Указатели nil означают "не менять".
type UpdateRequest struct {
	Actor            domain.Actor
	SalonID          int64
	Date             time.Time
	MaxSlots         *int
	DayClosed        *bool
	AllowOverbooking *bool
	CloseSlots       []string // "HH:MM"
	OpenSlots        []string // "HH:MM"
}

// DayCapacityResponse настройки дня для HTTP ответа
type DayCapacityResponse struct {
	SalonID          int64      `json:"salonId"`
	Date             string     `json:"date"` // "2025-10-15"
	MaxSlots         int        `json:"maxSlots"`
	ClosedSlots      []string   `json:"closedSlots"`
	DayClosed        bool       `json:"dayClosed"`
	AllowOverbooking bool       `json:"allowOverbooking"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy        *int64     `json:"updatedBy,omitempty"`
}

// FromDomain конвертирует настройки дня в DTO
func FromDomain(c *domain.DayCapacity) *DayCapacityResponse {
	resp := &DayCapacityResponse{
		SalonID:          c.SalonID,
		Date:             c.Date.Format(domain.DateFormat),
		MaxSlots:         c.MaxSlots,
		ClosedSlots:      make([]string, len(c.ClosedSlots)),
		DayClosed:        c.DayClosed,
		AllowOverbooking: c.AllowOverbooking,
		UpdatedBy:        c.UpdatedBy,
	}
	for i, slot := range c.ClosedSlots {
		resp.ClosedSlots[i] = slot.String()
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
