package update_day_capacity

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/capacity"
)

// UpdateDayCapacityRequest HTTP request model, отсутствующие поля не меняются
type UpdateDayCapacityRequest struct {
	MaxSlots         *int     `json:"maxSlots,omitempty"`
	DayClosed        *bool    `json:"dayClosed,omitempty"`
	AllowOverbooking *bool    `json:"allowOverbooking,omitempty"`
	CloseSlots       []string `json:"closeSlots,omitempty"` // ["15:00", "15:30"]
	OpenSlots        []string `json:"openSlots,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateDayCapacityRequest) ToServiceRequest(actor domain.Actor, salonID int64, date time.Time) *capacity.UpdateRequest {
	return &capacity.UpdateRequest{
		Actor:            actor,
		SalonID:          salonID,
		Date:             date,
		MaxSlots:         r.MaxSlots,
		DayClosed:        r.DayClosed,
		AllowOverbooking: r.AllowOverbooking,
		CloseSlots:       r.CloseSlots,
		OpenSlots:        r.OpenSlots,
	}
}
