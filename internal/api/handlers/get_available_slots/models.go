package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date    string         `json:"date"` // "2025-10-15"
	SalonID int64          `json:"salonId"`
	Slots   []SlotResponse `json:"slots"`
}

// SlotResponse статус слота
type SlotResponse struct {
	Time        string `json:"time"`   // "10:00"
	Status      string `json:"status"` // available | waitlist | unavailable
	Occupancy   int    `json:"occupancy"`
	MaxSlots    int    `json:"maxSlots"`
	IsSensitive bool   `json:"isSensitive"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Time:        slot.StartTime.String(),
			Status:      string(slot.Status),
			Occupancy:   slot.Occupancy,
			MaxSlots:    slot.MaxSlots,
			IsSensitive: slot.IsSensitive,
		}
	}

	return &AvailableSlotsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		SalonID: resp.SalonID,
		Slots:   slots,
	}
}
