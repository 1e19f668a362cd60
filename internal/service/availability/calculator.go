package availability

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Input данные для расчёта доступности одного дня
type Input struct {
	Grid     []types.TimeString
	Capacity *domain.DayCapacity
	Bookings []*domain.Booking

	ClientID         *int64      // клиент, для которого считается доступность (опционально)
	Role             domain.Role // роль запрашивающего
	ExcludeBookingID int64       // бронирование, которое не учитывается (перенос)
}

// Calculate рассчитывает статус каждого слота сетки. Чистая функция.
func Calculate(in Input) []domain.SlotAvailability {
	capacity := in.Capacity
	if capacity == nil {
		capacity = &domain.DayCapacity{MaxSlots: domain.DefaultMaxSlots}
	}

	result := make([]domain.SlotAvailability, 0, len(in.Grid))
	for _, t := range in.Grid {
		result = append(result, evaluateSlot(t, capacity, in))
	}
	return result
}

func evaluateSlot(t types.TimeString, capacity *domain.DayCapacity, in Input) domain.SlotAvailability {
	slot := domain.SlotAvailability{
		Time: t,
		Max:  capacity.MaxSlots,
	}

	if capacity.DayClosed || capacity.IsSlotClosed(t) {
		slot.Status = domain.SlotUnavailable
		return slot
	}

	occupancy := 0
	for _, b := range in.Bookings {
		if b.ID != 0 && b.ID == in.ExcludeBookingID {
			continue
		}
		if !b.Status.OccupiesCapacity() || !b.Occupies(t) {
			continue
		}
		// Клиент не может держать две брони на одно время, проверка важнее загрузки
		if in.ClientID != nil && b.BelongsTo(*in.ClientID) {
			slot.Status = domain.SlotUnavailable
			slot.Occupancy = 0
			return slot
		}
		occupancy++
	}
	slot.Occupancy = occupancy

	switch {
	case occupancy >= capacity.MaxSlots:
		if capacity.AllowOverbooking || in.Role.IsStaff() {
			slot.Status = domain.SlotAvailable
			slot.IsSensitive = true
		} else {
			slot.Status = domain.SlotWaitlist
		}
	case occupancy > 0:
		slot.Status = domain.SlotAvailable
		slot.IsSensitive = true
	default:
		slot.Status = domain.SlotAvailable
	}

	return slot
}
