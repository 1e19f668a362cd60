package slotgrid

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ErrInvalidDuration возвращается при неположительной длительности слота
var ErrInvalidDuration = errors.New("slotgrid: slot duration must be positive")

// Generate строит упорядоченную сетку слотов от open с шагом durationMinutes.
// Слот попадает в сетку, только если целиком помещается до close.
func Generate(open, close types.TimeString, durationMinutes int) ([]types.TimeString, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}

	slots := make([]types.TimeString, 0)
	if open.IsZero() || close.IsZero() || !open.IsBefore(close) {
		return slots, nil
	}

	for m := open.Minutes(); m+durationMinutes <= close.Minutes(); m += durationMinutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			// m < close, выход за сутки невозможен
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// ForDay строит сетку для расписания дня. Выходной день даёт пустую сетку.
func ForDay(schedule domain.DaySchedule) ([]types.TimeString, error) {
	if !schedule.IsOpen {
		return []types.TimeString{}, nil
	}
	return Generate(schedule.OpenTime, schedule.CloseTime, schedule.SlotDurationMinutes)
}

// Contains проверяет, что t является началом слота сетки
func Contains(grid []types.TimeString, t types.TimeString) bool {
	for _, slot := range grid {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}
