package availability

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// scheduleForDate возвращает расписание салона на день недели даты.
// Некорректные или пустые часы работы трактуются как выходной.
func scheduleForDate(salon *salonservice.Salon, date time.Time) domain.DaySchedule {
	var day salonservice.DaySchedule

	switch date.Weekday() {
	case time.Monday:
		day = salon.WorkingHours.Monday
	case time.Tuesday:
		day = salon.WorkingHours.Tuesday
	case time.Wednesday:
		day = salon.WorkingHours.Wednesday
	case time.Thursday:
		day = salon.WorkingHours.Thursday
	case time.Friday:
		day = salon.WorkingHours.Friday
	case time.Saturday:
		day = salon.WorkingHours.Saturday
	case time.Sunday:
		day = salon.WorkingHours.Sunday
	}

	duration := salon.SlotDurationMinutes
	if duration <= 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	closed := domain.DaySchedule{IsOpen: false, SlotDurationMinutes: duration}
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return closed
	}

	open, err := types.NewTimeStringFromString(*day.OpenTime)
	if err != nil {
		return closed
	}
	closeTime, err := types.NewTimeStringFromString(*day.CloseTime)
	if err != nil {
		return closed
	}

	return domain.DaySchedule{
		IsOpen:              true,
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: duration,
	}
}
