package get_day_capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

type CapacityService interface {
	Get(ctx context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
