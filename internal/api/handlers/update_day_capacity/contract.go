package update_day_capacity

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/capacity"
)

type CapacityService interface {
	Update(ctx context.Context, req *capacity.UpdateRequest) (*domain.DayCapacity, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
