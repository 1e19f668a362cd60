package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

// GetAvailableSlotsUseCase статусы слотов дня салона с учётом ёмкости и записей клиента
type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
