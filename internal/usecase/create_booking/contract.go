package create_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// SalonCatalog каталог услуг салона
type SalonCatalog interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*salonservice.Service, error)
}

// BookingCreator создание бронирования в менеджере жизненного цикла
type BookingCreator interface {
	Create(ctx context.Context, req *models.CreateBookingRequest, actor domain.Actor) (*models.BookingResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
