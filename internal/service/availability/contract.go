package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
)

// SalonProvider источник настроек салона (часы работы, длительность слота)
type SalonProvider interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
}

// CapacityProvider возвращает настройки дня; при отсутствии записи - значения по умолчанию
type CapacityProvider interface {
	Get(ctx context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error)
}

// BookingReader чтение бронирований салона
type BookingReader interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Locker блокировка чтения состояния салона
type Locker interface {
	RLock(salonID int64) (unlock func())
}

// Metrics учёт запросов доступности
type Metrics interface {
	ObserveAvailability(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
