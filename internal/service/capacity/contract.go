package capacity

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// CapacityRepository интерфейс хранилища настроек дня
type CapacityRepository interface {
	Get(ctx context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error)
	Upsert(ctx context.Context, capacity *domain.DayCapacity) error
}

// Locker блокировка записи состояния салона
type Locker interface {
	Lock(salonID int64) (unlock func())
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
