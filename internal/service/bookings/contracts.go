package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/incomeservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
)

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	// ListByStatus бронирования всех салонов в статусе с датой не позже until
	ListByStatus(ctx context.Context, status domain.BookingStatus, until time.Time) ([]*domain.Booking, error)
	// Create сохраняет новое бронирование вместе с историей и присваивает ID
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// Save сохраняет состояние и дописывает новые записи истории
	Save(ctx context.Context, booking *domain.Booking) error
}

// SlotChecker проверка интервала по калькулятору доступности.
// Вызывается под блокировкой записи салона.
type SlotChecker interface {
	CheckSlotLocked(ctx context.Context, check availability.SlotCheck) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// IncomeSeeder создание черновика дохода при начале обслуживания
type IncomeSeeder interface {
	CreateDraft(ctx context.Context, req *incomeservice.DraftRequest) (*incomeservice.Draft, error)
}

// EventPublisher отправка уведомлений о закоммиченных изменениях
type EventPublisher interface {
	Publish(ctx context.Context, notification domain.Notification) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics учёт переходов состояния и автозавершения
type Metrics interface {
	ObserveTransition(event, result string)
	ObserveSweep(completed int, err error)
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
