package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition возвращается, когда переход недопустим из текущего статуса или для роли
	ErrInvalidTransition = errors.New("invalid booking transition")

	// ErrSlotUnavailable возвращается, когда интервал закрыт или уже занят этим клиентом
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrSlotFull возвращается, когда интервал заполнен и доступен только лист ожидания
	ErrSlotFull = errors.New("slot full")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrSettingsUnavailable возвращается, когда настройки салона недоступны
	ErrSettingsUnavailable = errors.New("salon settings unavailable")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrStorage возвращается при ошибках хранилища, операция не применена
	ErrStorage = errors.New("service: storage error")
)

// TransitionError отказ в переходе с перечнем допустимых действий
type TransitionError struct {
	From    domain.BookingStatus
	Event   domain.Event
	Role    domain.Role
	Allowed []domain.Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s from %s by %s", ErrInvalidTransition, e.Event, e.From, e.Role)
}

// Unwrap позволяет сравнивать через errors.Is(err, ErrInvalidTransition)
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
