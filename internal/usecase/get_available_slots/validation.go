package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.ClientID != nil && *req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	return nil
}

// resolveClient определяет, для какого клиента считается доступность.
// Клиент видит доступность только для себя, персонал - для любого клиента или без клиента.
func resolveClient(actor domain.Actor, clientID *int64) (*int64, error) {
	if actor.Role != domain.RoleClient {
		return clientID, nil
	}
	if clientID != nil && *clientID != actor.UserID {
		return nil, ErrAccessDenied
	}
	own := actor.UserID
	return &own, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOf(date).Before(domain.DateOf(now))
}
