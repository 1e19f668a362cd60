package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

const (
	msgBookingNotFound   = "бронирование не найдено"
	msgSalonNotFound     = "салон не найден"
	msgForbidden         = "доступ запрещен"
	msgInvalidInput      = "некорректные данные запроса"
	msgInvalidTransition = "действие недоступно для текущего статуса бронирования"
	msgSlotUnavailable   = "выбранное время недоступно"
	msgSlotFull          = "выбранное время занято, доступен только лист ожидания"
)

// RespondBookingError отвечает на ошибку менеджера бронирований.
// Возвращает false для ошибок, которые не относятся к менеджеру, ответ в этом случае не пишется.
func RespondBookingError(w http.ResponseWriter, err error) bool {
	var transitionErr *bookings.TransitionError

	switch {
	case errors.As(err, &transitionErr):
		RespondConflict(w, msgInvalidTransition, models.ToActionNames(transitionErr.Allowed))
	case errors.Is(err, bookings.ErrBookingNotFound):
		RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, bookings.ErrSalonNotFound):
		RespondNotFound(w, msgSalonNotFound)
	case errors.Is(err, bookings.ErrSlotFull):
		RespondConflict(w, msgSlotFull, nil)
	case errors.Is(err, bookings.ErrSlotUnavailable):
		RespondConflict(w, msgSlotUnavailable, nil)
	case errors.Is(err, bookings.ErrAccessDenied):
		RespondForbidden(w, msgForbidden)
	case errors.Is(err, bookings.ErrInvalidInput):
		RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, bookings.ErrStorage), errors.Is(err, bookings.ErrSettingsUnavailable):
		RespondServiceUnavailable(w)
	default:
		return false
	}
	return true
}
