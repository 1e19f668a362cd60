package update_day_capacity

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/capacity"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные настройки дня"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/days/{date}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/days/{date}/capacity - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/days/{date}/capacity - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateDayCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/days/{date}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит права менеджера
	result, err := h.service.Update(r.Context(), req.ToServiceRequest(actor, salonID, date))
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/days/{date}/capacity - Access denied: salon_id=%d, user_id=%d",
				salonID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/days/{date}/capacity - Invalid data: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, capacity.ErrStorage):
			h.logger.Error("PUT /salons/{id}/days/{date}/capacity - Storage error: salon_id=%d, error=%v", salonID, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("PUT /salons/{id}/days/{date}/capacity - Failed to update capacity: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/days/{date}/capacity - Capacity updated successfully: salon_id=%d, date=%s, user_id=%d",
		salonID, date.Format(domain.DateFormat), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, capacity.FromDomain(result))
}
