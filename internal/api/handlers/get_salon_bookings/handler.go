package get_salon_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidQuery   = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgMissingUser    = "отсутствует пользователь"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req, err := parseQuery(salonID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req, actor)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("GET /salons/{id}/bookings - Rejected: salon_id=%d, user_id=%d, error=%v",
				salonID, actor.UserID, err)
			return
		}
		h.logger.Error("GET /salons/{id}/bookings - Failed to list bookings: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/bookings - Bookings retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
