package get_day_capacity

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/capacity"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
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

// Handle GET /api/v1/salons/{salonId}/days/{date}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil || salonID <= 0 {
		h.logger.Warn("GET /salons/{id}/days/{date}/capacity - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	date, err := domain.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("GET /salons/{id}/days/{date}/capacity - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Get(r.Context(), salonID, date)
	if err != nil {
		if errors.Is(err, capacity.ErrStorage) {
			h.logger.Error("GET /salons/{id}/days/{date}/capacity - Storage error: salon_id=%d, error=%v", salonID, err)
			handlers.RespondServiceUnavailable(w)
			return
		}
		h.logger.Error("GET /salons/{id}/days/{date}/capacity - Failed to get capacity: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, capacity.FromDomain(result))
}
