package transition_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownAction      = "неизвестное действие"
	msgMissingUser        = "отсутствует пользователь"
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

// Handle POST /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, actions, "action")
}

// HandleRescheduleDecision POST /api/v1/bookings/{bookingId}/reschedule/{decision}
func (h *Handler) HandleRescheduleDecision(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, decisions, "decision")
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, events map[string]domain.Event, varName string) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/action - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	name := mux.Vars(r)[varName]
	event, ok := events[name]
	if !ok {
		h.logger.Warn("POST /bookings/{id}/action - Unknown action %q", name)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/%s - Invalid request body: %v", event, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Transition(r.Context(), bookingID, event, actor, req.Comment)
	if err != nil {
		if handlers.RespondBookingError(w, err) {
			h.logger.Warn("POST /bookings/{id}/%s - Rejected: booking_id=%d, user_id=%d, role=%s, error=%v",
				event, bookingID, actor.UserID, actor.Role, err)
			return
		}
		h.logger.Error("POST /bookings/{id}/%s - Failed: booking_id=%d, error=%v", event, bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/{id}/%s - Booking %d is now %s, user_id=%d",
		event, bookingID, booking.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
