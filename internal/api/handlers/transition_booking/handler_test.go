package transition_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	event   domain.Event
	comment *string
	err     error
}

func (f *fakeService) Transition(_ context.Context, id int64, event domain.Event, _ domain.Actor, comment *string) (*models.BookingResponse, error) {
	f.event, f.comment = event, comment
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "confirmed"}, nil
}

func router(svc *fakeService) *mux.Router {
	h := NewHandler(svc, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/reschedule/{decision}", h.HandleRescheduleDecision).Methods(http.MethodPost)
	r.HandleFunc("/bookings/{bookingId}/{action}", h.Handle).Methods(http.MethodPost)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Role: domain.RoleManager}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Actions(t *testing.T) {
	tests := []struct {
		path string
		want domain.Event
	}{
		{"/bookings/1/confirm", domain.EventConfirm},
		{"/bookings/1/cancel", domain.EventCancel},
		{"/bookings/1/start", domain.EventStart},
		{"/bookings/1/complete", domain.EventComplete},
		{"/bookings/1/close", domain.EventClose},
		{"/bookings/1/reschedule/approve", domain.EventApproveReschedule},
		{"/bookings/1/reschedule/reject", domain.EventRejectReschedule},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := &fakeService{}
			rec := post(router(svc), tt.path, "")
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, svc.event)
			assert.Nil(t, svc.comment)
		})
	}
}

func TestHandler_Comment(t *testing.T) {
	svc := &fakeService{}
	rec := post(router(svc), "/bookings/1/cancel", `{"comment":"client called"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.comment)
	assert.Equal(t, "client called", *svc.comment)
}

func TestHandler_UnknownAction(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, post(router(&fakeService{}), "/bookings/1/propose_reschedule", "").Code)
	assert.Equal(t, http.StatusNotFound, post(router(&fakeService{}), "/bookings/1/reschedule/maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, post(router(&fakeService{}), "/bookings/x/confirm", "").Code)
}

func TestHandler_InvalidTransition(t *testing.T) {
	svc := &fakeService{err: &bookings.TransitionError{
		From:    domain.StatusCompleted,
		Event:   domain.EventCancel,
		Role:    domain.RoleManager,
		Allowed: nil,
	}}

	rec := post(router(svc), "/bookings/1/cancel", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.AllowedActions)
}
