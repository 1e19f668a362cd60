package modify_booking

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
	got *models.ModifyBookingRequest
	err error
}

func (f *fakeService) Modify(_ context.Context, id int64, req *models.ModifyBookingRequest, _ domain.Actor) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, AdminModified: true}, nil
}

func do(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/3", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "3"})
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Role: domain.RoleManager}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}
	rec := do(svc, `{"workerIds":[7],"startTime":"11:00","comment":"moved"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.got.WorkerIDs)
	assert.Equal(t, []int64{7}, *svc.got.WorkerIDs)
	require.NotNil(t, svc.got.StartTime)
	assert.Equal(t, "11:00", svc.got.StartTime.String())
	assert.Nil(t, svc.got.Date)
	assert.Nil(t, svc.got.EndTime)
}

func TestHandler_BadInput(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, do(&fakeService{}, `{"date":"tomorrow"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(&fakeService{}, `{"endTime":"9"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(&fakeService{}, `[]`).Code)
}

func TestHandler_InvalidTransition(t *testing.T) {
	svc := &fakeService{err: &bookings.TransitionError{
		From:    domain.StatusConfirmed,
		Event:   domain.EventModify,
		Role:    domain.RoleManager,
		Allowed: []domain.Event{domain.EventCancel, domain.EventClose},
	}}

	rec := do(svc, `{"comment":"x"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"cancel", "close"}, resp.AllowedActions)
}
