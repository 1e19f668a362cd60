package propose_reschedule

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeService struct {
	got *models.ProposeRescheduleRequest
	err error
}

func (f *fakeService) ProposeReschedule(_ context.Context, id int64, req *models.ProposeRescheduleRequest, _ domain.Actor) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: string(domain.StatusPendingApproval)}, nil
}

func do(svc *fakeService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/4/reschedule", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "4"})
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}
	rec := do(svc, `{"date":"2025-03-11","startTime":"14:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "2025-03-11", svc.got.Date.Format(domain.DateFormat))
	assert.Equal(t, "14:00", svc.got.StartTime.String())
	assert.Nil(t, svc.got.EndTime, "duration is kept by default")
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, do(&fakeService{}, `{"date":"2025-03-11"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(&fakeService{}, `{"date":"2025-03-11","startTime":"14:00","endTime":"x"}`).Code)
	assert.Equal(t, http.StatusConflict, do(&fakeService{err: bookings.ErrSlotUnavailable}, `{"date":"2025-03-11","startTime":"14:00"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(&fakeService{err: bookings.ErrBookingNotFound}, `{"date":"2025-03-11","startTime":"14:00"}`).Code)
}
