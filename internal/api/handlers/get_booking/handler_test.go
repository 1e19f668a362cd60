package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
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
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "confirmed", AllowedActions: []string{"cancel"}}, nil
}

func do(svc BookingService, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 100, Role: domain.RoleClient}))
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	rec := do(&fakeService{}, "5")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, []string{"cancel"}, resp.AllowedActions)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, do(&fakeService{}, "abc").Code)
	assert.Equal(t, http.StatusNotFound, do(&fakeService{err: bookings.ErrBookingNotFound}, "5").Code)
	assert.Equal(t, http.StatusForbidden, do(&fakeService{err: bookings.ErrAccessDenied}, "5").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(&fakeService{err: bookings.ErrStorage}, "5").Code)
	assert.Equal(t, http.StatusInternalServerError, do(&fakeService{err: errors.New("boom")}, "5").Code)
}
