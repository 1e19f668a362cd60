package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		Date:    req.Date,
		SalonID: req.SalonID,
		Slots: []getAvailableSlots.Slot{
			{StartTime: types.MustTimeString("09:00"), Status: domain.SlotAvailable, MaxSlots: 5},
			{StartTime: types.MustTimeString("09:30"), Status: domain.SlotWaitlist, Occupancy: 5, MaxSlots: 5, IsSensitive: true},
		},
	}, nil
}

func do(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/salons/1/availability"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"salonId": "1"})
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: 1, Role: domain.RoleManager}))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	uc := &fakeUseCase{}
	rec := do(uc, "?date=2025-03-10&clientId=100")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-10", resp.Date)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:30", resp.Slots[1].Time)
	assert.Equal(t, "waitlist", resp.Slots[1].Status)
	assert.True(t, resp.Slots[1].IsSensitive)

	require.NotNil(t, uc.got.ClientID)
	assert.Equal(t, int64(100), *uc.got.ClientID)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, do(&fakeUseCase{}, "").Code)
	assert.Equal(t, http.StatusBadRequest, do(&fakeUseCase{}, "?date=2025-03-10&clientId=x").Code)
	assert.Equal(t, http.StatusNotFound, do(&fakeUseCase{err: getAvailableSlots.ErrSalonNotFound}, "?date=2025-03-10").Code)
	assert.Equal(t, http.StatusBadRequest, do(&fakeUseCase{err: getAvailableSlots.ErrInvalidDate}, "?date=2025-03-10").Code)
	assert.Equal(t, http.StatusForbidden, do(&fakeUseCase{err: getAvailableSlots.ErrAccessDenied}, "?date=2025-03-10").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(&fakeUseCase{err: getAvailableSlots.ErrSettingsUnavailable}, "?date=2025-03-10").Code)
	assert.Equal(t, http.StatusInternalServerError, do(&fakeUseCase{err: getAvailableSlots.ErrInternal}, "?date=2025-03-10").Code)
}
