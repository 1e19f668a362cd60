package availability

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
)

type fakeSalons struct {
	salon *salonservice.Salon
	err   error
}

func (f *fakeSalons) GetSalon(_ context.Context, salonID int64) (*salonservice.Salon, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.salon == nil || f.salon.ID != salonID {
		return nil, salonservice.ErrSalonNotFound
	}
	return f.salon, nil
}

type fakeCapacity struct {
	capacity *domain.DayCapacity
	err      error
}

func (f *fakeCapacity) Get(_ context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.capacity == nil {
		return domain.DefaultDayCapacity(salonID, date), nil
	}
	return f.capacity, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.Matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

type countingLocker struct {
	mu     sync.Mutex
	rlocks int
}

func (l *countingLocker) RLock(int64) func() {
	l.mu.Lock()
	l.rlocks++
	l.mu.Unlock()
	return func() {}
}

type fakeMetrics struct {
	results []string
}

func (m *fakeMetrics) ObserveAvailability(result string) {
	m.results = append(m.results, result)
}

func strPtr(s string) *string { return &s }

func testSalon() *salonservice.Salon {
	return &salonservice.Salon{
		ID:                  1,
		Name:                "Central",
		SlotDurationMinutes: 30,
		WorkingHours: salonservice.WorkingHours{
			Monday: salonservice.DaySchedule{IsOpen: true, OpenTime: strPtr("09:00"), CloseTime: strPtr("12:00")},
			Sunday: salonservice.DaySchedule{IsOpen: false},
		},
	}
}

type fixture struct {
	svc      *Service
	salons   *fakeSalons
	capacity *fakeCapacity
	bookings *fakeBookings
	locker   *countingLocker
	metrics  *fakeMetrics
}

func newFixture() *fixture {
	f := &fixture{
		salons:   &fakeSalons{salon: testSalon()},
		capacity: &fakeCapacity{},
		bookings: &fakeBookings{},
		locker:   &countingLocker{},
		metrics:  &fakeMetrics{},
	}
	f.svc = NewService(f.salons, f.capacity, f.bookings, f.locker, f.metrics, logger.Nop())
	return f
}

func TestService_Availability(t *testing.T) {
	f := newFixture()
	f.capacity.capacity = &domain.DayCapacity{SalonID: 1, Date: testDate, MaxSlots: 2}
	f.bookings.bookings = []*domain.Booking{
		booking(1, 101, "10:00", "10:30", domain.StatusConfirmed),
		booking(2, 102, "10:00", "10:30", domain.StatusConfirmed),
	}

	slots, err := f.svc.Availability(context.Background(), Query{
		SalonID:  1,
		Date:     testDate,
		ClientID: int64Ptr(500),
		Role:     domain.RoleClient,
	})
	require.NoError(t, err)

	require.Len(t, slots, 6) // 09:00..11:30
	assert.Equal(t, "09:00", slots[0].Time.String())
	assert.Equal(t, "11:30", slots[5].Time.String())

	s := slotAt(t, slots, "10:00")
	assert.Equal(t, domain.SlotWaitlist, s.Status)
	assert.Equal(t, 2, s.Occupancy)

	manager, err := f.svc.Availability(context.Background(), Query{SalonID: 1, Date: testDate, Role: domain.RoleManager})
	require.NoError(t, err)
	m := slotAt(t, manager, "10:00")
	assert.Equal(t, domain.SlotAvailable, m.Status)
	assert.True(t, m.IsSensitive)
	assert.Equal(t, 2, m.Occupancy)

	assert.Equal(t, 2, f.locker.rlocks)
	assert.Equal(t, []string{"ok", "ok"}, f.metrics.results)
}

func TestService_Availability_ClosedWeekday(t *testing.T) {
	f := newFixture()
	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	slots, err := f.svc.Availability(context.Background(), Query{SalonID: 1, Date: sunday, Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Empty(t, slots)

	tuesday := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	slots, err = f.svc.Availability(context.Background(), Query{SalonID: 1, Date: tuesday, Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Empty(t, slots, "weekday missing from settings is closed")
}

func TestService_Availability_Errors(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Availability(context.Background(), Query{SalonID: 2, Date: testDate})
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = f.svc.Availability(context.Background(), Query{SalonID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.salons.err = errors.New("timeout")
	_, err = f.svc.Availability(context.Background(), Query{SalonID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrSettingsUnavailable)

	f = newFixture()
	f.bookings.err = errors.New("db down")
	_, err = f.svc.Availability(context.Background(), Query{SalonID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, []string{"error"}, f.metrics.results)

	f = newFixture()
	f.capacity.err = errors.New("db down")
	_, err = f.svc.Availability(context.Background(), Query{SalonID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestService_CheckSlot(t *testing.T) {
	f := newFixture()
	capacity := &domain.DayCapacity{SalonID: 1, Date: testDate, MaxSlots: 1}
	capacity.CloseSlot(ts("11:00"))
	f.capacity.capacity = capacity
	f.bookings.bookings = []*domain.Booking{
		booking(1, 101, "10:00", "10:30", domain.StatusConfirmed),
	}

	check := func(start, end string, clientID *int64, role domain.Role, exclude int64) error {
		return f.svc.CheckSlot(context.Background(), SlotCheck{
			SalonID:          1,
			Date:             testDate,
			Start:            ts(start),
			End:              ts(end),
			ClientID:         clientID,
			Role:             role,
			ExcludeBookingID: exclude,
		})
	}

	assert.NoError(t, check("09:00", "09:30", nil, domain.RoleClient, 0))
	assert.NoError(t, check("09:00", "10:00", nil, domain.RoleClient, 0), "multi-slot interval")
	assert.ErrorIs(t, check("09:30", "10:30", nil, domain.RoleClient, 0), ErrSlotFull, "second slot is full")
	assert.NoError(t, check("09:30", "10:30", nil, domain.RoleManager, 0), "staff may overbook")
	assert.ErrorIs(t, check("10:00", "10:30", int64Ptr(101), domain.RoleManager, 0), ErrSlotUnavailable, "same client")
	assert.NoError(t, check("10:00", "10:30", int64Ptr(101), domain.RoleClient, 1), "booking itself is excluded")
	assert.ErrorIs(t, check("11:00", "11:30", nil, domain.RoleAdmin, 0), ErrSlotUnavailable, "closed slot")
	assert.ErrorIs(t, check("10:45", "11:00", nil, domain.RoleClient, 0), ErrSlotUnavailable, "not on grid")
	assert.ErrorIs(t, check("11:30", "12:30", nil, domain.RoleClient, 0), ErrSlotUnavailable, "ends after closing")
	assert.NoError(t, check("11:30", "12:00", nil, domain.RoleClient, 0), "ends exactly at closing")
	assert.ErrorIs(t, check("10:30", "10:00", nil, domain.RoleClient, 0), ErrInvalidInput)

	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	err := f.svc.CheckSlot(context.Background(), SlotCheck{
		SalonID: 1, Date: sunday, Start: ts("10:00"), End: ts("10:30"), Role: domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestService_CheckSlot_DayClosed(t *testing.T) {
	f := newFixture()
	f.capacity.capacity = &domain.DayCapacity{SalonID: 1, Date: testDate, MaxSlots: 5, DayClosed: true}

	err := f.svc.CheckSlot(context.Background(), SlotCheck{
		SalonID: 1, Date: testDate, Start: ts("09:00"), End: ts("09:30"), Role: domain.RoleAdmin,
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}
