package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

func stringPtr(v string) *string { return &v }

func TestBooking_Occupies(t *testing.T) {
	b := &Booking{
		StartTime: types.MustTimeString("10:00"),
		EndTime:   types.MustTimeString("10:30"),
	}

	assert.False(t, b.Occupies(types.MustTimeString("09:30")))
	assert.True(t, b.Occupies(types.MustTimeString("10:00")))
	assert.True(t, b.Occupies(types.MustTimeString("10:15")))
	assert.False(t, b.Occupies(types.MustTimeString("10:30")), "end is exclusive")
	assert.Equal(t, 30, b.DurationMinutes())
}

func TestBooking_Clone(t *testing.T) {
	b := &Booking{
		ID:        1,
		ClientID:  int64Ptr(7),
		WorkerIDs: []int64{1, 2},
		Services:  []BookedService{{ServiceID: 3, Price: 100}},
		Proposed:  &ProposedReschedule{StartTime: types.MustTimeString("12:00")},
	}
	b.Append(NewHistoryEntry(time.Now(), ActionCreated, Actor{UserID: 7, Role: RoleClient}, stringPtr("hi")))

	c := b.Clone()
	*c.ClientID = 8
	c.WorkerIDs[0] = 99
	c.Services[0].Price = 1
	c.Proposed.StartTime = types.MustTimeString("13:00")
	*c.History[0].Comment = "changed"
	c.Append(NewHistoryEntry(time.Now(), ActionModified, Actor{UserID: 1, Role: RoleManager}, nil))

	assert.Equal(t, int64(7), *b.ClientID)
	assert.Equal(t, int64(1), b.WorkerIDs[0])
	assert.Equal(t, 100.0, b.Services[0].Price)
	assert.Equal(t, "12:00", b.Proposed.StartTime.String())
	assert.Equal(t, "hi", *b.History[0].Comment)
	assert.Len(t, b.History, 1)
}

func TestBooking_TotalPriceAndServiceIDs(t *testing.T) {
	b := &Booking{Services: []BookedService{
		{ServiceID: 1, Price: 1500},
		{ServiceID: 4, Price: 500.5},
	}}

	assert.Equal(t, 2000.5, b.TotalPrice())
	assert.Equal(t, []int64{1, 4}, b.ServiceIDs())
}

func TestNewHistoryEntry(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	first := NewHistoryEntry(at, "confirm", Actor{UserID: 3, Role: RoleManager}, nil)
	second := NewHistoryEntry(at, "confirm", Actor{UserID: 3, Role: RoleManager}, nil)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, at, first.At)
	assert.Equal(t, int64(3), first.ActorID)
	assert.Equal(t, RoleManager, first.ActorRole)
}

func TestBookingsFilter_Matches(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)
	b := &Booking{SalonID: 1, Date: day, Status: StatusConfirmed}
	cancelled := &Booking{SalonID: 1, Date: day, Status: StatusCancelled}
	confirmed := StatusConfirmed

	assert.True(t, BookingsFilter{SalonID: 1}.Matches(b))
	assert.False(t, BookingsFilter{SalonID: 2}.Matches(b))
	assert.False(t, BookingsFilter{SalonID: 1, StartDate: &next}.Matches(b))
	assert.True(t, BookingsFilter{SalonID: 1, StartDate: &day, EndDate: &day}.Matches(b))
	assert.False(t, BookingsFilter{SalonID: 1}.Matches(cancelled))
	assert.True(t, BookingsFilter{SalonID: 1, IncludeInactive: true}.Matches(cancelled))
	assert.False(t, BookingsFilter{SalonID: 1, Status: &confirmed}.Matches(cancelled))
}

func TestDayCapacity_Slots(t *testing.T) {
	c := DefaultDayCapacity(1, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.Equal(t, DefaultMaxSlots, c.MaxSlots)

	c.CloseSlot(types.MustTimeString("12:00"))
	c.CloseSlot(types.MustTimeString("10:00"))
	c.CloseSlot(types.MustTimeString("12:00"))

	require.Len(t, c.ClosedSlots, 2)
	assert.Equal(t, "10:00", c.ClosedSlots[0].String())
	assert.True(t, c.IsSlotClosed(types.MustTimeString("12:00")))

	cp := c.Clone()
	c.OpenSlot(types.MustTimeString("12:00"))
	assert.False(t, c.IsSlotClosed(types.MustTimeString("12:00")))
	assert.True(t, cp.IsSlotClosed(types.MustTimeString("12:00")), "clone is independent")
}

func TestParseBookingStatus(t *testing.T) {
	s, ok := ParseBookingStatus("pending_approval")
	assert.True(t, ok)
	assert.Equal(t, StatusPendingApproval, s)

	_, ok = ParseBookingStatus("in_progress")
	assert.False(t, ok)
}
