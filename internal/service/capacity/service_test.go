package capacity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-SalonBookingService/pkg/logger"
	"github.com/m04kA/SMC-SalonBookingService/pkg/ptr"
)

type noopLocker struct {
	locks int
}

func (l *noopLocker) Lock(int64) func() {
	l.locks++
	return func() {}
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type failingRepo struct{}

func (failingRepo) Get(context.Context, int64, time.Time) (*domain.DayCapacity, error) {
	return nil, errors.New("db down")
}

func (failingRepo) Upsert(context.Context, *domain.DayCapacity) error {
	return errors.New("db down")
}

var (
	day     = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now     = time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)
	manager = domain.Actor{UserID: 7, Role: domain.RoleManager}
)

func newTestService() (*Service, *noopLocker) {
	locker := &noopLocker{}
	svc := NewService(capacityRepo.NewMemoryRepository(), locker, logger.Nop())
	svc.timeProvider = fixedTime{t: now}
	return svc, locker
}

func TestService_Get_Defaults(t *testing.T) {
	svc, _ := newTestService()

	c, err := svc.Get(context.Background(), 1, day)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxSlots, c.MaxSlots)
	assert.False(t, c.DayClosed)
	assert.False(t, c.AllowOverbooking)
	assert.Empty(t, c.ClosedSlots)
	assert.Nil(t, c.UpdatedBy)
}

func TestService_Update(t *testing.T) {
	svc, locker := newTestService()
	ctx := context.Background()

	c, err := svc.Update(ctx, &UpdateRequest{
		Actor:      manager,
		SalonID:    1,
		Date:       day,
		MaxSlots:   ptr.Ptr(2),
		CloseSlots: []string{"10:00", "09:30"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.MaxSlots)
	require.Len(t, c.ClosedSlots, 2)
	assert.Equal(t, "09:30", c.ClosedSlots[0].String())
	assert.Equal(t, now, c.UpdatedAt)
	require.NotNil(t, c.UpdatedBy)
	assert.Equal(t, int64(7), *c.UpdatedBy)
	assert.Equal(t, 1, locker.locks)

	c, err = svc.Update(ctx, &UpdateRequest{
		Actor:            domain.Actor{UserID: 1, Role: domain.RoleAdmin},
		SalonID:          1,
		Date:             day,
		AllowOverbooking: ptr.Ptr(true),
		OpenSlots:        []string{"09:30"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.MaxSlots, "unspecified fields are kept")
	assert.True(t, c.AllowOverbooking)
	require.Len(t, c.ClosedSlots, 1)
	assert.Equal(t, "10:00", c.ClosedSlots[0].String())

	stored, err := svc.Get(ctx, 1, day)
	require.NoError(t, err)
	assert.Equal(t, c, stored)
}

func TestService_Update_AccessDenied(t *testing.T) {
	svc, _ := newTestService()

	for _, role := range []domain.Role{domain.RoleClient, domain.RoleWorker, domain.RoleSystem} {
		_, err := svc.Update(context.Background(), &UpdateRequest{
			Actor:     domain.Actor{UserID: 1, Role: role},
			SalonID:   1,
			Date:      day,
			DayClosed: ptr.Ptr(true),
		})
		assert.ErrorIs(t, err, ErrAccessDenied, role)
	}
}

func TestService_Update_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name string
		req  UpdateRequest
	}{
		{"max slots zero", UpdateRequest{Actor: manager, SalonID: 1, Date: day, MaxSlots: ptr.Ptr(0)}},
		{"max slots above limit", UpdateRequest{Actor: manager, SalonID: 1, Date: day, MaxSlots: ptr.Ptr(101)}},
		{"bad close slot", UpdateRequest{Actor: manager, SalonID: 1, Date: day, CloseSlots: []string{"25:00"}}},
		{"bad open slot", UpdateRequest{Actor: manager, SalonID: 1, Date: day, OpenSlots: []string{"ten"}}},
		{"missing salon", UpdateRequest{Actor: manager, Date: day}},
		{"missing date", UpdateRequest{Actor: manager, SalonID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	c, err := svc.Update(context.Background(), &UpdateRequest{Actor: manager, SalonID: 1, Date: day, MaxSlots: ptr.Ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, 100, c.MaxSlots)
}

func TestService_StorageErrors(t *testing.T) {
	svc := NewService(failingRepo{}, &noopLocker{}, logger.Nop())

	_, err := svc.Get(context.Background(), 1, day)
	assert.ErrorIs(t, err, ErrStorage)

	_, err = svc.Update(context.Background(), &UpdateRequest{Actor: manager, SalonID: 1, Date: day, DayClosed: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrStorage)
}
