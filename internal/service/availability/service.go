package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/slotgrid"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Query запрос доступности слотов на дату
type Query struct {
	SalonID  int64
	Date     time.Time
	ClientID *int64
	Role     domain.Role
}

// SlotCheck проверка интервала [Start, End) перед созданием или переносом бронирования
type SlotCheck struct {
	SalonID          int64
	Date             time.Time
	Start            types.TimeString
	End              types.TimeString
	ClientID         *int64
	Role             domain.Role
	ExcludeBookingID int64
}

// Service сервис расчёта доступности слотов
type Service struct {
	salons   SalonProvider
	capacity CapacityProvider
	bookings BookingReader
	locker   Locker
	metrics  Metrics
	logger   Logger
}

// NewService создает новый экземпляр сервиса доступности. metrics может быть nil.
func NewService(
	salons SalonProvider,
	capacity CapacityProvider,
	bookings BookingReader,
	locker Locker,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		salons:   salons,
		capacity: capacity,
		bookings: bookings,
		locker:   locker,
		metrics:  metrics,
		logger:   logger,
	}
}

// Availability возвращает статус каждого слота дня.
// Выходной день даёт пустой список без ошибки.
func (s *Service) Availability(ctx context.Context, q Query) ([]domain.SlotAvailability, error) {
	if q.SalonID <= 0 || q.Date.IsZero() {
		return nil, fmt.Errorf("%w: salonID and date are required", ErrInvalidInput)
	}

	unlock := s.locker.RLock(q.SalonID)
	defer unlock()

	day, err := s.loadDay(ctx, q.SalonID, q.Date)
	if err != nil {
		s.observe("error")
		return nil, err
	}

	slots := Calculate(Input{
		Grid:     day.grid,
		Capacity: day.capacity,
		Bookings: day.bookings,
		ClientID: q.ClientID,
		Role:     q.Role,
	})

	s.observe("ok")
	return slots, nil
}

// CheckSlot проверяет интервал под блокировкой чтения салона
func (s *Service) CheckSlot(ctx context.Context, check SlotCheck) error {
	unlock := s.locker.RLock(check.SalonID)
	defer unlock()

	return s.CheckSlotLocked(ctx, check)
}

// CheckSlotLocked проверяет интервал без взятия блокировки.
// Вызывается из операций, уже держащих блокировку записи салона.
func (s *Service) CheckSlotLocked(ctx context.Context, check SlotCheck) error {
	if check.Start.IsZero() || check.End.IsZero() || !check.Start.IsBefore(check.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	day, err := s.loadDay(ctx, check.SalonID, check.Date)
	if err != nil {
		return err
	}

	if !day.schedule.IsOpen {
		return fmt.Errorf("%w: salon is closed on %s", ErrSlotUnavailable, check.Date.Format(domain.DateFormat))
	}
	if !slotgrid.Contains(day.grid, check.Start) {
		return fmt.Errorf("%w: %s is not a slot start", ErrSlotUnavailable, check.Start)
	}
	if check.End.IsAfter(day.schedule.CloseTime) {
		return fmt.Errorf("%w: ends at %s after closing %s", ErrSlotUnavailable, check.End, day.schedule.CloseTime)
	}

	slots := Calculate(Input{
		Grid:             day.grid,
		Capacity:         day.capacity,
		Bookings:         day.bookings,
		ClientID:         check.ClientID,
		Role:             check.Role,
		ExcludeBookingID: check.ExcludeBookingID,
	})

	for _, slot := range slots {
		if slot.Time.IsBefore(check.Start) || !slot.Time.IsBefore(check.End) {
			continue
		}
		switch slot.Status {
		case domain.SlotUnavailable:
			return fmt.Errorf("%w: %s", ErrSlotUnavailable, slot.Time)
		case domain.SlotWaitlist:
			return fmt.Errorf("%w: %s occupied %d/%d", ErrSlotFull, slot.Time, slot.Occupancy, slot.Max)
		}
	}

	return nil
}

type dayState struct {
	schedule domain.DaySchedule
	grid     []types.TimeString
	capacity *domain.DayCapacity
	bookings []*domain.Booking
}

func (s *Service) loadDay(ctx context.Context, salonID int64, date time.Time) (*dayState, error) {
	date = domain.DateOf(date)

	salon, err := s.salons.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonservice.ErrSalonNotFound) {
			s.logger.Warn("Availability: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Availability: failed to get salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
	}

	schedule := scheduleForDate(salon, date)
	grid, err := slotgrid.ForDay(schedule)
	if err != nil {
		s.logger.Error("Availability: invalid slot grid for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
	}

	state := &dayState{schedule: schedule, grid: grid}
	if len(grid) == 0 {
		return state, nil
	}

	state.capacity, err = s.capacity.Get(ctx, salonID, date)
	if err != nil {
		s.logger.Error("Availability: failed to get day capacity salon=%d, date=%s: %v",
			salonID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: day capacity: %v", ErrStorage, err)
	}

	state.bookings, err = s.bookings.List(ctx, domain.BookingsFilter{
		SalonID:   salonID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		s.logger.Error("Availability: failed to list bookings salon=%d, date=%s: %v",
			salonID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: bookings: %v", ErrStorage, err)
	}

	return state, nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.ObserveAvailability(result)
	}
}
