package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CompleteExpired автоматически завершает начатые бронирования, время которых истекло.
// Каждое бронирование перечитывается под блокировкой салона, поэтому повторный
// запуск и ручное завершение не создают второй записи в истории.
func (s *Service) CompleteExpired(ctx context.Context, now time.Time) (int, error) {
	local := now.In(s.location)
	today, nowTime := domain.DateOf(local), types.NewTimeString(local)

	candidates, err := s.store.ListByStatus(ctx, domain.StatusStarted, today)
	if err != nil {
		s.logger.Error("CompleteExpired: repository error: %v", err)
		err = fmt.Errorf("%w: CompleteExpired - repository error: %v", ErrStorage, err)
		s.observeSweep(0, err)
		return 0, err
	}

	var (
		completed int
		firstErr  error
	)
	for _, candidate := range candidates {
		if !isExpired(candidate, today, nowTime) {
			continue
		}

		ok, err := s.completeExpired(ctx, candidate.SalonID, candidate.ID, today, nowTime, now)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			completed++
		}
	}

	if completed > 0 {
		s.logger.Info("CompleteExpired: auto-completed %d bookings", completed)
	}
	s.observeSweep(completed, firstErr)
	return completed, firstErr
}

func (s *Service) completeExpired(ctx context.Context, salonID, id int64, today time.Time, nowTime types.TimeString, now time.Time) (bool, error) {
	unlock := s.locks.Lock(salonID)
	defer unlock()

	booking, err := s.load(ctx, "CompleteExpired", id)
	if err != nil {
		return false, err
	}

	// Уже завершено вручную или предыдущим запуском
	if booking.Status != domain.StatusStarted || !isExpired(booking, today, nowTime) {
		return false, nil
	}

	to, ok := booking.Transition(domain.EventComplete, domain.SystemActor)
	if !ok {
		return false, nil
	}

	booking.Status = to
	booking.Append(domain.NewHistoryEntry(now, domain.ActionAutoComplete, domain.SystemActor, nil))

	if err := s.save(ctx, "CompleteExpired", booking); err != nil {
		s.observe(domain.ActionAutoComplete, "error")
		return false, err
	}

	s.observe(domain.ActionAutoComplete, "ok")
	s.notify(ctx, domain.NotificationBookingAutoComplete, booking, domain.SystemActor, now)
	return true, nil
}

func (s *Service) observeSweep(completed int, err error) {
	if s.metrics != nil {
		s.metrics.ObserveSweep(completed, err)
	}
}

// isExpired прошлая дата или сегодняшнее бронирование с end <= now
func isExpired(booking *domain.Booking, today time.Time, now types.TimeString) bool {
	if booking.Date.Before(today) {
		return true
	}
	return booking.Date.Equal(today) && !now.IsBefore(booking.EndTime)
}
