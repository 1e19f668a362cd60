package bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// ProposeReschedule предложение персонала перенести подтверждённое бронирование.
// Новый интервал проверяется калькулятором доступности до изменения статуса.
func (s *Service) ProposeReschedule(ctx context.Context, id int64, req *models.ProposeRescheduleRequest, actor domain.Actor) (*models.BookingResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if today, _ := s.today(); domain.DateOf(req.Date).Before(today) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	propose := func(ctx context.Context, booking *domain.Booking, now time.Time) error {
		date, start, end, err := rescheduleTarget(booking, &req.Date, &req.StartTime, req.EndTime)
		if err != nil {
			return err
		}

		// Проверка от имени персонала: лист ожидания не блокирует перенос
		err = s.checkSlot(ctx, "ProposeReschedule", availability.SlotCheck{
			SalonID:          booking.SalonID,
			Date:             date,
			Start:            start,
			End:              end,
			ClientID:         booking.ClientID,
			Role:             actor.Role,
			ExcludeBookingID: booking.ID,
		})
		if err != nil {
			return err
		}

		booking.Proposed = &domain.ProposedReschedule{
			Date:       date,
			StartTime:  start,
			EndTime:    end,
			ProposedBy: actor.UserID,
			ProposedAt: now,
		}
		return nil
	}

	return s.respond(s.apply(ctx, "ProposeReschedule", id, domain.EventProposeReschedule, string(domain.EventProposeReschedule),
		actor, req.Comment, propose, domain.NotificationRescheduleProposed))
}

// ApproveReschedule клиент принимает перенос: предложенные дата и время становятся основными.
// Предложенный интервал проверяется повторно: до ответа клиента он ничем не занят.
func (s *Service) ApproveReschedule(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	approve := func(ctx context.Context, booking *domain.Booking, _ time.Time) error {
		if booking.Proposed == nil {
			return fmt.Errorf("%w: booking id=%d has no proposal", ErrInvalidInput, booking.ID)
		}

		// Роль персонала, как при предложении: лист ожидания не блокирует согласованный перенос
		err := s.checkSlot(ctx, "ApproveReschedule", availability.SlotCheck{
			SalonID:          booking.SalonID,
			Date:             booking.Proposed.Date,
			Start:            booking.Proposed.StartTime,
			End:              booking.Proposed.EndTime,
			ClientID:         booking.ClientID,
			Role:             domain.RoleManager,
			ExcludeBookingID: booking.ID,
		})
		if err != nil {
			return err
		}

		booking.Date = booking.Proposed.Date
		booking.StartTime = booking.Proposed.StartTime
		booking.EndTime = booking.Proposed.EndTime
		booking.Proposed = nil
		return nil
	}

	return s.respond(s.apply(ctx, "ApproveReschedule", id, domain.EventApproveReschedule, domain.ActionRescheduled,
		actor, comment, approve, domain.NotificationRescheduleApproved))
}

// RejectReschedule клиент отклоняет перенос. Бронирование отменяется,
// прежний интервал не восстанавливается.
func (s *Service) RejectReschedule(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	reject := func(_ context.Context, booking *domain.Booking, _ time.Time) error {
		booking.Proposed = nil
		return nil
	}

	return s.respond(s.apply(ctx, "RejectReschedule", id, domain.EventRejectReschedule, string(domain.EventRejectReschedule),
		actor, comment, reject, domain.NotificationRescheduleRejected))
}
