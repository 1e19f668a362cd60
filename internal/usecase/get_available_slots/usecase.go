package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	availability AvailabilityService
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. location задаёт "сегодня" салона.
func NewUseCase(availability AvailabilityService, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		availability: availability,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d role=%s, salon=%d, date=%s",
		req.Actor.UserID, req.Actor.Role, req.SalonID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	clientID, err := resolveClient(req.Actor, req.ClientID)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: client=%d requested availability of client=%d", req.Actor.UserID, *req.ClientID)
		return nil, err
	}

	// 2. Прошедшие даты не бронируются
	now := uc.timeProvider.Now().In(uc.location)
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Расчёт доступности
	date := domain.DateOf(req.Date)
	slots, err := uc.availability.Availability(ctx, availability.Query{
		SalonID:  req.SalonID,
		Date:     date,
		ClientID: clientID,
		Role:     req.Actor.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrSalonNotFound):
			return nil, ErrSalonNotFound
		case errors.Is(err, availability.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		case errors.Is(err, availability.ErrSettingsUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
		default:
			uc.logger.Error("GetAvailableSlots: failed to calculate availability: %v", err)
			return nil, fmt.Errorf("%w: failed to calculate availability: %v", ErrInternal, err)
		}
	}

	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			StartTime:   slot.Time,
			Status:      slot.Status,
			Occupancy:   slot.Occupancy,
			MaxSlots:    slot.Max,
			IsSensitive: slot.IsSensitive,
		}
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%d, date=%s",
		len(result), req.SalonID, date.Format(domain.DateFormat))

	return &Response{
		Date:    date,
		SalonID: req.SalonID,
		Slots:   result,
	}, nil
}
