package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	capacityRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/capacity"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service сервис администрирования вместимости по датам
type Service struct {
	repo         CapacityRepository
	locker       Locker
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo CapacityRepository, locker Locker, logger Logger) *Service {
	return &Service{
		repo:         repo,
		locker:       locker,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает настройки дня. Если запись не создавалась - значения по умолчанию.
func (s *Service) Get(ctx context.Context, salonID int64, date time.Time) (*domain.DayCapacity, error) {
	capacity, err := s.repo.Get(ctx, salonID, date)
	if err != nil {
		if errors.Is(err, capacityRepo.ErrCapacityNotFound) {
			return domain.DefaultDayCapacity(salonID, date), nil
		}
		s.logger.Error("Get: repository error for salon=%d, date=%s: %v", salonID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrStorage, err)
	}
	return capacity, nil
}

// Update применяет административные изменения дня.
// Доступно только менеджерам и администраторам, запись создаётся при первом изменении.
func (s *Service) Update(ctx context.Context, req *UpdateRequest) (*domain.DayCapacity, error) {
	s.logger.Info("Update: salon=%d, date=%s by user=%d role=%s",
		req.SalonID, req.Date.Format(domain.DateFormat), req.Actor.UserID, req.Actor.Role)

	if !req.Actor.IsStaff() {
		s.logger.Warn("Update: access denied for user=%d role=%s", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	closeSlots, openSlots, err := validateUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	unlock := s.locker.Lock(req.SalonID)
	defer unlock()

	capacity, err := s.Get(ctx, req.SalonID, req.Date)
	if err != nil {
		return nil, err
	}

	if req.MaxSlots != nil {
		capacity.MaxSlots = *req.MaxSlots
	}
	if req.DayClosed != nil {
		capacity.DayClosed = *req.DayClosed
	}
	if req.AllowOverbooking != nil {
		capacity.AllowOverbooking = *req.AllowOverbooking
	}
	for _, slot := range closeSlots {
		capacity.CloseSlot(slot)
	}
	for _, slot := range openSlots {
		capacity.OpenSlot(slot)
	}

	userID := req.Actor.UserID
	capacity.UpdatedAt = s.timeProvider.Now()
	capacity.UpdatedBy = &userID

	if err := s.repo.Upsert(ctx, capacity); err != nil {
		s.logger.Error("Update: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrStorage, err)
	}

	s.logger.Info("Update: salon=%d, date=%s max=%d closed=%d dayClosed=%t overbooking=%t",
		capacity.SalonID, capacity.Date.Format(domain.DateFormat), capacity.MaxSlots,
		len(capacity.ClosedSlots), capacity.DayClosed, capacity.AllowOverbooking)
	return capacity, nil
}

func validateUpdate(req *UpdateRequest) (closeSlots, openSlots []types.TimeString, err error) {
	if req.SalonID <= 0 {
		return nil, nil, fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.MaxSlots != nil && (*req.MaxSlots < domain.MinMaxSlots || *req.MaxSlots > domain.MaxMaxSlots) {
		return nil, nil, fmt.Errorf("%w: maxSlots must be in %d..%d", ErrInvalidInput, domain.MinMaxSlots, domain.MaxMaxSlots)
	}

	closeSlots, err = parseSlots(req.CloseSlots)
	if err != nil {
		return nil, nil, err
	}
	openSlots, err = parseSlots(req.OpenSlots)
	if err != nil {
		return nil, nil, err
	}

	return closeSlots, openSlots, nil
}

func parseSlots(raw []string) ([]types.TimeString, error) {
	slots := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		slot, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%w: slot %q: %v", ErrInvalidInput, s, err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
