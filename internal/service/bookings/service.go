package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/incomeservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/availability"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// Service менеджер жизненного цикла бронирований
type Service struct {
	store        BookingStore
	slots        SlotChecker
	txManager    TransactionManager
	locks        *SalonLocks
	income       IncomeSeeder   // nil - черновики дохода не создаются
	events       EventPublisher // nil - уведомления не отправляются
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	store BookingStore,
	slots SlotChecker,
	txManager TransactionManager,
	locks *SalonLocks,
	income IncomeSeeder,
	events EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		store:        store,
		slots:        slots,
		txManager:    txManager,
		locks:        locks,
		income:       income,
		events:       events,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Create создает бронирование в статусе pending.
// Клиент бронирует только на себя, персонал - на клиента или на имя без регистрации.
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Create: salon=%d, date=%s %s-%s by user=%d role=%s",
		req.SalonID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, actor.UserID, actor.Role)

	switch {
	case actor.Role == domain.RoleClient:
		if req.ClientID != nil && *req.ClientID != actor.UserID {
			s.logger.Warn("Create: client=%d tried to book for client=%d", actor.UserID, *req.ClientID)
			return nil, ErrAccessDenied
		}
		clientID := actor.UserID
		req.ClientID = &clientID
	case actor.IsStaff():
	default:
		s.logger.Warn("Create: access denied for user=%d role=%s", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	unlock := s.locks.Lock(req.SalonID)
	defer unlock()

	err := s.checkSlot(ctx, "Create", availability.SlotCheck{
		SalonID:  req.SalonID,
		Date:     req.Date,
		Start:    req.StartTime,
		End:      req.EndTime,
		ClientID: req.ClientID,
		Role:     actor.Role,
	})
	if err != nil {
		s.observe("create", "rejected")
		return nil, err
	}

	now := s.timeProvider.Now()
	booking := &domain.Booking{
		SalonID:    req.SalonID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		WorkerIDs:  append([]int64{}, req.WorkerIDs...),
		Date:       domain.DateOf(req.Date),
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Services:   append([]domain.BookedService(nil), req.Services...),
		Status:     domain.StatusPending,
		Comment:    req.Comment,
		CreatedAt:  now,
	}
	booking.Append(domain.NewHistoryEntry(now, domain.ActionCreated, actor, nil))

	var created *domain.Booking
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.Create(ctx, booking)
		return err
	})
	if err != nil {
		s.observe("create", "error")
		s.logger.Error("Create: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrStorage, err)
	}

	s.observe("create", "ok")
	s.notify(ctx, domain.NotificationBookingCreated, created, actor, now)

	s.logger.Info("Create: successfully created booking id=%d", created.ID)
	return models.FromDomainBooking(created, actor), nil
}

// Modify правка бронирования персоналом, пока оно не подтверждено.
// Выставляет AdminModified, после чего клиент может подтвердить бронирование сам.
func (s *Service) Modify(ctx context.Context, id int64, req *models.ModifyBookingRequest, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Modify: booking id=%d by user=%d role=%s", id, actor.UserID, actor.Role)

	if req.WorkerIDs == nil && req.Comment == nil && !req.HasReschedule() {
		return nil, fmt.Errorf("%w: nothing to modify", ErrInvalidInput)
	}
	if err := validateComment(req.Comment); err != nil {
		return nil, err
	}
	if req.WorkerIDs != nil {
		if err := validateWorkers(*req.WorkerIDs); err != nil {
			return nil, err
		}
	}

	booking, unlock, err := s.lockBooking(ctx, "Modify", id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !actor.IsStaff() || booking.Status != domain.StatusPending {
		s.observe(string(domain.EventModify), "rejected")
		return nil, s.transitionError("Modify", booking, domain.EventModify, actor)
	}

	if req.HasReschedule() {
		date, start, end, err := rescheduleTarget(booking, req.Date, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		err = s.checkSlot(ctx, "Modify", availability.SlotCheck{
			SalonID:          booking.SalonID,
			Date:             date,
			Start:            start,
			End:              end,
			ClientID:         booking.ClientID,
			Role:             actor.Role,
			ExcludeBookingID: booking.ID,
		})
		if err != nil {
			s.observe(string(domain.EventModify), "rejected")
			return nil, err
		}
		booking.Date = date
		booking.StartTime = start
		booking.EndTime = end
	}

	if req.WorkerIDs != nil {
		booking.WorkerIDs = append([]int64{}, (*req.WorkerIDs)...)
	}
	if req.Comment != nil {
		booking.Comment = req.Comment
	}
	booking.AdminModified = true

	now := s.timeProvider.Now()
	booking.Append(domain.NewHistoryEntry(now, domain.ActionModified, actor, req.Comment))

	if err := s.save(ctx, "Modify", booking); err != nil {
		s.observe(string(domain.EventModify), "error")
		return nil, err
	}

	s.observe(string(domain.EventModify), "ok")
	s.notify(ctx, domain.NotificationBookingModified, booking, actor, now)

	s.logger.Info("Modify: successfully modified booking id=%d", id)
	return models.FromDomainBooking(booking, actor), nil
}

// Transition применяет событие жизненного цикла из HTTP действия
func (s *Service) Transition(ctx context.Context, id int64, event domain.Event, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	switch event {
	case domain.EventConfirm:
		return s.Confirm(ctx, id, actor, comment)
	case domain.EventCancel:
		return s.Cancel(ctx, id, actor, comment)
	case domain.EventStart:
		return s.Start(ctx, id, actor, comment)
	case domain.EventComplete:
		return s.Complete(ctx, id, actor, comment)
	case domain.EventClose:
		return s.Close(ctx, id, actor, comment)
	case domain.EventApproveReschedule:
		return s.ApproveReschedule(ctx, id, actor, comment)
	case domain.EventRejectReschedule:
		return s.RejectReschedule(ctx, id, actor, comment)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, event)
	}
}

// Confirm подтверждает бронирование
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	return s.respond(s.apply(ctx, "Confirm", id, domain.EventConfirm, string(domain.EventConfirm), actor, comment, nil,
		domain.NotificationBookingStatus))
}

// Cancel отменяет бронирование до начала обслуживания
func (s *Service) Cancel(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	return s.respond(s.apply(ctx, "Cancel", id, domain.EventCancel, string(domain.EventCancel), actor, comment, nil,
		domain.NotificationBookingStatus))
}

// Start начинает обслуживание и создаёт черновик дохода.
// Недоступность сервиса доходов не мешает началу обслуживания.
func (s *Service) Start(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	return s.respond(s.apply(ctx, "Start", id, domain.EventStart, string(domain.EventStart), actor, comment, s.seedIncome,
		domain.NotificationBookingStatus))
}

// Complete завершает обслуживание вручную
func (s *Service) Complete(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	return s.respond(s.apply(ctx, "Complete", id, domain.EventComplete, string(domain.EventComplete), actor, comment, nil,
		domain.NotificationBookingStatus))
}

// Close административно закрывает любое незавершённое бронирование
func (s *Service) Close(ctx context.Context, id int64, actor domain.Actor, comment *string) (*models.BookingResponse, error) {
	return s.respond(s.apply(ctx, "Close", id, domain.EventClose, string(domain.EventClose), actor, comment, nil,
		domain.NotificationBookingStatus))
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d role=%s", id, actor.UserID, actor.Role)

	booking, err := s.load(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleClient && !booking.BelongsTo(actor.UserID) {
		s.logger.Warn("GetByID: access denied for client=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, actor), nil
}

// List получает бронирования салона с фильтрацией.
// Доступно персоналу и мастерам.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for salon=%d by user=%d role=%s", req.SalonID, actor.UserID, actor.Role)

	if !actor.IsStaff() && actor.Role != domain.RoleWorker {
		s.logger.Warn("List: access denied for user=%d role=%s", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}
	if req.SalonID <= 0 {
		return nil, fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: period end is before start", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		bookings, err = s.store.List(ctx, filter)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStorage, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings, actor), nil
}

// Вспомогательные методы

type mutation func(ctx context.Context, booking *domain.Booking, now time.Time) error

// apply проверяет и применяет переход под блокировкой салона.
// Статус и запись истории сохраняются одной транзакцией.
func (s *Service) apply(
	ctx context.Context,
	op string,
	id int64,
	event domain.Event,
	action string,
	actor domain.Actor,
	comment *string,
	mutate mutation,
	kind domain.NotificationType,
) (*domain.Booking, domain.Actor, error) {
	s.logger.Info("%s: booking id=%d by user=%d role=%s", op, id, actor.UserID, actor.Role)

	if err := validateComment(comment); err != nil {
		return nil, actor, err
	}

	booking, unlock, err := s.lockBooking(ctx, op, id)
	if err != nil {
		return nil, actor, err
	}
	defer unlock()

	to, ok := booking.Transition(event, actor)
	if !ok {
		s.observe(string(event), "rejected")
		return nil, actor, s.transitionError(op, booking, event, actor)
	}

	now := s.timeProvider.Now()
	if mutate != nil {
		if err := mutate(ctx, booking, now); err != nil {
			s.observe(string(event), "rejected")
			return nil, actor, err
		}
	}

	from := booking.Status
	booking.Status = to
	booking.Append(domain.NewHistoryEntry(now, action, actor, comment))

	if err := s.save(ctx, op, booking); err != nil {
		s.observe(string(event), "error")
		return nil, actor, err
	}

	s.observe(string(event), "ok")
	s.notify(ctx, kind, booking, actor, now)

	s.logger.Info("%s: booking id=%d %s -> %s", op, id, from, to)
	return booking, actor, nil
}

func (s *Service) respond(booking *domain.Booking, actor domain.Actor, err error) (*models.BookingResponse, error) {
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking, actor), nil
}

// lockBooking захватывает блокировку салона и перечитывает бронирование под ней
func (s *Service) lockBooking(ctx context.Context, op string, id int64) (*domain.Booking, func(), error) {
	current, err := s.load(ctx, op, id)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(current.SalonID)

	booking, err := s.load(ctx, op, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return booking, unlock, nil
}

func (s *Service) load(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrStorage, op, err)
	}
	return booking, nil
}

func (s *Service) save(ctx context.Context, op string, booking *domain.Booking) error {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.store.Save(ctx, booking)
	})
	if err != nil {
		s.logger.Error("%s: repository error for booking id=%d: %v", op, booking.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrStorage, op, err)
	}
	return nil
}

func (s *Service) transitionError(op string, booking *domain.Booking, event domain.Event, actor domain.Actor) error {
	allowed := booking.AllowedEvents(actor)
	s.logger.Warn("%s: %s not allowed for booking id=%d in status=%s, role=%s, allowed=%v",
		op, event, booking.ID, booking.Status, actor.Role, allowed)
	return &TransitionError{
		From:    booking.Status,
		Event:   event,
		Role:    actor.Role,
		Allowed: allowed,
	}
}

// checkSlot переводит ошибки калькулятора доступности в ошибки сервиса
func (s *Service) checkSlot(ctx context.Context, op string, check availability.SlotCheck) error {
	err := s.slots.CheckSlotLocked(ctx, check)
	if err == nil {
		return nil
	}

	s.logger.Warn("%s: slot %s %s-%s rejected for salon=%d: %v",
		op, check.Date.Format(domain.DateFormat), check.Start, check.End, check.SalonID, err)

	switch {
	case errors.Is(err, availability.ErrSlotUnavailable):
		return ErrSlotUnavailable
	case errors.Is(err, availability.ErrSlotFull):
		return ErrSlotFull
	case errors.Is(err, availability.ErrSalonNotFound):
		return ErrSalonNotFound
	case errors.Is(err, availability.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, availability.ErrSettingsUnavailable):
		return fmt.Errorf("%w: %s - salon settings: %v", ErrSettingsUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s - availability: %v", ErrStorage, op, err)
	}
}

// seedIncome создаёт черновик дохода при начале обслуживания
func (s *Service) seedIncome(ctx context.Context, booking *domain.Booking, _ time.Time) error {
	if s.income == nil || booking.IncomeID != nil {
		return nil
	}

	req := &incomeservice.DraftRequest{
		BookingID:  booking.ID,
		SalonID:    booking.SalonID,
		ClientID:   booking.ClientID,
		WorkerIDs:  append([]int64{}, booking.WorkerIDs...),
		Services:   make([]incomeservice.DraftService, len(booking.Services)),
		TotalPrice: booking.TotalPrice(),
	}
	for i, svc := range booking.Services {
		req.Services[i] = incomeservice.DraftService{
			ServiceID: svc.ServiceID,
			Name:      svc.Name,
			Price:     svc.Price,
		}
	}

	draft, err := s.income.CreateDraft(ctx, req)
	if err != nil {
		s.logger.Warn("Start: failed to seed income draft for booking id=%d, continuing: %v", booking.ID, err)
		return nil
	}

	incomeID := draft.ID
	booking.IncomeID = &incomeID
	s.logger.Info("Start: income draft id=%d seeded for booking id=%d", draft.ID, booking.ID)
	return nil
}

func (s *Service) notify(ctx context.Context, kind domain.NotificationType, booking *domain.Booking, actor domain.Actor, at time.Time) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, domain.NewNotification(kind, booking, actor, at)); err != nil {
		s.logger.Warn("notify: failed to publish %s for booking id=%d: %v", kind, booking.ID, err)
	}
}

func (s *Service) observe(event, result string) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(event, result)
	}
}

// today текущая календарная дата и время суток в часовом поясе салонов
func (s *Service) today() (time.Time, types.TimeString) {
	now := s.timeProvider.Now().In(s.location)
	return domain.DateOf(now), types.NewTimeString(now)
}

func (s *Service) validateCreate(req *models.CreateBookingRequest) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if today, _ := s.today(); domain.DateOf(req.Date).Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}
	if err := validateInterval(req.StartTime, req.EndTime); err != nil {
		return err
	}
	if req.ClientID == nil && (req.ClientName == nil || *req.ClientName == "") {
		return fmt.Errorf("%w: client id or client name is required", ErrInvalidInput)
	}
	if len(req.Services) == 0 || len(req.Services) > domain.MaxServicesPerBook {
		return fmt.Errorf("%w: from 1 to %d services are required", ErrInvalidInput, domain.MaxServicesPerBook)
	}
	for _, svc := range req.Services {
		if svc.ServiceID <= 0 || svc.DurationMinutes <= 0 || svc.Price < 0 {
			return fmt.Errorf("%w: invalid service %d", ErrInvalidInput, svc.ServiceID)
		}
	}
	if err := validateWorkers(req.WorkerIDs); err != nil {
		return err
	}
	return validateComment(req.Comment)
}

func validateInterval(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	return nil
}

func validateWorkers(workerIDs []int64) error {
	seen := make(map[int64]struct{}, len(workerIDs))
	for _, id := range workerIDs {
		if id <= 0 {
			return fmt.Errorf("%w: worker id must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate worker id %d", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func validateComment(comment *string) error {
	if comment != nil && len([]rune(*comment)) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	return nil
}

// rescheduleTarget новые дата и интервал; без явного окончания сохраняется длительность
func rescheduleTarget(booking *domain.Booking, date *time.Time, start, end *types.TimeString) (time.Time, types.TimeString, types.TimeString, error) {
	newDate := booking.Date
	if date != nil {
		newDate = domain.DateOf(*date)
	}

	newStart := booking.StartTime
	if start != nil {
		newStart = *start
	}

	newEnd := booking.EndTime
	switch {
	case end != nil:
		newEnd = *end
	case start != nil:
		var err error
		newEnd, err = newStart.AddMinutes(booking.DurationMinutes())
		if err != nil {
			return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
	}

	if err := validateInterval(newStart, newEnd); err != nil {
		return time.Time{}, types.TimeString{}, types.TimeString{}, err
	}
	return newDate, newStart, newEnd, nil
}
