package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// UseCase use case для приёма заявки на бронирование
type UseCase struct {
	catalog  SalonCatalog
	bookings BookingCreator
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog SalonCatalog, bookings BookingCreator, logger Logger) *UseCase {
	return &UseCase{
		catalog:  catalog,
		bookings: bookings,
		logger:   logger,
	}
}

// Execute собирает снимок услуг из каталога, вычисляет время окончания и создаёт бронирование.
// Ошибки менеджера бронирований возвращаются без изменений.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d role=%s, salon=%d, services=%v, date=%s %s",
		req.Actor.UserID, req.Actor.Role, req.SalonID, req.ServiceIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Снимок услуг: название, длительность и цена на момент бронирования
	services := make([]domain.BookedService, 0, len(req.ServiceIDs))
	totalMinutes := 0
	for _, serviceID := range req.ServiceIDs {
		service, err := uc.catalog.GetService(ctx, req.SalonID, serviceID)
		if err != nil {
			switch {
			case errors.Is(err, salonservice.ErrSalonNotFound):
				uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
				return nil, ErrSalonNotFound
			case errors.Is(err, salonservice.ErrServiceNotFound):
				uc.logger.Warn("CreateBooking: service id=%d not found in salon id=%d", serviceID, req.SalonID)
				return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, serviceID)
			default:
				uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
				return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
			}
		}

		if service.DurationMinutes <= 0 {
			uc.logger.Error("CreateBooking: service id=%d has invalid duration %d", serviceID, service.DurationMinutes)
			return nil, fmt.Errorf("%w: service %d has no duration", ErrInternal, serviceID)
		}

		services = append(services, domain.BookedService{
			ServiceID:       service.ID,
			Name:            service.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           getServicePrice(service),
		})
		totalMinutes += service.DurationMinutes
	}

	// 3. Время окончания по суммарной длительности услуг
	endTime, err := req.StartTime.AddMinutes(totalMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: services do not fit the day from %s: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	// 4. Создание бронирования, проверка слота выполняется под блокировкой салона
	booking, err := uc.bookings.Create(ctx, &models.CreateBookingRequest{
		SalonID:    req.SalonID,
		ClientID:   req.ClientID,
		ClientName: req.ClientName,
		WorkerIDs:  req.WorkerIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    endTime,
		Services:   services,
		Comment:    req.Comment,
	}, req.Actor)
	if err != nil {
		uc.logger.Warn("CreateBooking: booking rejected: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, %s-%s, total=%.2f",
		booking.ID, booking.StartTime, booking.EndTime, booking.TotalPrice)

	return booking, nil
}

// getServicePrice возвращает цену услуги; услуга без цены считается бесплатной
func getServicePrice(service *salonservice.Service) float64 {
	if service.Price == nil {
		return 0
	}
	return *service.Price
}
