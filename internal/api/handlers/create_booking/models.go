package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SalonID    int64   `json:"salonId"`
	ClientID   *int64  `json:"clientId,omitempty"`
	ClientName *string `json:"clientName,omitempty"`
	WorkerIDs  []int64 `json:"workerIds,omitempty"`
	ServiceIDs []int64 `json:"serviceIds"`
	Date       string  `json:"date"`      // "2025-10-15"
	StartTime  string  `json:"startTime"` // "10:00"
	Comment    *string `json:"comment,omitempty"`
}

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Actor:      actor,
		SalonID:    r.SalonID,
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		WorkerIDs:  r.WorkerIDs,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		Comment:    r.Comment,
	}, nil
}
