package modify_booking

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ModifyBookingRequest HTTP request model, отсутствующие поля не меняются
type ModifyBookingRequest struct {
	WorkerIDs *[]int64 `json:"workerIds,omitempty"`
	Date      *string  `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string  `json:"startTime,omitempty"` // "10:00"
	EndTime   *string  `json:"endTime,omitempty"`
	Comment   *string  `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ModifyBookingRequest) ToServiceRequest() (*models.ModifyBookingRequest, error) {
	req := &models.ModifyBookingRequest{
		WorkerIDs: r.WorkerIDs,
		Comment:   r.Comment,
	}

	if r.Date != nil {
		date, err := domain.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	var err error
	if req.StartTime, err = parseTime(r.StartTime); err != nil {
		return nil, err
	}
	if req.EndTime, err = parseTime(r.EndTime); err != nil {
		return nil, err
	}

	return req, nil
}

func parseTime(raw *string) (*types.TimeString, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
