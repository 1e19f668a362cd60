package propose_reschedule

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// ProposeRescheduleRequest HTTP request model
type ProposeRescheduleRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   *string `json:"endTime,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ProposeRescheduleRequest) ToServiceRequest() (*models.ProposeRescheduleRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &models.ProposeRescheduleRequest{
		Date:      date,
		StartTime: start,
		Comment:   r.Comment,
	}

	if r.EndTime != nil {
		end, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &end
	}

	return req, nil
}
