package get_salon_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// parseQuery разбирает ?from=&to=&status=&includeInactive=
func parseQuery(salonID int64, q url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{SalonID: salonID}

	var err error
	if req.StartDate, err = parseDate(q.Get("from")); err != nil {
		return nil, err
	}
	if req.EndDate, err = parseDate(q.Get("to")); err != nil {
		return nil, err
	}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := q.Get("includeInactive"); raw != "" {
		if req.IncludeInactive, err = strconv.ParseBool(raw); err != nil {
			return nil, err
		}
	}

	return req, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
