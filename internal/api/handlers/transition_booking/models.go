package transition_booking

import "github.com/m04kA/SMC-SalonBookingService/internal/domain"

// TransitionRequest HTTP request model, тело необязательно
type TransitionRequest struct {
	Comment *string `json:"comment,omitempty"`
}

// actions действия из URL /bookings/{bookingId}/{action}
var actions = map[string]domain.Event{
	"confirm":  domain.EventConfirm,
	"cancel":   domain.EventCancel,
	"start":    domain.EventStart,
	"complete": domain.EventComplete,
	"close":    domain.EventClose,
}

// decisions ответ клиента на предложение переноса /bookings/{bookingId}/reschedule/{decision}
var decisions = map[string]domain.Event{
	"approve": domain.EventApproveReschedule,
	"reject":  domain.EventRejectReschedule,
}
