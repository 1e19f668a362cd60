package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// NotificationType kind of event delivered to the notification layer
type NotificationType string

const (
	NotificationBookingCreated      NotificationType = "booking.created"
	NotificationBookingModified     NotificationType = "booking.modified"
	NotificationBookingStatus       NotificationType = "booking.status_changed"
	NotificationRescheduleProposed  NotificationType = "reschedule.proposed"
	NotificationRescheduleApproved  NotificationType = "reschedule.approved"
	NotificationRescheduleRejected  NotificationType = "reschedule.rejected"
	NotificationBookingAutoComplete NotificationType = "booking.auto_completed"
)

// Notification payload emitted after a committed change
type Notification struct {
	Type      NotificationType `json:"type"`
	BookingID int64            `json:"bookingId"`
	SalonID   int64            `json:"salonId"`
	ClientID  *int64           `json:"clientId,omitempty"`
	Status    BookingStatus    `json:"status"`
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	ActorID   int64            `json:"actorId"`
	ActorRole Role             `json:"actorRole"`
	At        time.Time        `json:"at"`
}

// NewNotification snapshots the booking after the change
func NewNotification(kind NotificationType, b *Booking, actor Actor, at time.Time) Notification {
	return Notification{
		Type:      kind,
		BookingID: b.ID,
		SalonID:   b.SalonID,
		ClientID:  b.ClientID,
		Status:    b.Status,
		Date:      b.Date.Format(DateFormat),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		At:        at,
	}
}
