package domain

// Event lifecycle action applied to a booking
type Event string

const (
	EventConfirm           Event = "confirm"
	EventCancel            Event = "cancel"
	EventProposeReschedule Event = "propose_reschedule"
	EventApproveReschedule Event = "approve_reschedule"
	EventRejectReschedule  Event = "reject_reschedule"
	EventStart             Event = "start"
	EventComplete          Event = "complete"
	EventClose             Event = "close"

	// EventModify staff edit of a pending booking, keeps the status
	EventModify Event = "modify"
)

// Events in the order they are reported as allowed actions
var Events = []Event{
	EventConfirm,
	EventCancel,
	EventProposeReschedule,
	EventApproveReschedule,
	EventRejectReschedule,
	EventStart,
	EventComplete,
	EventClose,
}

type transition struct {
	from []BookingStatus
	to   BookingStatus
}

var transitionMap = map[Event]transition{
	EventConfirm:           {from: []BookingStatus{StatusPending}, to: StatusConfirmed},
	EventCancel:            {from: []BookingStatus{StatusPending, StatusConfirmed}, to: StatusCancelled},
	EventProposeReschedule: {from: []BookingStatus{StatusConfirmed}, to: StatusPendingApproval},
	EventApproveReschedule: {from: []BookingStatus{StatusPendingApproval}, to: StatusConfirmed},
	EventRejectReschedule:  {from: []BookingStatus{StatusPendingApproval}, to: StatusCancelled},
	EventStart:             {from: []BookingStatus{StatusConfirmed}, to: StatusStarted},
	EventComplete:          {from: []BookingStatus{StatusStarted}, to: StatusCompleted},
	EventClose: {
		from: []BookingStatus{StatusPending, StatusConfirmed, StatusPendingApproval, StatusRescheduled, StatusStarted},
		to:   StatusClosed,
	},
}

// NextStatus returns the target status of event applied in status from
func NextStatus(from BookingStatus, event Event) (BookingStatus, bool) {
	t, ok := transitionMap[event]
	if !ok {
		return "", false
	}
	for _, status := range t.from {
		if status == from {
			return t.to, true
		}
	}
	return "", false
}

// MayPerform checks the actor's right to trigger event on the booking,
// regardless of the booking's current status
func (b *Booking) MayPerform(event Event, actor Actor) bool {
	if actor.Role == RoleSystem {
		return event == EventComplete
	}

	isOwner := actor.Role == RoleClient && b.BelongsTo(actor.UserID)
	isWorker := actor.Role == RoleWorker && (b.IsPool() || b.HasWorker(actor.UserID))

	switch event {
	case EventConfirm:
		return actor.IsStaff() || (isOwner && b.AdminModified)
	case EventCancel:
		return actor.IsStaff() || isOwner
	case EventProposeReschedule, EventClose:
		return actor.IsStaff()
	case EventApproveReschedule, EventRejectReschedule:
		return isOwner
	case EventStart, EventComplete:
		return actor.IsStaff() || isWorker
	default:
		return false
	}
}

// Transition returns the target status if event is legal for the booking's status and the actor
func (b *Booking) Transition(event Event, actor Actor) (BookingStatus, bool) {
	to, ok := NextStatus(b.Status, event)
	if !ok || !b.MayPerform(event, actor) {
		return "", false
	}
	return to, true
}

// AllowedEvents events the actor may trigger from the booking's current status
func (b *Booking) AllowedEvents(actor Actor) []Event {
	allowed := make([]Event, 0)
	for _, event := range Events {
		if _, ok := b.Transition(event, actor); ok {
			allowed = append(allowed, event)
		}
	}
	return allowed
}
