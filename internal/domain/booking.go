package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusPendingApproval BookingStatus = "pending_approval"
	StatusRescheduled     BookingStatus = "rescheduled"
	StatusStarted         BookingStatus = "started"
	StatusCompleted       BookingStatus = "completed"
	StatusCancelled       BookingStatus = "cancelled"
	StatusClosed          BookingStatus = "closed"
)

// AllStatuses every status value a stored booking may carry
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPendingApproval,
	StatusRescheduled,
	StatusStarted,
	StatusCompleted,
	StatusCancelled,
	StatusClosed,
}

// InactiveStatuses статусы, которые не занимают слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusClosed,
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, bool) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}

// IsTerminal returns true for statuses that allow no further transitions
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusClosed
}

// OccupiesCapacity returns true if a booking in this status counts towards slot occupancy
func (s BookingStatus) OccupiesCapacity() bool {
	return s != StatusCancelled && s != StatusClosed
}

// BookedService snapshot of a catalog service at booking time.
// Prices are never re-derived from the catalog afterwards.
type BookedService struct {
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64
}

// ProposedReschedule staff proposal awaiting client approval
type ProposedReschedule struct {
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	ProposedBy int64
	ProposedAt time.Time
}

// Booking represents one requested or confirmed service session
type Booking struct {
	ID      int64
	SalonID int64

	// Either a registered client or a free-text walk-in name
	ClientID   *int64
	ClientName *string

	WorkerIDs []int64 // empty = pool booking

	Date      time.Time // calendar day, midnight UTC
	StartTime types.TimeString
	EndTime   types.TimeString

	Services []BookedService
	Status   BookingStatus

	AdminModified bool   // staff edited the booking while pending, client may confirm
	IncomeID      *int64 // draft income record seeded on start
	Proposed      *ProposedReschedule
	Comment       *string

	History []HistoryEntry // append-only

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// IsPool returns true if no worker is assigned yet
func (b *Booking) IsPool() bool {
	return len(b.WorkerIDs) == 0
}

// BelongsTo returns true if the booking is held by the registered client
func (b *Booking) BelongsTo(clientID int64) bool {
	return b.ClientID != nil && *b.ClientID == clientID
}

// HasWorker returns true if the worker is assigned to the booking
func (b *Booking) HasWorker(workerID int64) bool {
	for _, id := range b.WorkerIDs {
		if id == workerID {
			return true
		}
	}
	return false
}

// Occupies reports whether the booking holds slot t: start <= t < end
func (b *Booking) Occupies(t types.TimeString) bool {
	return !t.IsBefore(b.StartTime) && t.IsBefore(b.EndTime)
}

// DurationMinutes length of the booked interval
func (b *Booking) DurationMinutes() int {
	return b.StartTime.MinutesUntil(b.EndTime)
}

// TotalPrice sum of service prices captured at booking time
func (b *Booking) TotalPrice() float64 {
	var total float64
	for _, s := range b.Services {
		total += s.Price
	}
	return total
}

// ServiceIDs ids of booked services in booking order
func (b *Booking) ServiceIDs() []int64 {
	ids := make([]int64, len(b.Services))
	for i, s := range b.Services {
		ids[i] = s.ServiceID
	}
	return ids
}

// Append adds an audit entry and bumps UpdatedAt
func (b *Booking) Append(entry HistoryEntry) {
	b.History = append(b.History, entry)
	b.UpdatedAt = entry.At
}

// Clone returns a deep copy so callers can mutate without touching stored state
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.ClientID != nil {
		id := *b.ClientID
		c.ClientID = &id
	}
	if b.ClientName != nil {
		name := *b.ClientName
		c.ClientName = &name
	}
	if b.IncomeID != nil {
		id := *b.IncomeID
		c.IncomeID = &id
	}
	if b.Comment != nil {
		comment := *b.Comment
		c.Comment = &comment
	}
	if b.Proposed != nil {
		p := *b.Proposed
		c.Proposed = &p
	}
	c.WorkerIDs = append([]int64(nil), b.WorkerIDs...)
	c.Services = append([]BookedService(nil), b.Services...)
	c.History = make([]HistoryEntry, len(b.History))
	for i, h := range b.History {
		c.History[i] = h.clone()
	}
	return &c
}

// BookingsFilter фильтр для получения бронирований салона
type BookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и закрытые
}

// Matches applies the filter to a booking in memory
func (f BookingsFilter) Matches(b *Booking) bool {
	if b.SalonID != f.SalonID {
		return false
	}
	if f.StartDate != nil && b.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && b.Date.After(*f.EndDate) {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	if !f.IncludeInactive && !b.Status.OccupiesCapacity() {
		return false
	}
	return true
}
