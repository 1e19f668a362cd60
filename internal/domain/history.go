package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit action labels that are not transition events
const (
	ActionCreated      = "created"
	ActionModified     = "modified"
	ActionRescheduled  = "rescheduled"
	ActionAutoComplete = "auto_complete"
)

// HistoryEntry one append-only audit record
type HistoryEntry struct {
	ID        uuid.UUID
	At        time.Time
	Action    string
	ActorID   int64
	ActorRole Role
	Comment   *string
}

// NewHistoryEntry creates an audit record with a fresh id
func NewHistoryEntry(at time.Time, action string, actor Actor, comment *string) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.New(),
		At:        at,
		Action:    action,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Comment:   comment,
	}
}

func (h HistoryEntry) clone() HistoryEntry {
	if h.Comment != nil {
		comment := *h.Comment
		h.Comment = &comment
	}
	return h
}
