package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNextStatus(t *testing.T) {
	tests := []struct {
		event Event
		from  BookingStatus
		to    BookingStatus
		ok    bool
	}{
		{EventConfirm, StatusPending, StatusConfirmed, true},
		{EventConfirm, StatusConfirmed, "", false},
		{EventCancel, StatusPending, StatusCancelled, true},
		{EventCancel, StatusConfirmed, StatusCancelled, true},
		{EventCancel, StatusStarted, "", false},
		{EventCancel, StatusPendingApproval, "", false},
		{EventProposeReschedule, StatusConfirmed, StatusPendingApproval, true},
		{EventProposeReschedule, StatusPending, "", false},
		{EventApproveReschedule, StatusPendingApproval, StatusConfirmed, true},
		{EventRejectReschedule, StatusPendingApproval, StatusCancelled, true},
		{EventStart, StatusConfirmed, StatusStarted, true},
		{EventStart, StatusPending, "", false},
		{EventComplete, StatusStarted, StatusCompleted, true},
		{EventComplete, StatusConfirmed, "", false},
		{EventClose, StatusPending, StatusClosed, true},
		{EventClose, StatusStarted, StatusClosed, true},
		{EventClose, StatusPendingApproval, StatusClosed, true},
		{EventClose, StatusCompleted, "", false},
		{EventClose, StatusCancelled, "", false},
		{EventClose, StatusClosed, "", false},
		{Event("unknown"), StatusPending, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.event)+"_from_"+string(tt.from), func(t *testing.T) {
			to, ok := NextStatus(tt.from, tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestNextStatus_TerminalStatesHaveNoExits(t *testing.T) {
	for _, status := range AllStatuses {
		if !status.IsTerminal() {
			continue
		}
		for _, event := range Events {
			_, ok := NextStatus(status, event)
			assert.False(t, ok, "terminal %s must reject %s", status, event)
		}
	}
}

func TestBooking_MayPerform(t *testing.T) {
	const clientID, otherClientID, workerID, otherWorkerID = 10, 11, 20, 21

	owned := &Booking{ClientID: int64Ptr(clientID), WorkerIDs: []int64{workerID}}
	pool := &Booking{ClientID: int64Ptr(clientID)}
	modified := &Booking{ClientID: int64Ptr(clientID), AdminModified: true}
	walkIn := &Booking{ClientName: stringPtr("walk-in")}

	client := Actor{UserID: clientID, Role: RoleClient}
	otherClient := Actor{UserID: otherClientID, Role: RoleClient}
	worker := Actor{UserID: workerID, Role: RoleWorker}
	otherWorker := Actor{UserID: otherWorkerID, Role: RoleWorker}
	manager := Actor{UserID: 1, Role: RoleManager}
	admin := Actor{UserID: 2, Role: RoleAdmin}

	tests := []struct {
		name    string
		booking *Booking
		event   Event
		actor   Actor
		want    bool
	}{
		{"manager confirms", owned, EventConfirm, manager, true},
		{"admin confirms", owned, EventConfirm, admin, true},
		{"client confirms unmodified", owned, EventConfirm, client, false},
		{"client confirms admin-modified", modified, EventConfirm, client, true},
		{"other client confirms admin-modified", modified, EventConfirm, otherClient, false},
		{"worker confirms", owned, EventConfirm, worker, false},

		{"owner cancels", owned, EventCancel, client, true},
		{"other client cancels", owned, EventCancel, otherClient, false},
		{"manager cancels walk-in", walkIn, EventCancel, manager, true},
		{"worker cancels", owned, EventCancel, worker, false},

		{"manager proposes", owned, EventProposeReschedule, manager, true},
		{"worker proposes", owned, EventProposeReschedule, worker, false},
		{"client proposes", owned, EventProposeReschedule, client, false},

		{"owner approves", owned, EventApproveReschedule, client, true},
		{"manager approves", owned, EventApproveReschedule, manager, false},
		{"other client rejects", owned, EventRejectReschedule, otherClient, false},
		{"owner rejects", owned, EventRejectReschedule, client, true},

		{"assigned worker starts", owned, EventStart, worker, true},
		{"unassigned worker starts", owned, EventStart, otherWorker, false},
		{"any worker starts pool booking", pool, EventStart, otherWorker, true},
		{"client starts", owned, EventStart, client, false},
		{"assigned worker completes", owned, EventComplete, worker, true},
		{"system completes", owned, EventComplete, SystemActor, true},
		{"system cancels", owned, EventCancel, SystemActor, false},

		{"manager closes", owned, EventClose, manager, true},
		{"worker closes", owned, EventClose, worker, false},
		{"client closes", owned, EventClose, client, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.booking.MayPerform(tt.event, tt.actor))
		})
	}
}

func TestBooking_AllowedEvents(t *testing.T) {
	b := &Booking{Status: StatusConfirmed, ClientID: int64Ptr(5)}

	assert.Equal(t,
		[]Event{EventCancel, EventProposeReschedule, EventStart, EventClose},
		b.AllowedEvents(Actor{UserID: 1, Role: RoleManager}))
	assert.Equal(t,
		[]Event{EventCancel},
		b.AllowedEvents(Actor{UserID: 5, Role: RoleClient}))

	b.Status = StatusCompleted
	assert.Empty(t, b.AllowedEvents(Actor{UserID: 1, Role: RoleAdmin}))
}

func TestParseRole(t *testing.T) {
	for _, raw := range []string{"client", "worker", "manager", "admin"} {
		role, ok := ParseRole(raw)
		assert.True(t, ok)
		assert.Equal(t, Role(raw), role)
	}

	_, ok := ParseRole("system")
	assert.False(t, ok, "system role is internal only")
	_, ok = ParseRole("")
	assert.False(t, ok)
}
