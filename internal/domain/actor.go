package domain

// Role of the acting user
type Role string

const (
	RoleClient  Role = "client"
	RoleWorker  Role = "worker"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleSystem  Role = "system"
)

// ParseRole validates a role received from the outside. System is never accepted.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleWorker, RoleManager, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// IsStaff returns true for manager and admin
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleAdmin
}

// Actor identity performing an operation
type Actor struct {
	UserID int64
	Role   Role
}

// SystemActor actor of time-driven transitions
var SystemActor = Actor{Role: RoleSystem}

// IsStaff returns true if the actor is a manager or admin
func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}
