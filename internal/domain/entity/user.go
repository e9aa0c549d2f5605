package entity

import "time"

// Profile roles.
const (
	RoleStaff   = "Staff"
	RoleManager = "Manager"
)

// User is a selectable warehouse profile. Managers unlock with the shared passcode.
type User struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}

// IsManager reports whether the profile needs the passcode gate.
func (u User) IsManager() bool { return u.Role == RoleManager }

// ValidRole reports whether role is one of the known profile roles.
func ValidRole(role string) bool {
	return role == RoleStaff || role == RoleManager
}
