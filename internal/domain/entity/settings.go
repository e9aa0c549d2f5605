package entity

import (
	"strings"
	"time"
)

// Settings is the user-editable configuration of the warehouse. Zones, categories and departments
// are ordered open sets; the order is the display order.
type Settings struct {
	Zones        []string
	Categories   []string
	Departments  []string
	PasscodeHash string // bcrypt hash of the manager passcode
	UpdatedAt    time.Time
}

// HasDepartment reports whether dept is configured (exact match).
func (s Settings) HasDepartment(dept string) bool { return contains(s.Departments, dept) }

// HasCategory reports whether cat is configured (exact match).
func (s Settings) HasCategory(cat string) bool { return contains(s.Categories, cat) }

// ShortZoneName drops the parenthesised description: "Main (On-site 25sqm)" -> "Main".
func ShortZoneName(zone string) string {
	if i := strings.Index(zone, " ("); i >= 0 {
		return zone[:i]
	}
	return zone
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Snapshot is the full warehouse state as exchanged with the remote mirror. Transactions are
// newest first.
type Snapshot struct {
	Items        []Item
	Transactions []Transaction
	Users        []User
	Settings     Settings
}
