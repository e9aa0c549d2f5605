package dto

import "time"

// SettingsResponse the configured sets, in display order.
type SettingsResponse struct {
	Zones       []string  `json:"zones"`
	Categories  []string  `json:"categories"`
	Departments []string  `json:"departments"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NameRequest adds an entry to one of the settings sets.
type NameRequest struct {
	Name string `json:"name"`
}

// ChangePasscodeRequest body for PUT /api/settings/passcode.
type ChangePasscodeRequest struct {
	Current string `json:"current"`
	New     string `json:"new"`
}

// SyncStatusDTO state of the remote mirror.
type SyncStatusDTO struct {
	Enabled       bool       `json:"enabled"`
	State         string     `json:"state"`
	LastError     string     `json:"last_error,omitempty"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastSuccessAt *time.Time `json:"last_success_at,omitempty"`
	PushedItems   int        `json:"pushed_items"`
}
