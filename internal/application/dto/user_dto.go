package dto

import "time"

// CreateUserRequest adds a warehouse profile.
type CreateUserRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Role string `json:"role" validate:"required,oneof=Staff Manager"`
}

// UserResponse a warehouse profile.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionRequest selects a profile. Manager profiles must send the passcode.
type SessionRequest struct {
	UserID   string `json:"user_id"`
	Passcode string `json:"passcode,omitempty"`
}

// SessionResponse carries the session token.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
