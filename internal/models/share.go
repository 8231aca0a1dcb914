package models

import "time"

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

type ListShare struct {
	ID           int       `json:"id" db:"id"`
	ListID       int       `json:"list_id" db:"list_id"`
	SharedWith   int       `json:"shared_with" db:"shared_with"`
	SharedBy     int       `json:"shared_by" db:"shared_by"`
	AccessLevel  string    `json:"access_level" db:"access_level"`
	InviteStatus string    `json:"invite_status" db:"invite_status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Joined fields
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	ListTitle     string `json:"list_title,omitempty"`
	SharedByName  string `json:"shared_by_name,omitempty"`
	SharedByEmail string `json:"shared_by_email,omitempty"`
}

type ShareListRequest struct {
	Email       string `json:"email" validate:"required,email"`
	AccessLevel string `json:"access_level" validate:"required,oneof=view edit admin"`
}

type RespondInviteRequest struct {
	Response string `json:"response" validate:"required,oneof=accepted declined"`
}
