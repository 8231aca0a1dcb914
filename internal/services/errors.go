package services

import "errors"

var (
	// ErrNotFound covers missing lists, items, shares, users and notifications.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the caller's access level is insufficient.
	ErrForbidden = errors.New("insufficient access")
	// ErrInvalidResponse means the model returned content that failed
	// validation (unparseable JSON, missing required fields).
	ErrInvalidResponse = errors.New("invalid model response")
	// ErrUpstream means the model call itself failed.
	ErrUpstream = errors.New("model request failed")
)
