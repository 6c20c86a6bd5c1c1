package services

import "errors"

// Sentinel errors returned by the stores and the auth service. Handlers map
// them to HTTP status codes with errors.Is.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrEmailTaken      = errors.New("email already registered")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrMailDelivery       = errors.New("failed to send email")

	ErrNotOwner      = errors.New("only the owner can modify this contact")
	ErrShareWithSelf = errors.New("cannot share a contact with its owner")
	ErrAlreadyShared = errors.New("contact already shared with this user")
)
