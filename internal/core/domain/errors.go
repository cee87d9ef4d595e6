package domain

import "errors"

var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("access forbidden")
	ErrUserNotFound        = errors.New("user not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrContactNotFound     = errors.New("contact message not found")
	ErrInvalidState        = errors.New("operation not allowed in current status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)
