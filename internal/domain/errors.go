package domain

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTicketConflict = errors.New("ticket id already exists")
	ErrStorage        = errors.New("storage failure")
	ErrUnauthorized   = errors.New("administrator capability required")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminExists        = errors.New("only one admin account is allowed")
	ErrAdminNotFound      = errors.New("admin not found")
)

var (
	ErrQueueClosed = errors.New("scan queue closed")
)

// StorageError wraps a fault raised by the storage collaborator.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + " -> " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// ValidationError names the offending input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}
