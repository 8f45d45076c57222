package domain

import "errors"

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalError  = errors.New("internal error")
	ErrOwnerNotFound  = errors.New("owner not found")
	ErrNameRequired   = errors.New("name is required")
	ErrNameTooLong    = errors.New("name exceeds maximum length")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrCommitConflict = errors.New("concurrent ledger commit conflict")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxDescriptionLength = 500
	MaxCategoryLength    = 100
)
