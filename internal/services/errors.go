package services

import "errors"

// Auth errors.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// Moderation errors.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrAlreadyBlocked = errors.New("user already blocked")
	ErrSelfBlock      = errors.New("cannot block yourself")
)

// ValidationError marks bad client input so handlers can answer 400
// instead of 500.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

// ErrContentRejected wraps a moderation rejection reason.
type ErrContentRejected struct {
	Reason string
}

func (e *ErrContentRejected) Error() string {
	return "content rejected: " + e.Reason
}
