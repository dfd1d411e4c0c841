package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("no account found with this email")
)

// PermissionError reports a denied operation.
type PermissionError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s (%s)", e.UserID, e.Action, e.Resource, e.Reason)
}

// IsPermissionError reports whether err is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

// RecoveryError carries the user-facing message for a failed recovery step.
// The message is surfaced verbatim to the client.
type RecoveryError struct {
	Message string
	Cause   error
}

func (e *RecoveryError) Error() string { return e.Message }
func (e *RecoveryError) Unwrap() error { return e.Cause }

func recoveryErr(message string, cause error) *RecoveryError {
	return &RecoveryError{Message: message, Cause: cause}
}

// IsRecoveryError reports whether err carries a user-facing recovery message.
func IsRecoveryError(err error) bool {
	var re *RecoveryError
	return errors.As(err, &re)
}
