package booking

import (
	"errors"
	"fmt"
)

// Error codes for the booking engine's failure taxonomy.
const (
	CodeValidation        = "validationError"
	CodeSecurity          = "securityViolation"
	CodeAvailability      = "availabilityRejected"
	CodeExternalService   = "externalServiceError"
	CodeInvalidTransition = "invalidTransition"
	CodeFatal             = "fatalError"
)

// Error carries a machine-readable code alongside the message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewSecurityViolation(msg string) error {
	return &Error{Code: CodeSecurity, Message: msg}
}

func NewAvailabilityRejected(msg string) error {
	return &Error{Code: CodeAvailability, Message: msg}
}

func NewExternalServiceError(msg string) error {
	return &Error{Code: CodeExternalService, Message: msg}
}

func NewInvalidTransition(msg string) error {
	return &Error{Code: CodeInvalidTransition, Message: msg}
}

func NewFatalError(msg string) error {
	return &Error{Code: CodeFatal, Message: msg}
}

// ErrorCode extracts the code from a booking error, or "" for foreign errors.
func ErrorCode(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// ErrReplay marks a duplicate event for an already-applied transition. The
// caller treats it as a no-op, not a failure, to tolerate at-least-once
// delivery from the transport layer.
var ErrReplay = errors.New("idempotent replay of an applied event")
