package utils

import (
	"errors"
	"fmt"
)

// Service error codes. Handlers map these to HTTP statuses; everything
// else in the system matches on the code, never on the message text.
const (
	CodeValidation    = "validationError"
	CodeNotFound      = "notFoundError"
	CodeAuthorization = "authorizationError"
	CodeStateConflict = "stateConflictError"
	CodeUpstream      = "upstreamError"
)

// ServiceError carries a taxonomy code alongside a human-readable message.
type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// NewValidationError flags malformed or missing input.
func NewValidationError(msg string) error {
	return &ServiceError{Code: CodeValidation, Message: msg}
}

// NewNotFoundError flags an absent job/deal/worker reference.
func NewNotFoundError(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

// NewAuthorizationError flags an actor that does not own the action.
func NewAuthorizationError(msg string) error {
	return &ServiceError{Code: CodeAuthorization, Message: msg}
}

// NewStateConflictError flags a transition from a non-matching origin
// state, including the losing half of a concurrent race.
func NewStateConflictError(msg string) error {
	return &ServiceError{Code: CodeStateConflict, Message: msg}
}

// NewUpstreamError wraps a store or dispatcher failure.
func NewUpstreamError(msg string, err error) error {
	return &ServiceError{Code: CodeUpstream, Message: msg, Err: err}
}

// ErrorCode extracts the taxonomy code, defaulting unknown errors to upstream.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeUpstream
}

// HasCode reports whether err carries the given taxonomy code.
func HasCode(err error, code string) bool {
	return err != nil && ErrorCode(err) == code
}
