package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so every transport layer maps it the same way.
type ErrorKind string

const (
	ErrKindUnauthenticated ErrorKind = "unauthenticated"
	ErrKindUnauthorized    ErrorKind = "unauthorized"
	ErrKindForbidden       ErrorKind = "forbidden"
	ErrKindNotFound        ErrorKind = "not_found"
	ErrKindValidation      ErrorKind = "validation_failed"
	ErrKindInvalidState    ErrorKind = "invalid_state"
	ErrKindInternal        ErrorKind = "internal"
)

// Error is the domain-level error carried from use cases to handlers.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError wraps an underlying error with a domain classification.
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// NewValidationError carries a field -> message map for bad input.
func NewValidationError(fields map[string]string) *Error {
	return &Error{
		Kind:    ErrKindValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// Common domain errors.
var (
	ErrUserNotFound        = NewError(ErrKindNotFound, "user not found")
	ErrJobNotFound         = NewError(ErrKindNotFound, "job not found")
	ErrApplicationNotFound = NewError(ErrKindNotFound, "application not found")

	ErrUnauthenticated = NewError(ErrKindUnauthenticated, "not authorized")
	ErrNotOwner        = NewError(ErrKindUnauthorized, "caller does not own this resource")
	ErrWrongRole       = NewError(ErrKindForbidden, "caller role not permitted")

	ErrDeadlinePassed       = NewError(ErrKindInvalidState, "application deadline has passed")
	ErrDuplicateApplication = NewError(ErrKindInvalidState, "an application for this job already exists")

	ErrInvalidCredentials = NewError(ErrKindUnauthenticated, "invalid email or password")
	ErrEmailTaken         = NewError(ErrKindInvalidState, "email already registered")

	ErrInvalidPayload = NewError(ErrKindValidation, "invalid payload")
)

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Kind == kind
	}
	return false
}
