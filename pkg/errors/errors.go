package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for notification purposes: a local validation
// failure never reached the network, a rejection is an error status from
// the remote side, and a transport failure is anything that prevented a
// response from being read at all.
type Kind string

const (
	KindValidation Kind = "validation"
	KindRejected   Kind = "rejected"
	KindTransport  Kind = "transport"
)

// Error represents a typed failure with HTTP awareness.
type Error struct {
	Kind    Kind   `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(kind Kind, code string, status int, message string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, kind Kind, code string, status int, message string) *Error {
	return &Error{Kind: kind, Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation         = New(KindValidation, "VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidCredentials = New(KindRejected, "INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrInactiveAccount    = New(KindRejected, "ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrUnauthorized       = New(KindRejected, "UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrForbidden          = New(KindRejected, "FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrNotFound           = New(KindRejected, "NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrConflict           = New(KindRejected, "CONFLICT", http.StatusConflict, "conflict")
	ErrInternal           = New(KindRejected, "INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrTransport          = New(KindTransport, "TRANSPORT_FAILURE", 0, "network error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Kind, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// KindOf returns the kind of err, defaulting to rejected for untyped errors.
func KindOf(err error) Kind {
	e := FromError(err)
	if e == nil || e.Kind == "" {
		return KindRejected
	}
	return e.Kind
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }
