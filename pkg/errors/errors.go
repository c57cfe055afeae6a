package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes exposed in the response envelope.
const (
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeConflict           = "CONFLICT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
	CodeSessionPending     = "SESSION_PENDING"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeFeatureDisabled    = "FEATURE_DISABLED"
)

// Error is a failure that knows which HTTP status and envelope code it maps to.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error carrying the same code, so clones of a catalog entry
// still satisfy errors.Is against the original.
func (e *Error) Is(target error) bool {
	var other *Error
	if e == nil || !errors.As(target, &other) || other == nil {
		return false
	}
	return e.Code == other.Code
}

func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a code, status and message to an underlying cause.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// As wraps cause with the code and status of kind. An empty message keeps kind's.
func As(cause error, kind *Error, message string) *Error {
	if message == "" {
		message = kind.Message
	}
	return Wrap(cause, kind.Code, kind.Status, message)
}

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New(CodeNotFound, http.StatusNotFound, "resource not found")
	ErrForbidden          = New(CodeForbidden, http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New(CodeUnauthorized, http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New(CodeConflict, http.StatusConflict, "conflict")
	ErrValidation         = New(CodeValidation, http.StatusBadRequest, "validation failed")
	ErrInternal           = New(CodeInternal, http.StatusInternalServerError, "internal server error")
	// ErrSessionPending means the caller's profile could not be resolved yet; clients may retry.
	ErrSessionPending    = New(CodeSessionPending, http.StatusServiceUnavailable, "session not resolved yet")
	ErrInvalidTransition = New(CodeInvalidTransition, http.StatusConflict, "status transition not allowed")
	ErrFeatureDisabled   = New(CodeFeatureDisabled, http.StatusNotFound, "feature disabled")
)

// ErrCacheMiss signals that a cache key holds no value.
var ErrCacheMiss = errors.New("cache miss")

// FromError returns the first *Error in err's chain, or wraps err as an internal error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return As(err, ErrInternal, "")
}

// Clone copies a catalog entry, optionally replacing its message.
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
