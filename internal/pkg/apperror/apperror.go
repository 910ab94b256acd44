package apperror

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error matches exactly one of these via errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAuthorization = errors.New("authorization error")
	ErrGeofence      = errors.New("geofence error")
	ErrStorage       = errors.New("storage error")
)

// Error is a domain error carrying a kind and a stable machine-readable code.
type Error struct {
	kind    error
	Code    string
	Message string
	cause   error
}

func New(kind error, code, message string) *Error {
	return &Error{kind: kind, Code: code, Message: message}
}

// Storage wraps an unexpected persistence failure.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		kind:    ErrStorage,
		Code:    "STORAGE_ERROR",
		Message: fmt.Sprintf("%s: %v", op, err),
		cause:   err,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the kind sentinel of err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrAuthorization, ErrGeofence, ErrStorage} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Code returns the code of the first *Error in err's chain.
func Code(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
