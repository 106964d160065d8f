// Package apperrors defines the failure taxonomy shared by every controller.
// Handlers map an error's kind to an HTTP status with HTTPStatus; business
// code never touches status codes directly.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation"          // malformed input
	KindConstraint Kind = "constraint_violation" // business rule breach
	KindNotFound   Kind = "not_found"           // missing target for the given owner
	KindConflict   Kind = "conflict"            // state changed under us (late detection)
	KindStorage    Kind = "storage"             // persistence failure, propagated as-is
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Constraint(format string, args ...any) *Error {
	return &Error{Kind: KindConstraint, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Storage wraps an unexpected persistence error. The message stays generic;
// the wrapped error is kept for logs and errors.Is/As.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", Err: err}
}

// KindOf extracts the kind from err, or KindStorage for unknown errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// HTTPStatus maps an error to the status code the HTTP layer should return.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConstraint, KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
