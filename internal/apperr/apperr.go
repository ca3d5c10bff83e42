// Package apperr defines the typed failures returned by the service layer.
//
// Services never return bare errors for expected conditions. Each failure
// carries a Kind, and the HTTP layer maps the Kind to a status code in one
// place (see StatusCode).
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindPersistence is the zero value so that an unclassified error is
	// treated as a server-side failure.
	KindPersistence Kind = iota
	KindInvalidIdentifier
	KindValidation
	KindNotFound
	KindUnauthorized
	KindUnauthenticated
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "InvalidIdentifier"
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFound"
	case KindUnauthorized:
		return "Unauthorized"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindConflict:
		return "Conflict"
	default:
		return "PersistenceFailure"
	}
}

// StatusCode is the HTTP status a failure of this kind is reported with.
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidIdentifier, KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Details holds per-field messages for
// validation failures and is nil otherwise.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func InvalidIdentifier(what string) *Error {
	return &Error{Kind: KindInvalidIdentifier, Message: fmt.Sprintf("invalid %s id", what)}
}

func Validation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Persistence wraps a storage failure. err may be nil when the store
// reported success but affected nothing.
func Persistence(message string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: err}
}

// KindOf classifies err. Anything that is not an *Error is a persistence
// failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
