// Package apperr is the error taxonomy shared by handlers and middleware.
// Every kind maps to one HTTP status; the message is what the client sees.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/iliyamo/kitesurf-admin/internal/database"
)

// Kind classifies an Error.
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindDuplicateUsername  Kind = "DUPLICATE_USERNAME"
	KindStore              Kind = "STORE"
	KindInternal           Kind = "INTERNAL"
)

// Error is a failure that carries its client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches on Kind so errors.Is(err, apperr.NotFound("")) works for any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// StatusCode maps the kind to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindDuplicateUsername:
		return http.StatusBadRequest
	case KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

func InvalidCredentials() *Error {
	return New(KindInvalidCredentials, "Invalid username or password")
}

func Unauthorized() *Error {
	return New(KindUnauthorized, "Unauthorized. Please login.")
}

func Forbidden() *Error {
	return New(KindForbidden, "Forbidden. Insufficient permissions.")
}

func DuplicateUsername() *Error {
	return New(KindDuplicateUsername, "Username already exists")
}

// Store wraps a storage failure. The driver message is passed through to
// the client, matching what operators see in the logs.
func Store(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	var se *database.StoreError
	if errors.As(err, &se) && se.Err != nil {
		msg = se.Err.Error()
	}
	return &Error{Kind: KindStore, Message: msg, Cause: err}
}

// From converts any error into an *Error. Errors already in the taxonomy are
// returned as is; storage errors become KindStore; the rest are internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var se *database.StoreError
	if errors.As(err, &se) {
		return Store(err)
	}
	return Wrap(err, KindInternal, err.Error())
}
