// Package apperr defines the error taxonomy surfaced by the HTTP layer.
// Every failure a caller can observe maps to one of a fixed set of kinds,
// each with a stable name and HTTP status.
package apperr

import (
	"errors"
	"net/http"
)

// Kind is the stable error name carried in response bodies.
type Kind string

const (
	KindValidation Kind = "validation_error"
	KindBadRequest Kind = "bad_request"
	KindNotFound   Kind = "not_found"
	KindDatabase   Kind = "database_error"
	KindOptimizer  Kind = "optimizer_error"
	KindInternal   Kind = "internal_error"
)

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is caller-visible; Err carries
// the wrapped cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with a caller-visible message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error, exposing its text as the message.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// From coerces any error into a classified Error. Unclassified errors
// become internal_error without leaking their text to callers.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}
