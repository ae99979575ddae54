// Package apperr defines the failure taxonomy shared by services and the HTTP
// boundary. Services raise kinds; a single translator in the http package maps
// each kind to its status code.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Internal is the zero-ish fallback for anything uncategorized.
	Internal Kind = iota
	// Validation marks malformed or missing request data.
	Validation
	// Authentication marks failed credential checks.
	Authentication
	// Forbidden marks an authenticated caller acting outside its rights.
	Forbidden
	// NotFound marks an addressed resource that does not exist.
	NotFound
	// Conflict marks a uniqueness violation.
	Conflict
	// Unprocessable marks a request referencing a related entity that does
	// not exist (a client-data problem, not a resource-addressing one).
	Unprocessable
	// InvalidToken marks an unknown or unverifiable token.
	InvalidToken
	// TokenExpired marks a known token past its expiry instant.
	TokenExpired
)

// Error carries a kind alongside the message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, walking wrapped causes. Errors outside
// the taxonomy report Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
