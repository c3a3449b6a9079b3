// Package apperr defines the typed error taxonomy shared by the service and
// HTTP layers. Every failure that reaches the boundary carries a Kind that
// maps onto a stable status code and public message.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for translation at the HTTP boundary.
type Kind string

const (
	// KindMissingValue means a required input value was absent.
	KindMissingValue Kind = "missing_value"
	// KindInvalidInput means an input value was present but malformed.
	KindInvalidInput Kind = "invalid_input"
	// KindUnauthorized means the caller is not authenticated or not allowed.
	KindUnauthorized Kind = "unauthorized"
	// KindNotFound means the requested resource does not exist.
	KindNotFound Kind = "not_found"
	// KindConflict means a business rule rejected the operation.
	KindConflict Kind = "conflict"
	// KindTimeout means the operation exceeded its deadline.
	KindTimeout Kind = "timeout"
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = "internal"
)

// Error is a classified failure. Details are safe to show to API consumers
// outside production; Inner is never exposed.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Inner   error
}

func (e *Error) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Inner }

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an existing error.
func Wrap(kind Kind, message string, inner error) *Error {
	return &Error{Kind: kind, Message: message, Inner: inner}
}

// WithDetails attaches consumer-facing detail strings.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

// KindOf extracts the Kind from an error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// As returns the typed error from the chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// Is reports whether the error chain carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
