// Package errors provides standardized error handling for the console engine
package errors

import (
	"errors"
	"fmt"
)

// Sentinel kinds classifying every error the engine produces or passes on
var (
	// ErrTransport indicates a network failure or timeout
	ErrTransport = errors.New("transport failure")

	// ErrProtocol indicates a non-2xx response or a body that did not
	// parse as the expected shape
	ErrProtocol = errors.New("protocol error")

	// ErrValidation indicates an operator action attempted against an
	// unmet precondition
	ErrValidation = errors.New("validation failed")

	// ErrDomain indicates a business error reported by the backend
	ErrDomain = errors.New("backend rejected operation")
)

// Error represents an engine error with additional context
type Error struct {
	// Kind is one of the sentinel kinds above
	Kind error
	// Op describes the operation that failed
	Op string
	// Message is a human-readable error description
	Message string
	// Err is the underlying error
	Err error
}

// Error implements the error interface with a formatted message
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain handling
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches against the error's kind so callers can use errors.Is with the
// sentinel kinds regardless of the underlying cause
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// NewTransport wraps a network failure
func NewTransport(op string, err error) *Error {
	return &Error{Kind: ErrTransport, Op: op, Message: err.Error(), Err: err}
}

// NewProtocol reports an unexpected response status or shape
func NewProtocol(op, message string, err error) *Error {
	return &Error{Kind: ErrProtocol, Op: op, Message: message, Err: err}
}

// NewValidation reports an unmet precondition
func NewValidation(op, message string) *Error {
	return &Error{Kind: ErrValidation, Op: op, Message: message}
}

// NewDomain reports a backend-side business error
func NewDomain(op, message string) *Error {
	return &Error{Kind: ErrDomain, Op: op, Message: message}
}

// IsTransport returns true if err represents a network failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsProtocol returns true if err represents a malformed response
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsValidation returns true if err represents an unmet precondition
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDomain returns true if err represents a backend business error
func IsDomain(err error) bool {
	return errors.Is(err, ErrDomain)
}
