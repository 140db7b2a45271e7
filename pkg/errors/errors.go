// Package errors provides the error types shared across billfold.
// These enable programmatic error checking with errors.Is while
// keeping messages useful for operators.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors.
var (
	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedFormat indicates a record file in a format the
	// loader does not speak.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ParseError reports a field value that could not be coerced to its
// expected type. Parse errors degrade a single match signal, never a
// run.
type ParseError struct {
	Field string
	Value any
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing field %s value %v: %v", e.Field, e.Value, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// GroupError reports a recovered failure while reconciling one source
// document's records. The group's records are passed through unmerged.
type GroupError struct {
	DocumentID string
	Err        error
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	return fmt.Sprintf("reconciling document %s: %v", e.DocumentID, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *GroupError) Unwrap() error {
	return e.Err
}
