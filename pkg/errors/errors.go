// Package errors provides structured error types for the hypergraph engine
// and its hosts.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP server can
// map failures to exit codes and status codes without string matching.
//
// # Error Codes
//
//   - INVALID_*: document or input validation failures
//   - *NOT_FOUND: missing documents or vertices
//   - DRAG_IN_PROGRESS, NOT_DRAGGING, NO_DOCUMENT, STALE_DOCUMENT: engine state
//   - STORAGE, INTERNAL_ERROR, UNSUPPORTED: host and collaborator failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeVertexNotFound, "vertex %q not found", id)
//	if errors.Is(err, errors.ErrCodeVertexNotFound) {
//	    // ...
//	}
//
//	err := errors.Wrap(errors.ErrCodeStorage, origErr, "save %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document and input validation
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidVertex   Code = "INVALID_VERTEX"
	ErrCodeInvalidEdge     Code = "INVALID_EDGE"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidName     Code = "INVALID_NAME"

	// Missing resources
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeVertexNotFound Code = "VERTEX_NOT_FOUND"

	// Engine state
	ErrCodeDragInProgress Code = "DRAG_IN_PROGRESS"
	ErrCodeNotDragging    Code = "NOT_DRAGGING"
	ErrCodeNoDocument     Code = "NO_DOCUMENT"
	ErrCodeStaleDocument  Code = "STALE_DOCUMENT"

	// Collaborators
	ErrCodeStorage     Code = "STORAGE"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a [Code] with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is [New] with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func CodeOf(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// Is reports whether err carries code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// UserMessage returns the message of a coded error without the code
// prefix, or err.Error() for any other error.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsClientError reports whether err was caused by bad input or engine
// state rather than a failing collaborator. Hosts map these to 4xx.
func IsClientError(err error) bool {
	switch CodeOf(err) {
	case ErrCodeInvalidDocument, ErrCodeInvalidVertex, ErrCodeInvalidEdge,
		ErrCodeInvalidFormat, ErrCodeInvalidInput, ErrCodeInvalidName,
		ErrCodeNotFound, ErrCodeVertexNotFound,
		ErrCodeDragInProgress, ErrCodeNotDragging, ErrCodeNoDocument:
		return true
	}
	return false
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
