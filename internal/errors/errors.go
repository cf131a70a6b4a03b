// Package errors provides consistent error types for the timespent CLI.
// It defines four main categories matching how failures are handled:
// ConnectionError (aborts the add flow), SchemaError (aborts the insert
// step), FormatError (local to a single prompt), and QueryError (reads
// degrade to empty results and never propagate past the repository).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common conditions.
var (
	ErrDatabaseMissing  = errors.New("database file does not exist")
	ErrDatabaseClosed   = errors.New("database is closed")
	ErrTableNotFound    = errors.New("table not found")
	ErrNoColumns        = errors.New("no writable columns discovered")
	ErrReferenceMissing = errors.New("reference database unavailable")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidTime      = errors.New("invalid time format")
	ErrInvalidProjectID = errors.New("invalid project identifier")
	ErrInvalidActivity  = errors.New("invalid activity code")
	ErrValueRequired    = errors.New("value is required")
)

// ConnectionError reports a database handle that could not be opened.
// The add-entry flow aborts before any prompting when the primary
// connection fails; a failing reference connection only degrades lookups.
type ConnectionError struct {
	Path    string // the file that failed to open
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Path)
	}
	return e.Message
}

func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new ConnectionError.
func NewConnectionError(path, message string, cause error) *ConnectionError {
	return &ConnectionError{Path: path, Message: message, Cause: cause}
}

// SchemaError reports that the entries table or its columns could not be
// discovered. It is surfaced after all fields have been collected so the
// user does not lose entered data silently.
type SchemaError struct {
	Table   string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s: table '%s'", e.Message, e.Table)
	}
	return e.Message
}

func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(table, message string, cause error) *SchemaError {
	return &SchemaError{Table: table, Message: message, Cause: cause}
}

// FormatError reports malformed interactive input. It is local to the
// prompt that produced it and carries enough context to re-prompt.
type FormatError struct {
	Field      string // the prompt/field that failed
	Value      string // the rejected input
	Message    string
	Suggestion string // how to fix it
}

func (e *FormatError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: '%s'", e.Message, e.Value)
	}
	return e.Message
}

// NewFormatError creates a new FormatError with field context.
func NewFormatError(field, value, message, suggestion string) *FormatError {
	return &FormatError{
		Field:      field,
		Value:      value,
		Message:    message,
		Suggestion: suggestion,
	}
}

// QueryError reports a failed read. Repositories recover from these
// locally, returning empty or null results, so losing "recent entries"
// or smart defaults never blocks adding a new entry.
type QueryError struct {
	Op      string // the query that failed
	Message string
	Cause   error
}

func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s during %s", e.Message, e.Op)
	}
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Cause
}

// NewQueryError creates a new QueryError.
func NewQueryError(op, message string, cause error) *QueryError {
	return &QueryError{Op: op, Message: message, Cause: cause}
}

// IsConnectionError checks if an error is a ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// IsSchemaError checks if an error is a SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsFormatError checks if an error is a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsQueryError checks if an error is a QueryError.
func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// AsFormatError extracts a FormatError from an error chain.
func AsFormatError(err error) (*FormatError, bool) {
	var fe *FormatError
	ok := errors.As(err, &fe)
	return fe, ok
}

// AsConnectionError extracts a ConnectionError from an error chain.
func AsConnectionError(err error) (*ConnectionError, bool) {
	var ce *ConnectionError
	ok := errors.As(err, &ce)
	return ce, ok
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted additional context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
