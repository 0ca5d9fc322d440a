package engine

import "fmt"

// Kind classifies a pipeline failure. Every kind is fatal.
type Kind string

const (
	KindReadError      Kind = "READ_ERROR"
	KindSchemaError    Kind = "SCHEMA_ERROR"
	KindColumnNotFound Kind = "COLUMN_NOT_FOUND"
	KindWriteError     Kind = "WRITE_ERROR"
	KindConfigError    Kind = "CONFIG_ERROR"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrRead           = &Error{Kind: KindReadError}
	ErrSchema         = &Error{Kind: KindSchemaError}
	ErrColumnNotFound = &Error{Kind: KindColumnNotFound}
	ErrWrite          = &Error{Kind: KindWriteError}
	ErrConfig         = &Error{Kind: KindConfigError}
)

// Error is the domain error type.
type Error struct {
	Kind    Kind
	Message string
	Column  string // offending column, when there is one
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// NewError creates a domain error with a kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a domain error that wraps an underlying cause.
func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// ColumnError reports a column that the table does not have.
func ColumnError(kind Kind, column string) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("column %q not found", column),
		Column:  column,
	}
}
