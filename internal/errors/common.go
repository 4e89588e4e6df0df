package errors

import "fmt"

// StorageError wraps file system failures with an operation description.
type StorageError struct {
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a storage error wrapping the underlying cause
func NewStorageError(message string, err error) *StorageError {
	return &StorageError{Message: message, Err: err}
}

// ParseError describes a failure to interpret the raw snapshot file.
type ParseError struct {
	Line    int
	Column  string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("line %d, column %q: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a parse error for a specific line and column
func NewParseError(line int, column, message string, err error) *ParseError {
	return &ParseError{Line: line, Column: column, Message: message, Err: err}
}
