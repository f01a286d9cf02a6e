package errors

import (
	"errors"
	"fmt"
)

// Common errors that can be used across packages
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError represents an error that occurs during validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// FileError represents an error that occurs during file operations
type FileError struct {
	Path    string
	Op      string
	Wrapped error
}

func (e *FileError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s operation failed on %s: %v", e.Op, e.Path, e.Wrapped)
	}
	return fmt.Sprintf("%s operation failed on %s", e.Op, e.Path)
}

func (e *FileError) Unwrap() error {
	return e.Wrapped
}

// NewFileError creates a new FileError
func NewFileError(path, op string, wrapped error) error {
	return &FileError{
		Path:    path,
		Op:      op,
		Wrapped: wrapped,
	}
}

// FailureReason says which stage dropped a repository from the report.
type FailureReason string

const (
	ReasonFetch  FailureReason = "fetch"
	ReasonStatus FailureReason = "status"
	ReasonDecode FailureReason = "decode"
	ReasonParse  FailureReason = "parse"
)

// FetchError represents an error that occurs while retrieving a descriptor
type FetchError struct {
	URL        string
	Reason     FailureReason
	StatusCode int
	Wrapped    error
}

func (e *FetchError) Error() string {
	if e.Reason == ReasonStatus {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("fetch %s (%s): %v", e.URL, e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("fetch %s (%s)", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	switch {
	case e.Wrapped != nil:
		return e.Wrapped
	case e.StatusCode == 401 || e.StatusCode == 403:
		return ErrUnauthorized
	case e.StatusCode == 404:
		return ErrNotFound
	}
	return nil
}

// NewFetchError creates a new FetchError for a transport or decoding problem
func NewFetchError(url string, reason FailureReason, wrapped error) error {
	return &FetchError{
		URL:     url,
		Reason:  reason,
		Wrapped: wrapped,
	}
}

// NewStatusError creates a new FetchError for a non-success HTTP status
func NewStatusError(url string, code int) error {
	return &FetchError{
		URL:        url,
		Reason:     ReasonStatus,
		StatusCode: code,
	}
}

// ParseError represents a descriptor that is not well-formed XML
type ParseError struct {
	Source  string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("descriptor is not well-formed XML: %v", e.Wrapped)
	}
	return fmt.Sprintf("descriptor %s is not well-formed XML: %v", e.Source, e.Wrapped)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// NewParseError creates a new ParseError
func NewParseError(source string, wrapped error) error {
	return &ParseError{
		Source:  source,
		Wrapped: wrapped,
	}
}

// ReasonOf reports the failure reason carried by err, or ReasonFetch when
// err carries none.
func ReasonOf(err error) FailureReason {
	var fe *FetchError
	if As(err, &fe) {
		return fe.Reason
	}
	var pe *ParseError
	if As(err, &pe) {
		return ReasonParse
	}
	return ReasonFetch
}

// Is reports whether target matches err.
// It enables errors.Is() to work with our custom error types.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// It enables errors.As() to work with our custom error types.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
