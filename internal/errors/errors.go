package errors

import (
	"fmt"
)

// DefrecError is the structured error type for defrec.
// It carries a stable code, category, and an actionable suggestion
// for user-facing presentation.
type DefrecError struct {
	// Code is the unique error code (e.g., "ERR_201_INDEX_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Extract, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *DefrecError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *DefrecError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with DefrecError.
func (e *DefrecError) Is(target error) bool {
	if t, ok := target.(*DefrecError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *DefrecError) WithDetail(key, value string) *DefrecError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *DefrecError) WithSuggestion(suggestion string) *DefrecError {
	e.Suggestion = suggestion
	return e
}

// New creates a new DefrecError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *DefrecError {
	return &DefrecError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a DefrecError from an existing error.
// The error's message becomes the DefrecError message.
func Wrap(code string, err error) *DefrecError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ExtractionError creates a per-file extraction error.
// These are recovered locally by the corpus builder.
func ExtractionError(path string, cause error) *DefrecError {
	return New(ErrCodeFileUnreadable, fmt.Sprintf("cannot read %s", path), cause).
		WithDetail("path", path)
}

// NotFoundError creates an index-missing error with rebuild guidance.
func NotFoundError(location string) *DefrecError {
	return New(ErrCodeIndexNotFound, fmt.Sprintf("no index at %s", location), nil).
		WithDetail("location", location).
		WithSuggestion("run 'defrec index' first")
}

// CorruptError creates an unreadable-index error.
func CorruptError(location string, cause error) *DefrecError {
	return New(ErrCodeIndexCorrupt, fmt.Sprintf("index at %s is corrupt", location), cause).
		WithDetail("location", location).
		WithSuggestion("delete the index file and run 'defrec index' again")
}

// IOError creates an index persistence error.
func IOError(message string, cause error) *DefrecError {
	return New(ErrCodeIndexWrite, message, cause)
}

// ValidationError creates an input validation error.
func ValidationError(message string, cause error) *DefrecError {
	return New(ErrCodeInvalidInput, message, cause)
}

// IsNotFound reports whether err carries the index-not-found code.
func IsNotFound(err error) bool {
	return GetCode(err) == ErrCodeIndexNotFound
}

// IsCorrupt reports whether err carries the corrupt-index code.
func IsCorrupt(err error) bool {
	return GetCode(err) == ErrCodeIndexCorrupt
}

// IsExtractionFailure reports whether err is a recoverable per-file
// extraction error.
func IsExtractionFailure(err error) bool {
	return GetCode(err) == ErrCodeFileUnreadable
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if de, ok := err.(*DefrecError); ok {
		return de.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a DefrecError.
// Returns empty string if not a DefrecError.
func GetCode(err error) string {
	if de, ok := err.(*DefrecError); ok {
		return de.Code
	}
	return ""
}

// GetCategory extracts the category from a DefrecError.
// Returns empty string if not a DefrecError.
func GetCategory(err error) Category {
	if de, ok := err.(*DefrecError); ok {
		return de.Category
	}
	return ""
}

// GetSuggestion extracts the user suggestion, if any.
func GetSuggestion(err error) string {
	if de, ok := err.(*DefrecError); ok {
		return de.Suggestion
	}
	return ""
}
