// Package errors provides a lightweight structured error type (DriverError)
// for category-based classification and exit code mapping in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a driver error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Build directory manipulation errors
	CategoryFileSystem ErrorCategory = "filesystem"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

// SeverityFatal stops execution.
const SeverityFatal ErrorSeverity = "fatal"

// DriverError is a structured error with category, severity and context
type DriverError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DriverError
type ContextFields map[string]any

// Error implements the error interface
func (e *DriverError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *DriverError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DriverError) WithContext(key string, value any) *DriverError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DriverError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DriverError {
	return &DriverError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DriverError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DriverError {
	return &DriverError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As finds the first DriverError in err's chain.
func As(err error) (*DriverError, bool) {
	var de *DriverError
	if stdErrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if de, ok := As(err); ok {
		return de.Category == category
	}
	return false
}
