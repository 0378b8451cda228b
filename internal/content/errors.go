package content

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrValidation = errors.New("validation error")
	ErrReference  = errors.New("reference error")
	ErrFormat     = errors.New("format error")
)

// ErrorClassifier allows errors to declare their classification.
type ErrorClassifier interface {
	// ErrorKind returns "validation", "reference", or "format".
	ErrorKind() string
}

// ValidationError reports a required field that is missing or malformed. The
// operation that returned it left the store unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) ErrorKind() string { return "validation" }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError reports an id that does not resolve to a required parent.
type ReferenceError struct {
	Entity string
	ID     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference: %s %q not found", e.Entity, e.ID)
}

func (e *ReferenceError) ErrorKind() string { return "reference" }

func (e *ReferenceError) Is(target error) bool { return target == ErrReference }

// FormatError reports a payload that is not parseable structured data.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return "format: payload is not valid structured data"
	}
	return fmt.Sprintf("format: %v", e.Err)
}

func (e *FormatError) ErrorKind() string { return "format" }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// Kind returns the classification of err, or "" when err carries none.
func Kind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
