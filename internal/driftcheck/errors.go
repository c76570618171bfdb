package driftcheck

import (
	"errors"
	"fmt"
)

const (
	// ErrInvalidInput is returned when there is no current record to compare
	ErrInvalidInput = "invalid_input"

	// ErrUnknownAttribute is returned for an attribute no comparator exists for
	ErrUnknownAttribute = "unknown_attribute"
)

// CompareError reports why two runs of an instance could not be compared.
type CompareError struct {
	Category  string
	Message   string
	Attribute string // the attribute as the caller spelled it, if any

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns the error message
func (e *CompareError) Error() string {
	msg := fmt.Sprintf("compare %s: %s", e.Category, e.Message)
	if e.Attribute != "" {
		msg += fmt.Sprintf(" [attribute: %q]", e.Attribute)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *CompareError) Unwrap() error {
	return e.Underlying
}

// NewCompareError creates a CompareError without an underlying cause
func NewCompareError(category, message, attribute string) *CompareError {
	return &CompareError{Category: category, Message: message, Attribute: attribute}
}

// IsErrorCategory checks if err is or wraps a CompareError of category
func IsErrorCategory(err error, category string) bool {
	var e *CompareError
	return errors.As(err, &e) && e.Category == category
}
