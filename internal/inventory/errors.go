package inventory

import (
	"errors"
	"fmt"
)

// ConfigError categories
const (
	// ErrUnreadable is returned when the inventory file cannot be read
	ErrUnreadable = "unreadable"

	// ErrMalformed is returned when the inventory file cannot be decoded
	ErrMalformed = "malformed"

	// ErrMissingField is returned when the machines collection or a machine_name is absent
	ErrMissingField = "missing_field"
)

// ConfigError represents a failure to load the inventory or pipeline configuration.
type ConfigError struct {
	Category string
	Path     string
	Message  string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns the error message
func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s [path: %s]", e.Category, e.Message, e.Path)
	}
	return fmt.Sprintf("config %s: %s", e.Category, e.Message)
}

// Unwrap returns the underlying error (for errors.Is/As support)
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// NewConfigError creates a new error with the given category and details
func NewConfigError(category, path, message string, underlying error) *ConfigError {
	return &ConfigError{
		Category:   category,
		Path:       path,
		Message:    message,
		Underlying: underlying,
	}
}

// IsErrorCategory checks if an error is a ConfigError of the given category
func IsErrorCategory(err error, category string) bool {
	if err == nil {
		return false
	}

	var e *ConfigError
	if errors.As(err, &e) {
		return e.Category == category
	}

	return false
}
