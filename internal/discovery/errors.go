package discovery

import (
	"errors"
	"fmt"
)

// ParseError reports remote output that could not be turned into an
// interface record.
type ParseError struct {
	Instance string
	Command  string

	// Line is the offending output line, empty when the whole output was at fault
	Line    string
	Message string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns the error message
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Instance != "" {
		msg += " on " + e.Instance
	}
	msg += ": " + e.Message
	if e.Command != "" {
		msg += fmt.Sprintf(" [command: %q]", e.Command)
	}
	if e.Line != "" {
		msg += fmt.Sprintf(" [line: %q]", e.Line)
	}
	return msg
}

// Unwrap returns the underlying error (for errors.Is/As support)
func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// NewParseError creates a new ParseError for a single output line
func NewParseError(line, message string) *ParseError {
	return &ParseError{
		Line:    line,
		Message: message,
	}
}

// IsParseError reports whether err is or wraps a ParseError
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}
