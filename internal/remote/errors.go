package remote

import (
	"errors"
	"fmt"
)

type ErrorCategory string

// Error categories for remote command failures
const (
	// ErrTransport is returned when the session could not be established or broke down
	ErrTransport ErrorCategory = "transport"

	// ErrExitStatus is returned when the remote command ran and reported failure
	ErrExitStatus ErrorCategory = "exit_status"

	// ErrTimeout is returned when the command did not finish in time
	ErrTimeout ErrorCategory = "timeout"

	// ErrResolve is returned when the instance name could not be mapped to a target
	ErrResolve ErrorCategory = "resolve"
)

// RemoteExecError reports a failed remote command together with the instance
// and command that failed.
type RemoteExecError struct {
	Category ErrorCategory
	Instance string
	Command  string

	// ExitCode is -1 when the command never reported a status
	ExitCode int
	Stderr   string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *RemoteExecError) Error() string {
	msg := fmt.Sprintf("remote %s on %s: %q", e.Category, e.Instance, e.Command)
	if e.ExitCode >= 0 {
		msg += fmt.Sprintf(" exited with status %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf(" (stderr: %s)", e.Stderr)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *RemoteExecError) Unwrap() error {
	return e.Underlying
}

// NewRemoteExecError creates a new remote error with the specified details
func NewRemoteExecError(category ErrorCategory, instance, command string, exitCode int, stderr string, underlying error) *RemoteExecError {
	return &RemoteExecError{
		Category:   category,
		Instance:   instance,
		Command:    command,
		ExitCode:   exitCode,
		Stderr:     stderr,
		Underlying: underlying,
	}
}

// IsErrorCategory checks if an error is a RemoteExecError of the given category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var remoteErr *RemoteExecError
	if errors.As(err, &remoteErr) {
		return remoteErr.Category == category
	}

	return false
}
