// Package validator checks a canonical MCP server registration before it is
// written to any client store.
package validator

import (
	"fmt"

	"github.com/thoreinstein/workspace/internal/errors"
)

// Sentinel errors for validation failures.
var (
	// ErrMissingServerName indicates a server has no name.
	ErrMissingServerName = errors.New("server name is required")

	// ErrInvalidServerName indicates the name contains characters that the
	// client stores cannot use as a key.
	ErrInvalidServerName = errors.New("invalid server name")

	// ErrMissingCommand indicates a server has no command.
	ErrMissingCommand = errors.New("server requires command")

	// ErrEmptyEnvKey indicates an environment variable has an empty key.
	ErrEmptyEnvKey = errors.New("environment variable key is empty")
)

// Severity indicates whether a validation issue is an error or warning.
type Severity int

const (
	// SeverityError indicates a validation issue that blocks registration.
	SeverityError Severity = iota

	// SeverityWarning indicates a validation issue that doesn't prevent
	// registration but may leave the client unable to start the server.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// ValidationError represents a single validation issue with context.
type ValidationError struct {
	// ServerName identifies which server has the issue.
	ServerName string

	// Field identifies which field has the issue.
	Field string

	// Message is a human-readable description of the problem.
	Message string

	Severity Severity

	// Err is the underlying sentinel error, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	prefix := e.Severity.String()

	if e.ServerName != "" && e.Field != "" {
		return fmt.Sprintf("%s: server %q field %q: %s", prefix, e.ServerName, e.Field, e.Message)
	}
	if e.ServerName != "" {
		return fmt.Sprintf("%s: server %q: %s", prefix, e.ServerName, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q: %s", prefix, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// HasErrors returns true if any of the validation errors have error severity.
func HasErrors(errs []*ValidationError) bool {
	return len(Errors(errs)) > 0
}

// Errors returns only the validation errors with error severity.
func Errors(errs []*ValidationError) []*ValidationError {
	return filter(errs, SeverityError)
}

// Warnings returns only the validation errors with warning severity.
func Warnings(errs []*ValidationError) []*ValidationError {
	return filter(errs, SeverityWarning)
}

func filter(errs []*ValidationError, sev Severity) []*ValidationError {
	var result []*ValidationError
	for _, err := range errs {
		if err.Severity == sev {
			result = append(result, err)
		}
	}
	return result
}

// Join combines the error-severity issues into a single error, or returns nil
// when there are none. Warnings are dropped.
func Join(errs []*ValidationError) error {
	var out error
	for _, e := range Errors(errs) {
		out = errors.CombineErrors(out, e)
	}
	return out
}
