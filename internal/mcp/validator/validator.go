package validator

import (
	"os/exec"
	"regexp"
	"strings"

	"github.com/thoreinstein/workspace/internal/mcp"
)

// namePattern matches names usable as a JSON object key and a bare TOML key.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Option configures a Validator.
type Option func(*Validator)

// Validator validates canonical MCP server registrations.
type Validator struct {
	lookPath func(string) (string, error)
}

// New creates a new Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithLookPath enables a warning when the server command cannot be resolved.
// Pass nil to disable the check, which is the default.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(v *Validator) {
		v.lookPath = fn
	}
}

// WithCommandCheck enables the command resolution warning using exec.LookPath.
func WithCommandCheck() Option {
	return WithLookPath(exec.LookPath)
}

// Validate checks a server for issues.
// Returns a slice of validation errors/warnings, or nil if valid.
// Use [HasErrors] to check if any errors (vs warnings) were found.
func (v *Validator) Validate(server *mcp.Server) []*ValidationError {
	if server == nil {
		return []*ValidationError{{
			Message:  "server is nil",
			Severity: SeverityError,
		}}
	}

	var errs []*ValidationError
	name := server.Name

	switch {
	case name == "":
		errs = append(errs, &ValidationError{
			Field:    "name",
			Message:  "server name is required",
			Severity: SeverityError,
			Err:      ErrMissingServerName,
		})
	case !namePattern.MatchString(name):
		errs = append(errs, &ValidationError{
			ServerName: name,
			Field:      "name",
			Message:    "name may only contain letters, digits, '-' and '_'",
			Severity:   SeverityError,
			Err:        ErrInvalidServerName,
		})
	}

	errs = append(errs, v.validateCommand(name, server)...)
	errs = append(errs, v.validateEnv(name, server)...)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (v *Validator) validateCommand(name string, server *mcp.Server) []*ValidationError {
	if server.Command == "" {
		return []*ValidationError{{
			ServerName: name,
			Field:      "command",
			Message:    "command is required",
			Severity:   SeverityError,
			Err:        ErrMissingCommand,
		}}
	}

	var errs []*ValidationError

	// A command with spaces is usually arguments folded into the command.
	if strings.ContainsAny(server.Command, " \t") {
		errs = append(errs, &ValidationError{
			ServerName: name,
			Field:      "command",
			Message:    "command contains whitespace; put arguments in args",
			Severity:   SeverityWarning,
		})
	}

	if v.lookPath != nil {
		if _, err := v.lookPath(server.Command); err != nil {
			errs = append(errs, &ValidationError{
				ServerName: name,
				Field:      "command",
				Message:    "command " + server.Command + " not found in PATH",
				Severity:   SeverityWarning,
				Err:        err,
			})
		}
	}

	return errs
}

// validateEnv validates that environment variable keys are non-empty.
func (v *Validator) validateEnv(name string, server *mcp.Server) []*ValidationError {
	for key := range server.Env {
		if strings.TrimSpace(key) == "" {
			return []*ValidationError{{
				ServerName: name,
				Field:      "env",
				Message:    "environment variable key cannot be empty",
				Severity:   SeverityError,
				Err:        ErrEmptyEnvKey,
			}}
		}
	}
	return nil
}
