package config

import (
	"fmt"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/mcp/validator"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidEnv indicates a server.env entry is not KEY=VALUE.
	ErrInvalidEnv = errors.New("env entry must be KEY=VALUE")

	// ErrInvalidRetention indicates backup.retention is below 1.
	ErrInvalidRetention = errors.New("retention must be >= 1")

	// ErrInvalidTimeout indicates lock_timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Backup.Retention < 1 {
		errs = append(errs, &FieldError{
			Field: "backup.retention",
			Value: fmt.Sprint(cfg.Backup.Retention),
			Err:   ErrInvalidRetention,
		})
	}

	if cfg.LockTimeout <= 0 {
		errs = append(errs, &FieldError{
			Field: "lock_timeout",
			Value: cfg.LockTimeout.String(),
			Err:   ErrInvalidTimeout,
		})
	}

	server, err := cfg.ServerFor(mcp.PathPlaceholder)
	if err != nil {
		return append(errs, err)
	}
	for _, v := range validator.Errors(validator.New().Validate(server)) {
		errs = append(errs, &FieldError{Field: "server." + v.Field, Err: v})
	}

	return errs
}

// FieldError represents an invalid value for one configuration key.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
