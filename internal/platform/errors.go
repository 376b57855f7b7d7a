package platform

import (
	"fmt"

	"github.com/thoreinstein/workspace/internal/errors"
)

// Failure classes for client store access. A *ConfigAccessError always wraps
// exactly one of these.
var (
	// ErrConfigDirNotFound indicates the client's configuration directory
	// does not exist, usually because the client is not installed.
	ErrConfigDirNotFound = errors.New("configuration directory not found")

	// ErrPermissionDenied indicates the store could not be read or written.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrMalformedConfig indicates the existing store could not be parsed,
	// or its servers container has the wrong shape.
	ErrMalformedConfig = errors.New("malformed configuration")

	// ErrConfigIO covers other read and write failures.
	ErrConfigIO = errors.New("configuration I/O failed")
)

var (
	// ErrServerNotFound is returned by Store.Get when no entry has the name.
	ErrServerNotFound = errors.Mark(errors.New("MCP server not found"), errors.ErrNotFound)

	// ErrScopeUnsupported indicates the client has no store for the scope.
	ErrScopeUnsupported = errors.New("scope not supported by client")

	// ErrProjectRootRequired indicates project scope was requested without a root.
	ErrProjectRootRequired = errors.New("project scope requires a project path")
)

// ConfigAccessError describes a failure to read or write a client store.
type ConfigAccessError struct {
	Client Kind
	Op     string
	Path   string
	Err    error
}

func (e *ConfigAccessError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Client, e.Op, e.Path, e.Err)
}

func (e *ConfigAccessError) Unwrap() error {
	return e.Err
}

// newAccessError builds a ConfigAccessError whose chain matches class.
// The cause's message is kept for display.
func newAccessError(kind Kind, op, path string, class, cause error) *ConfigAccessError {
	err := class
	if cause != nil {
		err = fmt.Errorf("%w: %v", class, cause)
	}
	return &ConfigAccessError{Client: kind, Op: op, Path: path, Err: err}
}
