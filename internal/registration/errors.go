package registration

import (
	"fmt"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/platform"
)

var (
	// ErrLockTimeout indicates another invocation held the store lock for
	// longer than the configured timeout.
	ErrLockTimeout = errors.New("timed out waiting for configuration lock")

	// ErrUnknownAction indicates an action other than install or uninstall.
	ErrUnknownAction = errors.New("unknown action")

	// ErrBackupsDisabled indicates Restore was called without a backup manager.
	ErrBackupsDisabled = errors.New("backups are disabled")
)

// AlreadyRegisteredError is returned in strict mode when install finds an
// identical entry.
type AlreadyRegisteredError struct {
	Client platform.Kind
	Name   string
	Path   string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s: server %q is already registered in %s", e.Client, e.Name, e.Path)
}

// NotRegisteredError is returned in strict mode when uninstall finds no entry.
type NotRegisteredError struct {
	Client platform.Kind
	Name   string
	Path   string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("%s: server %q is not registered in %s", e.Client, e.Name, e.Path)
}
