// Package cli holds helpers shared by the workspace commands.
package cli

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/workspace/internal/backup"
	cliprompt "github.com/thoreinstein/workspace/internal/cli/prompt"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp/validator"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
)

// ExitError attaches an exit code and suggestion to a registration or
// restore failure. User mistakes exit 1; failures reading or writing client
// stores or backups exit 2.
func ExitError(err error) error {
	var (
		unknown *platform.UnknownClientError
		already *registration.AlreadyRegisteredError
		notReg  *registration.NotRegisteredError
		invalid *validator.ValidationError
		access  *platform.ConfigAccessError
		exitErr *errors.ExitError
	)

	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.As(err, &unknown):
		return errors.NewUserError(err, "Valid clients: "+strings.Join(platform.KindNames(), ", "))
	case errors.As(err, &already), errors.As(err, &notReg):
		return errors.NewUserError(err, "Run without --strict to treat this as success")
	case errors.Is(err, platform.ErrScopeUnsupported):
		return errors.NewUserError(err, "Use --scope user for this client")
	case errors.Is(err, platform.ErrProjectRootRequired):
		return errors.NewUserError(err, "Pass --path with project scope")
	case errors.Is(err, cliprompt.ErrSelectionCancelled), errors.Is(err, cliprompt.ErrInvalidSelection):
		return errors.NewUserError(err, "")
	case errors.As(err, &invalid):
		return errors.NewConfigError(err)
	case errors.Is(err, backup.ErrNoBackupsFound):
		return errors.NewUserError(err, "Run workspace backup list to see available backups")
	case errors.Is(err, registration.ErrBackupsDisabled):
		return errors.NewUserError(err, "Set backup.enabled to true in the config file")
	case errors.Is(err, backup.ErrBackupCorrupted):
		return errors.NewSystemError(err, "Pick an older backup with workspace backup list")
	case errors.Is(err, registration.ErrLockTimeout):
		return errors.NewSystemError(err, "Another workspace process is editing this configuration; retry shortly")
	case errors.As(err, &access):
		return errors.NewSystemError(err, accessSuggestion(access))
	default:
		return errors.NewSystemError(err, "")
	}
}

func accessSuggestion(e *platform.ConfigAccessError) string {
	switch {
	case errors.Is(e, platform.ErrConfigDirNotFound):
		return fmt.Sprintf("Is %s installed? Run it once so it creates %s", e.Client, e.Path)
	case errors.Is(e, platform.ErrPermissionDenied):
		return "Check the permissions of " + e.Path
	case errors.Is(e, platform.ErrMalformedConfig):
		return fmt.Sprintf("Fix %s by hand or run: workspace backup restore --client %s", e.Path, e.Client)
	default:
		return ""
	}
}
