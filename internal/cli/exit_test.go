package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/thoreinstein/workspace/internal/backup"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
)

func TestExitError(t *testing.T) {
	access := func(class error) error {
		return &platform.ConfigAccessError{
			Client: platform.KindGemini,
			Op:     "write",
			Path:   "/h/.gemini/settings.json",
			Err:    fmt.Errorf("%w: boom", class),
		}
	}

	tests := []struct {
		name           string
		err            error
		wantCode       int
		wantSuggestion string
	}{
		{"unknown client", &platform.UnknownClientError{Name: "cursor"}, errors.ExitUser, "Valid clients"},
		{"already registered", &registration.AlreadyRegisteredError{Client: platform.KindCodex, Name: "workspace"}, errors.ExitUser, "--strict"},
		{"not registered", &registration.NotRegisteredError{Client: platform.KindCodex, Name: "workspace"}, errors.ExitUser, "--strict"},
		{"scope unsupported", errors.Wrap(platform.ErrScopeUnsupported, "codex"), errors.ExitUser, "--scope user"},
		{"config dir missing", access(platform.ErrConfigDirNotFound), errors.ExitSystem, "installed"},
		{"permission denied", access(platform.ErrPermissionDenied), errors.ExitSystem, "permissions"},
		{"malformed", access(platform.ErrMalformedConfig), errors.ExitSystem, "backup restore --client gemini-cli"},
		{"lock timeout", errors.Wrap(registration.ErrLockTimeout, "after 5s"), errors.ExitSystem, "retry"},
		{"no backups", errors.Wrap(backup.ErrNoBackupsFound, "codex"), errors.ExitUser, "backup list"},
		{"backups disabled", registration.ErrBackupsDisabled, errors.ExitUser, "backup.enabled"},
		{"corrupt backup", errors.Wrap(backup.ErrBackupCorrupted, "settings.json"), errors.ExitSystem, "older backup"},
		{"other", errors.New("disk on fire"), errors.ExitSystem, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ExitError(tt.err)

			if got := errors.ExitCode(err); got != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", got, tt.wantCode)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("ExitError() lost the original error: %v", err)
			}

			var exitErr *errors.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("ExitError() = %T, want *ExitError", err)
			}
			if !strings.Contains(exitErr.Suggestion, tt.wantSuggestion) {
				t.Errorf("Suggestion = %q, want it to contain %q", exitErr.Suggestion, tt.wantSuggestion)
			}
		})
	}
}

func TestExitError_KeepsExisting(t *testing.T) {
	in := errors.NewUserError(errors.New("bad flag"), "fix it")
	if got := ExitError(in); got != error(in) {
		t.Errorf("ExitError() = %v, want the input unchanged", got)
	}
}
