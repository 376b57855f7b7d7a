package paths

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "workspace"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for directories this tool owns.
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// It returns an empty string on error; use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
func DataHome() string {
	return xdg.DataHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
// On macOS: ~/Library/Application Support
func StateHome() string {
	return xdg.StateHome
}

// ConfigDir returns the directory searched for config.yaml.
// Returns: <ConfigHome>/workspace/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// BackupDir returns the root directory for client config backups.
// Returns: <DataHome>/workspace/backups/
func BackupDir() string {
	return filepath.Join(DataHome(), AppName, "backups")
}

// LockDir returns the directory holding advisory lock files.
// Returns: <StateHome>/workspace/locks/
func LockDir() string {
	return filepath.Join(StateHome(), AppName, "locks")
}

// LockFile returns the lock file guarding target inside dir.
// The name is derived from the cleaned absolute target path so every
// invocation touching the same client store contends on the same lock.
func LockFile(dir, target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
}

// Absolute resolves p against the working directory.
// An empty p resolves to the working directory itself.
func Absolute(p string) (string, error) {
	if p == "" {
		p = "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidPath, "%s: %v", p, err)
	}
	return abs, nil
}
