package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/workspace/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per client.
const DefaultRetentionCount = 5

const manifestName = "manifest.json"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the client.
	ErrNoBackupsFound = errors.Mark(errors.New("no backups found"), errors.ErrNotFound)

	// ErrNothingToBackup indicates none of the requested paths exist.
	ErrNothingToBackup = errors.New("no files to back up")

	// ErrBackupCorrupted indicates a stored file no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json in the
// backup directory.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Client    string    `json:"client"`
	Files     []File    `json:"files"`

	// ToolVersion is the workspace version that made the backup.
	ToolVersion string `json:"tool_version"`

	// ID is the directory name; populated on load, not stored.
	ID string `json:"-"`
}

// File describes one backed up file.
type File struct {
	OriginalPath string      `json:"original_path"`
	RelPath      string      `json:"rel_path"`
	SHA256       string      `json:"sha256"`
	Mode         fs.FileMode `json:"mode"`
}
