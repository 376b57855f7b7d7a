package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/pkg/fileutil"
)

// idLayout sorts lexically in creation order.
const idLayout = "20060102T150405.000000000Z"

// Manager creates, lists, and prunes backups.
type Manager struct {
	rootDir        string
	retentionCount int
	toolVersion    string
	now            func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups to retain per client.
// Values below 1 are ignored.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retentionCount = n
		}
	}
}

// WithToolVersion records v in each manifest.
func WithToolVersion(v string) Option {
	return func(m *Manager) {
		m.toolVersion = v
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager rooted at paths.BackupDir() by default.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:        paths.BackupDir(),
		retentionCount: DefaultRetentionCount,
		toolVersion:    "dev",
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RootDir returns the backup root.
func (m *Manager) RootDir() string { return m.rootDir }

// Backup copies the existing files among srcs into a new backup for client,
// then prunes the client's history. Paths that do not exist are skipped;
// if none exist ErrNothingToBackup is returned and nothing is created.
func (m *Manager) Backup(client string, srcs ...string) (*Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}

	var existing []string
	for _, src := range srcs {
		info, err := os.Stat(src)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", src)
		}
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", src)
		}
		existing = append(existing, src)
	}
	if len(existing) == 0 {
		return nil, ErrNothingToBackup
	}

	created := m.now().UTC()
	id, dir, err := m.createDir(client, created)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   created,
		Client:      client,
		ToolVersion: m.toolVersion,
		ID:          id,
	}
	for _, src := range existing {
		f, err := backupFile(src, dir)
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "backing up %s", src)
		}
		manifest.Files = append(manifest.Files, *f)
	}

	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest, 0o600); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(client, m.retentionCount); err != nil {
		return manifest, errors.Wrap(err, "pruning old backups")
	}
	return manifest, nil
}

// createDir makes a fresh backup directory, adding a numeric suffix when
// two backups land on the same timestamp.
func (m *Manager) createDir(client string, t time.Time) (id, dir string, err error) {
	clientDir := filepath.Join(m.rootDir, client)
	if err := paths.EnsureDir(clientDir, 0o700); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	base := t.Format(idLayout)
	for i := 0; i < 100; i++ {
		id = base
		if i > 0 {
			id = base + "-" + strconv.Itoa(i)
		}
		dir = filepath.Join(clientDir, id)
		err = os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
	return "", "", errors.Newf("could not allocate backup directory for %s", base)
}

// List returns the client's backups, newest first.
func (m *Manager) List(client string) ([]*Manifest, error) {
	if client == "" {
		return nil, errors.New("client is required")
	}

	entries, err := os.ReadDir(filepath.Join(m.rootDir, client))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoBackupsFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var manifests []*Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		mf, err := m.Get(client, e.Name())
		if err != nil {
			// Skip incomplete or foreign directories
			continue
		}
		manifests = append(manifests, mf)
	}
	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(manifests, func(a, b *Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Get loads the manifest for one backup.
func (m *Manager) Get(client, id string) (*Manifest, error) {
	if client == "" || id == "" {
		return nil, errors.New("client and backup ID are required")
	}
	if id != filepath.Base(id) || id == "." || id == ".." {
		return nil, errors.Newf("invalid backup ID %q", id)
	}

	data, err := fileutil.ReadFileWithLimit(filepath.Join(m.rootDir, client, id, manifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	var mf Manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	mf.ID = id
	return &mf, nil
}

// Verify checks every stored file of a backup against its manifest hash.
func (m *Manager) Verify(client, id string) error {
	mf, err := m.Get(client, id)
	if err != nil {
		return err
	}
	for _, f := range mf.Files {
		sum, err := hashFile(filepath.Join(m.rootDir, client, id, f.RelPath))
		if err != nil {
			return errors.Wrapf(err, "reading %s", f.RelPath)
		}
		if sum != f.SHA256 {
			return errors.Wrapf(ErrBackupCorrupted, "%s hash mismatch", f.RelPath)
		}
	}
	return nil
}

// Restore verifies a backup and writes each of its files back to the
// original path with the recorded mode. Nothing is written when any stored
// file fails verification.
func (m *Manager) Restore(client, id string) (*Manifest, error) {
	mf, err := m.Get(client, id)
	if err != nil {
		return nil, err
	}
	if err := m.Verify(client, id); err != nil {
		return nil, err
	}

	for _, f := range mf.Files {
		data, err := fileutil.ReadFileWithLimit(filepath.Join(m.rootDir, client, id, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup of %s", f.OriginalPath)
		}
		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}
		if err := fileutil.AtomicWriteFile(f.OriginalPath, data, f.Mode); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
	}
	return mf, nil
}

// Prune removes all but the newest keep backups for client.
func (m *Manager) Prune(client string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(client)
	if errors.Is(err, ErrNoBackupsFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, mf := range manifests[min(keep, len(manifests)):] {
		if err := os.RemoveAll(filepath.Join(m.rootDir, client, mf.ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", mf.ID)
		}
	}
	return nil
}

func backupFile(src, backupDir string) (*File, error) {
	rel := relPath(src)
	dst := filepath.Join(backupDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	sum, mode, err := copyFile(src, dst)
	if err != nil {
		return nil, err
	}
	return &File{OriginalPath: src, RelPath: rel, SHA256: sum, Mode: mode}, nil
}

// copyFile copies src to dst and returns the content hash and source mode.
// The copy is readable only by the owner since client configs may hold secrets.
func copyFile(src, dst string) (sum string, mode fs.FileMode, err error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating backup file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing backup file")
	}

	return hex.EncodeToString(h.Sum(nil)), info.Mode().Perm(), nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// relPath maps an absolute path to a location inside a backup directory.
func relPath(abs string) string {
	clean := filepath.Clean(abs)
	if vol := filepath.VolumeName(clean); vol != "" {
		clean = strings.ReplaceAll(vol, ":", "") + clean[len(vol):]
	}
	clean = strings.ReplaceAll(clean, ":", "")
	return strings.TrimLeft(clean, `/\`)
}
