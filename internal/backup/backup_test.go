package backup

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/workspace/internal/errors"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(src, []byte(content), 0o640))
	return src
}

func TestBackup_CreatesManifestAndCopy(t *testing.T) {
	root := t.TempDir()
	src := writeSource(t, `{"theme":"dark"}`)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(WithBackupDir(root), WithClock(fixedClock(at)), WithToolVersion("1.2.3"))

	mf, err := m.Backup("gemini-cli", src)
	require.NoError(t, err)

	assert.Equal(t, "gemini-cli", mf.Client)
	assert.Equal(t, "1.2.3", mf.ToolVersion)
	assert.Equal(t, at, mf.CreatedAt)
	require.Len(t, mf.Files, 1)
	assert.Equal(t, src, mf.Files[0].OriginalPath)
	assert.Equal(t, os.FileMode(0o640), mf.Files[0].Mode)

	copied, err := os.ReadFile(filepath.Join(root, "gemini-cli", mf.ID, mf.Files[0].RelPath))
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, string(copied))

	loaded, err := m.Get("gemini-cli", mf.ID)
	require.NoError(t, err)
	assert.Equal(t, mf.Files, loaded.Files)
	assert.NoError(t, m.Verify("gemini-cli", mf.ID))
}

func TestBackup_Collision(t *testing.T) {
	src := writeSource(t, "x")
	m := NewManager(WithBackupDir(t.TempDir()), WithClock(fixedClock(time.Unix(1700000000, 0))))

	first, err := m.Backup("codex", src)
	require.NoError(t, err)
	second, err := m.Backup("codex", src)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestBackup_SkipsMissing(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))

	_, err := m.Backup("codex", filepath.Join(t.TempDir(), "absent.toml"))
	assert.True(t, errors.Is(err, ErrNothingToBackup))

	_, err = m.List("codex")
	assert.True(t, errors.Is(err, ErrNoBackupsFound))
}

func TestBackup_PrunesToRetention(t *testing.T) {
	src := writeSource(t, "x")
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	m := NewManager(WithBackupDir(t.TempDir()), WithRetentionCount(2), WithClock(clock))

	var ids []string
	for range 4 {
		mf, err := m.Backup("claude-code", src)
		require.NoError(t, err)
		ids = append(ids, mf.ID)
	}

	list, err := m.List("claude-code")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[3], list[0].ID, "newest first")
	assert.Equal(t, ids[2], list[1].ID)
}

func TestVerify_DetectsCorruption(t *testing.T) {
	root := t.TempDir()
	src := writeSource(t, "original")
	m := NewManager(WithBackupDir(root))

	mf, err := m.Backup("codex", src)
	require.NoError(t, err)

	stored := filepath.Join(root, "codex", mf.ID, mf.Files[0].RelPath)
	require.NoError(t, os.WriteFile(stored, []byte("tampered"), 0o600))

	assert.True(t, errors.Is(m.Verify("codex", mf.ID), ErrBackupCorrupted))
}

func TestRestore(t *testing.T) {
	root := t.TempDir()
	src := writeSource(t, `{"theme":"dark"}`)
	m := NewManager(WithBackupDir(root))

	mf, err := m.Backup("gemini-cli", src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, []byte(`{"theme":"light","mcpServers":{}}`), 0o600))

	restored, err := m.Restore("gemini-cli", mf.ID)
	require.NoError(t, err)
	assert.Equal(t, mf.ID, restored.ID)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(src)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	}
}

func TestRestore_RefusesCorruptBackup(t *testing.T) {
	root := t.TempDir()
	src := writeSource(t, "original")
	m := NewManager(WithBackupDir(root))

	mf, err := m.Backup("codex", src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "codex", mf.ID, mf.Files[0].RelPath), []byte("tampered"), 0o600))
	require.NoError(t, os.WriteFile(src, []byte("current"), 0o600))

	_, err = m.Restore("codex", mf.ID)
	assert.True(t, errors.Is(err, ErrBackupCorrupted), "got %v", err)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "current", string(data))
}

func TestRestore_UnknownID(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))

	_, err := m.Restore("codex", "20260101T000000.000000000Z")
	assert.True(t, errors.Is(err, ErrNoBackupsFound))

	_, err = m.Restore("codex", "../gemini-cli")
	assert.ErrorContains(t, err, "invalid backup ID")
}

func TestPrune_Errors(t *testing.T) {
	m := NewManager(WithBackupDir(t.TempDir()))
	assert.Error(t, m.Prune("codex", -1))
	assert.NoError(t, m.Prune("codex", 3), "nothing to prune is not an error")
}

func TestRelPath(t *testing.T) {
	tests := []string{"/usr/local/bin", `C:\Users\Data`, "file:name", "/home/u/.claude.json"}
	for _, in := range tests {
		got := relPath(in)
		assert.False(t, strings.Contains(got, ":"), "relPath(%q) = %q contains colon", in, got)
		assert.False(t, filepath.IsAbs(got), "relPath(%q) = %q is absolute", in, got)
	}
}
