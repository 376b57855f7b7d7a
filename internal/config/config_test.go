package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/paths"
)

// isolate resets viper and moves the working directory somewhere without a
// config.yaml.
func isolate(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInit(t *testing.T) {
	isolate(t)
	Init()

	assert.False(t, viper.IsSet("default_client"))
	assert.Equal(t, "workspace", viper.GetString("server.name"))
	assert.True(t, viper.GetBool("backup.enabled"))
	assert.Equal(t, DefaultLockTimeout, viper.GetDuration("lock_timeout"))
	assert.Equal(t, paths.BackupDir(), viper.GetString("backup.dir"))
	assert.Equal(t, paths.LockDir(), viper.GetString("lock_dir"))
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBackupRetention, cfg.Backup.Retention)
	assert.Empty(t, UsedFile())

	server, err := cfg.ServerFor("/src/proj")
	require.NoError(t, err)
	assert.True(t, server.Equal(mcp.DefaultServer("/src/proj")), "got %+v", server)
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `server:
  command: /opt/bin/wa
  args: ["serve", "--root", "{path}"]
  env:
    - WA_ROOT={path}
    - WA_LOG_LEVEL=debug
backup:
  retention: 2
lock_timeout: 250ms
`)
	Init()

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, UsedFile())

	assert.Equal(t, 2, cfg.Backup.Retention)
	assert.True(t, cfg.Backup.Enabled, "unset keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.LockTimeout)

	server, err := cfg.ServerFor("/p")
	require.NoError(t, err)
	assert.Equal(t, "workspace", server.Name)
	assert.Equal(t, "/opt/bin/wa", server.Command)
	assert.Equal(t, []string{"serve", "--root", "/p"}, server.Args)
	assert.Equal(t, map[string]string{"WA_ROOT": "/p", "WA_LOG_LEVEL": "debug"}, server.Env)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("WORKSPACE_BACKUP_ENABLED", "false")
	t.Setenv("WORKSPACE_LOCK_TIMEOUT", "2s")
	Init()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Backup.Enabled)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "backup:\n  retention: 0\n")
	Init()

	_, err := Load(path)
	require.Error(t, err)

	var field *FieldError
	assert.True(t, errors.As(err, &field), "got %v", err)
	assert.True(t, errors.Is(err, ErrInvalidRetention))
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}
