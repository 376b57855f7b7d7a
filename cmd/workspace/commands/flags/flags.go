// Package flags provides state shared between the root command and the
// noun subpackages. It exists to avoid import cycles.
package flags

import (
	"github.com/thoreinstein/workspace/internal/config"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/paths"
)

var loaded *config.Config

// SetConfig stores the configuration loaded by the root command.
func SetConfig(cfg *config.Config) {
	loaded = cfg
}

// Config returns the loaded configuration, or built-in defaults when the
// root command has not loaded one.
func Config() *config.Config {
	if loaded != nil {
		return loaded
	}
	def := mcp.DefaultServer(mcp.PathPlaceholder)
	return &config.Config{
		Server: config.ServerConfig{
			Name:    def.Name,
			Command: def.Command,
			Args:    def.Args,
		},
		Backup: config.BackupConfig{
			Enabled:   true,
			Retention: config.DefaultBackupRetention,
			Dir:       paths.BackupDir(),
		},
		LockTimeout: config.DefaultLockTimeout,
		LockDir:     paths.LockDir(),
	}
}
