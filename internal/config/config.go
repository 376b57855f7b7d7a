package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/paths"
)

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "WORKSPACE"

// DefaultLockTimeout bounds how long an invocation waits for a store lock.
const DefaultLockTimeout = 5 * time.Second

// DefaultBackupRetention is the number of backups kept per client.
const DefaultBackupRetention = 5

// Config represents the top-level configuration structure.
type Config struct {
	Server      ServerConfig  `mapstructure:"server" yaml:"server"`
	Backup      BackupConfig  `mapstructure:"backup" yaml:"backup"`
	LockTimeout time.Duration `mapstructure:"lock_timeout" yaml:"lock_timeout"`

	// LockDir holds the advisory lock files guarding client stores.
	LockDir string `mapstructure:"lock_dir" yaml:"lock_dir"`
}

// ServerConfig overrides the registered MCP server entry.
type ServerConfig struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args"`

	// Env holds KEY=VALUE pairs.
	Env []string `mapstructure:"env" yaml:"env"`
}

// BackupConfig controls client store backups.
type BackupConfig struct {
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
	Retention int    `mapstructure:"retention" yaml:"retention"`
	Dir       string `mapstructure:"dir" yaml:"dir"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	def := mcp.DefaultServer(mcp.PathPlaceholder)
	viper.SetDefault("server.name", def.Name)
	viper.SetDefault("server.command", def.Command)
	viper.SetDefault("server.args", def.Args)
	viper.SetDefault("server.env", []string{})
	viper.SetDefault("backup.enabled", true)
	viper.SetDefault("backup.retention", DefaultBackupRetention)
	viper.SetDefault("backup.dir", paths.BackupDir())
	viper.SetDefault("lock_timeout", DefaultLockTimeout)
	viper.SetDefault("lock_dir", paths.LockDir())
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, it searches the default locations and
// falls back to defaults when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load, use defaults
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	var combined error
	for _, e := range Validate(&cfg) {
		combined = errors.CombineErrors(combined, e)
	}
	if combined != nil {
		return nil, errors.Mark(errors.Wrap(combined, "invalid configuration"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// UsedFile returns the config file Viper loaded, or "" when running on defaults.
func UsedFile() string {
	if f := viper.ConfigFileUsed(); f != "" {
		if abs, err := filepath.Abs(f); err == nil {
			return abs
		}
		return f
	}
	return ""
}

// ServerFor builds the registration for projectPath, substituting
// mcp.PathPlaceholder in args and env values.
func (c *Config) ServerFor(projectPath string) (*mcp.Server, error) {
	env, err := parseEnv(c.Server.Env)
	if err != nil {
		return nil, err
	}
	s := &mcp.Server{
		Name:    c.Server.Name,
		Command: c.Server.Command,
		Args:    c.Server.Args,
		Env:     env,
	}
	return s.Expand(projectPath), nil
}

func parseEnv(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, &FieldError{Field: "server.env", Value: p, Err: ErrInvalidEnv}
		}
		env[k] = v
	}
	return env, nil
}
