// Package codex provides the OpenAI Codex CLI MCP store.
//
// Codex keeps servers as [mcp_servers.<name>] tables in config.toml under
// $CODEX_HOME, which defaults to ~/.codex. Codex has no project-level
// configuration, so only user scope is supported.
package codex

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
)

// DisplayName is the human-readable client name.
const DisplayName = "Codex"

// HomeEnv overrides the Codex configuration directory.
const HomeEnv = "CODEX_HOME"

const (
	configFile = "config.toml"
	serversKey = "mcp_servers"
)

// MCPServer is a stdio server table in config.toml.
type MCPServer struct {
	Command string            `toml:"command"`
	Args    []string          `toml:"args,omitempty"`
	Env     map[string]string `toml:"env,omitempty"`
}

// ToEntry converts a canonical server into a Codex server table.
func ToEntry(s *mcp.Server) *MCPServer {
	return &MCPServer{Command: s.Command, Args: s.Args, Env: s.Env}
}

// FromEntry converts a Codex server table back to a canonical server.
func FromEntry(name string, e *MCPServer) *mcp.Server {
	return &mcp.Server{Name: name, Command: e.Command, Args: e.Args, Env: e.Env}
}

// HomeDir returns $CODEX_HOME, or <home>/.codex.
func HomeDir(home string) string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	return filepath.Join(home, ".codex")
}

// New returns the Codex store. Project scope returns ErrScopeUnsupported.
func New(opts platform.Options) (*platform.FileStore, error) {
	if opts.Scope == platform.ScopeProject {
		return nil, errors.Wrapf(platform.ErrScopeUnsupported, "%s: %s", platform.KindCodex, opts.Scope)
	}

	home := opts.Home
	if home == "" && os.Getenv(HomeEnv) == "" {
		var err error
		if home, err = paths.ResolveHome(); err != nil {
			return nil, errors.Wrap(err, "resolving Codex paths")
		}
	}
	dir := HomeDir(home)

	codec := platform.TOMLCodec{}
	return platform.NewFileStore(platform.FileStoreConfig{
		Kind:        platform.KindCodex,
		DisplayName: DisplayName,
		Dir:         dir,
		Path:        filepath.Join(dir, configFile),
		ServersKey:  serversKey,
		Codec:       codec,
		Encode:      func(s *mcp.Server) any { return ToEntry(s) },
		Decode: func(name string, entry any) (*mcp.Server, error) {
			e, err := platform.Convert[MCPServer](codec, entry)
			if err != nil {
				return nil, err
			}
			return FromEntry(name, &e), nil
		},
		Perm: 0o600,
	}), nil
}
