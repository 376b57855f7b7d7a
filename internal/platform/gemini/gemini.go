// Package gemini provides the Gemini CLI MCP store.
//
// Servers live under the "mcpServers" key of settings.json, in ~/.gemini for
// user scope and <project>/.gemini for project scope.
package gemini

import (
	"path/filepath"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
)

// DisplayName is the human-readable client name.
const DisplayName = "Gemini CLI"

const (
	dirName      = ".gemini"
	settingsFile = "settings.json"
	serversKey   = "mcpServers"
)

// MCPServer is a stdio server entry in Gemini CLI settings.
type MCPServer struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	Cwd     string            `json:"cwd,omitempty"`
}

// ToEntry converts a canonical server into Gemini CLI's entry shape.
func ToEntry(s *mcp.Server) *MCPServer {
	return &MCPServer{Command: s.Command, Args: s.Args, Env: s.Env}
}

// FromEntry converts a Gemini CLI entry back to a canonical server.
// Cwd has no canonical equivalent and is dropped.
func FromEntry(name string, e *MCPServer) *mcp.Server {
	return &mcp.Server{Name: name, Command: e.Command, Args: e.Args, Env: e.Env}
}

// Paths resolves Gemini CLI file locations for one scope.
type Paths struct {
	scope       platform.Scope
	home        string
	projectRoot string
}

// NewPaths validates opts and resolves the home directory.
func NewPaths(opts platform.Options) (*Paths, error) {
	scope := opts.Scope
	if scope == "" {
		scope = platform.ScopeUser
	}
	if scope == platform.ScopeProject && opts.ProjectRoot == "" {
		return nil, platform.ErrProjectRootRequired
	}

	home := opts.Home
	if home == "" && scope == platform.ScopeUser {
		var err error
		if home, err = paths.ResolveHome(); err != nil {
			return nil, errors.Wrap(err, "resolving Gemini CLI paths")
		}
	}
	return &Paths{scope: scope, home: home, projectRoot: opts.ProjectRoot}, nil
}

// ConfigDir returns ~/.gemini for user scope and the project root for
// project scope; <project>/.gemini is created on first install.
func (p *Paths) ConfigDir() string {
	if p.scope == platform.ScopeProject {
		return p.projectRoot
	}
	return filepath.Join(p.home, dirName)
}

// MCPConfigPath returns the settings.json path for the scope.
func (p *Paths) MCPConfigPath() string {
	if p.scope == platform.ScopeProject {
		return filepath.Join(p.projectRoot, dirName, settingsFile)
	}
	return filepath.Join(p.home, dirName, settingsFile)
}

// New returns the Gemini CLI store for opts.
func New(opts platform.Options) (*platform.FileStore, error) {
	p, err := NewPaths(opts)
	if err != nil {
		return nil, err
	}

	codec := platform.JSONCodec{}
	return platform.NewFileStore(platform.FileStoreConfig{
		Kind:        platform.KindGemini,
		DisplayName: DisplayName,
		Dir:         p.ConfigDir(),
		Path:        p.MCPConfigPath(),
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
		Perm: 0o644,
	}), nil
}
