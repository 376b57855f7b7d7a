package claude

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
)

// ConfigDirEnv relocates Claude Code's user configuration when set.
const ConfigDirEnv = "CLAUDE_CONFIG_DIR"

// Paths resolves Claude Code file locations for one scope.
type Paths struct {
	scope       platform.Scope
	home        string
	projectRoot string
}

// NewPaths resolves the home directory and validates opts for Claude Code.
func NewPaths(opts platform.Options) (*Paths, error) {
	scope := opts.Scope
	if scope == "" {
		scope = platform.ScopeUser
	}
	if scope == platform.ScopeProject && opts.ProjectRoot == "" {
		return nil, platform.ErrProjectRootRequired
	}

	home := opts.Home
	if home == "" {
		var err error
		if home, err = paths.ResolveHome(); err != nil {
			return nil, errors.Wrap(err, "resolving Claude Code paths")
		}
	}

	return &Paths{scope: scope, home: home, projectRoot: opts.ProjectRoot}, nil
}

// userDir is ~/.claude, or $CLAUDE_CONFIG_DIR when set.
func (p *Paths) userDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(p.home, ".claude")
}

// ConfigDir returns the directory whose presence means Claude Code is set up
// for this scope. For project scope it is the project root.
func (p *Paths) ConfigDir() string {
	if p.scope == platform.ScopeProject {
		return p.projectRoot
	}
	return p.userDir()
}

// MCPConfigPath returns the file holding the mcpServers map.
//   - user: ~/.claude.json, or $CLAUDE_CONFIG_DIR/.claude.json
//   - project: <projectRoot>/.mcp.json
func (p *Paths) MCPConfigPath() string {
	if p.scope == platform.ScopeProject {
		return filepath.Join(p.projectRoot, ".mcp.json")
	}
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return filepath.Join(dir, ".claude.json")
	}
	return filepath.Join(p.home, ".claude.json")
}

// AgentDir returns <projectRoot>/.claude/agents regardless of scope.
// Without a project root it falls back to the user directory.
func (p *Paths) AgentDir() string {
	if p.projectRoot == "" {
		return filepath.Join(p.userDir(), "agents")
	}
	return filepath.Join(p.projectRoot, ".claude", "agents")
}

// AgentPath returns the path to a specific agent file, or "" for an empty name.
func (p *Paths) AgentPath(name string) string {
	if name == "" {
		return ""
	}
	return filepath.Join(p.AgentDir(), name+".md")
}
