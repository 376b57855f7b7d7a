package claude

import (
	"bytes"
	"os"
	"strings"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/pkg/fileutil"
	"github.com/thoreinstein/workspace/pkg/frontmatter"
)

// Sentinel errors for agent operations.
var (
	ErrAgentNotFound = errors.New("agent not found")
	ErrInvalidAgent  = errors.New("invalid agent: name required")
)

// Agent is a Claude Code subagent definition.
type Agent struct {
	// Name is the agent's identifier and file stem.
	Name string `yaml:"name"`

	Description string `yaml:"description,omitempty"`

	// Tools is the comma-separated tool allowlist. Empty inherits all tools.
	Tools string `yaml:"tools,omitempty"`

	Model string `yaml:"model,omitempty"`

	// Instructions is the markdown body after the frontmatter.
	Instructions string `yaml:"-"`
}

// AgentManager reads and writes agent files in one agents directory.
type AgentManager struct {
	paths *Paths
}

// NewAgentManager creates an AgentManager using p's agent directory.
func NewAgentManager(p *Paths) *AgentManager {
	return &AgentManager{paths: p}
}

// AgentPath returns the file path for the named agent.
func (m *AgentManager) AgentPath(name string) string {
	return m.paths.AgentPath(name)
}

// Get reads the named agent, or returns ErrAgentNotFound.
func (m *AgentManager) Get(name string) (*Agent, error) {
	if name == "" {
		return nil, ErrInvalidAgent
	}

	data, err := fileutil.ReadFileWithLimit(m.paths.AgentPath(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrAgentNotFound
		}
		return nil, errors.Wrap(err, "reading agent file")
	}

	agent := &Agent{}
	body, err := frontmatter.Parse(bytes.NewReader(data), agent)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing agent %q", name)
	}
	agent.Name = name
	agent.Instructions = strings.TrimSpace(string(body))
	return agent, nil
}

// Install writes a's file, creating the agents directory when needed.
// It reports false without writing when the file already has the same content.
func (m *AgentManager) Install(a *Agent) (bool, error) {
	if a == nil || a.Name == "" {
		return false, ErrInvalidAgent
	}

	content, err := Format(a)
	if err != nil {
		return false, errors.Wrap(err, "formatting agent content")
	}

	path := m.paths.AgentPath(a.Name)
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}

	if err := os.MkdirAll(m.paths.AgentDir(), 0o755); err != nil {
		return false, errors.Wrap(err, "creating agents directory")
	}
	if err := fileutil.AtomicWriteFile(path, content, 0o644); err != nil {
		return false, errors.Wrap(err, "writing agent file")
	}
	return true, nil
}

// Uninstall removes the named agent file. A missing file reports false.
func (m *AgentManager) Uninstall(name string) (bool, error) {
	if name == "" {
		return false, ErrInvalidAgent
	}

	err := os.Remove(m.paths.AgentPath(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, errors.Wrap(err, "removing agent file")
	}
}

// Format renders a as markdown with YAML frontmatter.
func Format(a *Agent) ([]byte, error) {
	return frontmatter.Format(a, a.Instructions)
}
