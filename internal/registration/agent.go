package registration

import (
	_ "embed"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/platform/claude"
)

//go:embed agent.md
var agentInstructions string

// Agent returns the Claude Code subagent installed with --include-agent.
func Agent() *claude.Agent {
	return &claude.Agent{
		Name:         mcp.DefaultServerName,
		Description:  "Organizes project folders through the workspace MCP server",
		Tools:        "mcp__workspace",
		Instructions: agentInstructions,
	}
}

// applyAgent installs or removes the agent file under the project root.
// It returns the agent path and whether the file changed.
func applyAgent(projectRoot string, action Action) (string, bool, error) {
	if projectRoot == "" {
		return "", false, errors.Wrap(platform.ErrProjectRootRequired, "installing agent")
	}

	p, err := claude.NewPaths(platform.Options{Scope: platform.ScopeProject, ProjectRoot: projectRoot})
	if err != nil {
		return "", false, err
	}
	m := claude.NewAgentManager(p)
	agent := Agent()
	path := m.AgentPath(agent.Name)

	var changed bool
	if action == ActionInstall {
		changed, err = m.Install(agent)
	} else {
		changed, err = m.Uninstall(agent.Name)
	}
	if err != nil {
		return path, false, errors.Wrapf(err, "%s agent", action)
	}
	return path, changed, nil
}
