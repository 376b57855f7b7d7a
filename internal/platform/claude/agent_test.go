package claude

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/workspace/internal/platform"
)

func newTestAgentManager(t *testing.T) (*AgentManager, string) {
	t.Helper()
	root := t.TempDir()
	p, err := NewPaths(platform.Options{Home: t.TempDir(), ProjectRoot: root})
	require.NoError(t, err)
	return NewAgentManager(p), root
}

func TestAgentManager_InstallGetUninstall(t *testing.T) {
	m, _ := newTestAgentManager(t)
	agent := &Agent{
		Name:         "workspace",
		Description:  "Uses the workspace MCP server",
		Tools:        "Read, Grep",
		Instructions: "# Workspace\n\nUse the workspace tools.",
	}

	changed, err := m.Install(agent)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = m.Install(agent)
	require.NoError(t, err)
	assert.False(t, changed, "identical content should not be rewritten")

	got, err := m.Get("workspace")
	require.NoError(t, err)
	assert.Equal(t, agent.Description, got.Description)
	assert.Equal(t, agent.Tools, got.Tools)
	assert.Equal(t, agent.Instructions, got.Instructions)

	removed, err := m.Uninstall("workspace")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NoFileExists(t, m.AgentPath("workspace"))

	removed, err = m.Uninstall("workspace")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAgentManager_Errors(t *testing.T) {
	m, _ := newTestAgentManager(t)

	_, err := m.Install(nil)
	assert.ErrorIs(t, err, ErrInvalidAgent)
	_, err = m.Install(&Agent{})
	assert.ErrorIs(t, err, ErrInvalidAgent)
	_, err = m.Uninstall("")
	assert.ErrorIs(t, err, ErrInvalidAgent)
	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrAgentNotFound)
}

func TestAgentManager_UpdatesChangedContent(t *testing.T) {
	m, _ := newTestAgentManager(t)
	_, err := m.Install(&Agent{Name: "workspace", Instructions: "v1"})
	require.NoError(t, err)

	changed, err := m.Install(&Agent{Name: "workspace", Instructions: "v2"})
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(m.AgentPath("workspace"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "v2")
}
