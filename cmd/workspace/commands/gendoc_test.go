package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/workspace/internal/errors"
)

func TestGenDoc_Markdown(t *testing.T) {
	e := newCLIEnv(t, "")
	dir := filepath.Join(t.TempDir(), "docs")

	_, err := e.run(t, "gen-doc", "--dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "workspace_mcp_install.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: workspace mcp install\n")
	assert.Contains(t, string(data), "--client")
}

func TestGenDoc_Man(t *testing.T) {
	e := newCLIEnv(t, "")
	dir := t.TempDir()

	_, err := e.run(t, "gen-doc", "--dir", dir, "--format", "man")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "workspace-mcp-install.1"))
}

func TestGenDoc_Errors(t *testing.T) {
	e := newCLIEnv(t, "")

	_, err := e.run(t, "gen-doc")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	_, err = e.run(t, "gen-doc", "--dir", t.TempDir(), "--format", "html")
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}
