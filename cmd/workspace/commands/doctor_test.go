package commands

import (
	"encoding/json"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/workspace/internal/errors"
)

type doctorOutput struct {
	Results []struct {
		Name   string `json:"name"`
		Client string `json:"client"`
		Status string `json:"status"`
	} `json:"results"`
	Fixes []struct {
		Path string `json:"path"`
	} `json:"fixes"`
}

func (o doctorOutput) status(client, name string) string {
	for _, r := range o.Results {
		if r.Client == client && r.Name == name {
			return r.Status
		}
	}
	return ""
}

func TestDoctor_Healthy(t *testing.T) {
	e := newCLIEnv(t, "")

	_, err := e.run(t, "mcp", "install", "--client", "gemini-cli", "--path", e.project)
	require.NoError(t, err)

	out, err := e.run(t, "doctor", "--json", "--path", e.project)
	require.NoError(t, err)

	var got doctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "pass", got.status("gemini-cli", "store"))
	assert.Equal(t, "info", got.status("codex", "store"))
	assert.Equal(t, "pass", got.status("gemini-cli", "permissions"))
}

func TestDoctor_MalformedStore(t *testing.T) {
	e := newCLIEnv(t, "")
	require.NoError(t, os.WriteFile(e.codexStore(), []byte("[mcp_servers\n"), 0o644))

	_, err := e.run(t, "doctor", "--json", "--path", e.project)
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
}

func TestDoctor_FixPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	e := newCLIEnv(t, "")
	require.NoError(t, os.WriteFile(e.geminiStore(), []byte(`{}`), 0o644))
	require.NoError(t, os.Chmod(e.geminiStore(), 0o666))

	out, err := e.run(t, "doctor", "--json", "--path", e.project)
	require.NoError(t, err)
	var before doctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &before))
	assert.Equal(t, "warning", before.status("gemini-cli", "permissions"))

	out, err = e.run(t, "doctor", "--json", "--fix", "--path", e.project)
	require.NoError(t, err)
	var after doctorOutput
	require.NoError(t, json.Unmarshal([]byte(out), &after))
	assert.Equal(t, "pass", after.status("gemini-cli", "permissions"))
	require.Len(t, after.Fixes, 1)
	assert.Equal(t, e.geminiStore(), after.Fixes[0].Path)

	info, err := os.Stat(e.geminiStore())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}
