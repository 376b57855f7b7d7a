package gemini

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/platform"
)

func TestPaths(t *testing.T) {
	p, err := NewPaths(platform.Options{Home: "/home/u"})
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/home/u/.gemini"), p.ConfigDir())
	assert.Equal(t, filepath.FromSlash("/home/u/.gemini/settings.json"), p.MCPConfigPath())

	p, err = NewPaths(platform.Options{Scope: platform.ScopeProject, ProjectRoot: "/work"})
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/work"), p.ConfigDir())
	assert.Equal(t, filepath.FromSlash("/work/.gemini/settings.json"), p.MCPConfigPath())

	_, err = NewPaths(platform.Options{Scope: platform.ScopeProject})
	assert.ErrorIs(t, err, platform.ErrProjectRootRequired)
}

func TestStore_PreservesSettings(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".gemini")
	require.NoError(t, os.Mkdir(dir, 0o755))
	seed := `{"theme": "GitHub", "mcpServers": {"other": {"command": "node"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(seed), 0o644))

	store, err := New(platform.Options{Home: home})
	require.NoError(t, err)

	_, err = store.Put(mcp.DefaultServer("/work"))
	require.NoError(t, err)

	got, err := store.Get("workspace")
	require.NoError(t, err)
	assert.True(t, mcp.DefaultServer("/work").Equal(got))

	var doc map[string]any
	require.NoError(t, platform.JSONCodec{}.Unmarshal(mustRead(t, store.ConfigPath()), &doc))
	assert.Equal(t, "GitHub", doc["theme"])
	entry := doc["mcpServers"].(map[string]any)["workspace"].(map[string]any)
	assert.NotContains(t, entry, "type")

	change, err := store.Delete("workspace")
	require.NoError(t, err)
	assert.Equal(t, platform.ChangeRemoved, change)

	var after map[string]any
	require.NoError(t, platform.JSONCodec{}.Unmarshal(mustRead(t, store.ConfigPath()), &after))
	var before map[string]any
	require.NoError(t, platform.JSONCodec{}.Unmarshal([]byte(seed), &before))
	assert.Equal(t, before, after)
}

func TestStore_ProjectScopeCreatesGeminiDir(t *testing.T) {
	root := t.TempDir()
	store, err := New(platform.Options{Scope: platform.ScopeProject, ProjectRoot: root})
	require.NoError(t, err)

	_, err = store.Put(mcp.DefaultServer(root))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, ".gemini", "settings.json"))
}

func TestStore_NotInstalled(t *testing.T) {
	store, err := New(platform.Options{Home: t.TempDir()})
	require.NoError(t, err)

	_, err = store.Put(mcp.DefaultServer("/work"))
	assert.ErrorIs(t, err, platform.ErrConfigDirNotFound)

	change, err := store.Delete("workspace")
	require.NoError(t, err)
	assert.Equal(t, platform.ChangeNone, change)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
