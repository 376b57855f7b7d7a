// Package paths provides cross-platform path resolution for the workspace
// CLI's own directories.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance:
//
//	| Purpose   | Location                          |
//	|-----------|-----------------------------------|
//	| config    | <ConfigHome>/workspace/config.yaml |
//	| backups   | <DataHome>/workspace/backups/      |
//	| locks     | <StateHome>/workspace/locks/       |
//
// Client configuration locations (~/.claude.json, ~/.codex/config.toml,
// ~/.gemini/settings.json) are owned by the client packages under
// internal/platform.
package paths
