// Package mcp provides the mcp command group for registering the workspace
// MCP server with coding-agent clients.
package mcp

import "github.com/spf13/cobra"

// Cmd is the mcp command that groups all MCP-related subcommands.
var Cmd = &cobra.Command{
	Use:   "mcp",
	Short: "Manage the workspace MCP server registration",
	Long: `Install, uninstall, and inspect the "workspace" MCP server entry in
coding-agent client configurations.

Each client keeps its servers in its own store:
  claude-code  ~/.claude.json (user) or <path>/.mcp.json (project)
  codex        $CODEX_HOME/config.toml, default ~/.codex (user only)
  gemini-cli   ~/.gemini/settings.json (user) or <path>/.gemini/settings.json (project)`,
	Example: `  # Register with Claude Code for the current directory
  workspace mcp install

  # Remove the Gemini CLI registration
  workspace mcp uninstall --client gemini-cli

  See Also:
    workspace mcp install    - Register the server
    workspace mcp uninstall  - Remove the registration
    workspace mcp status     - Show registration status`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
