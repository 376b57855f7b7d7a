package mcp

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/internal/registration"
)

var uninstallFlags registrationFlags

func init() {
	uninstallFlags.register(uninstallCmd)
	Cmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the workspace MCP server from a client",
	Long: `Remove the "workspace" MCP server entry from a client's configuration.

Every other setting and server is kept, though as with install a rewrite
drops comments from Codex's config.toml. When the entry is the last server,
the empty server list is removed too. Uninstalling when nothing
is registered succeeds without changes unless --strict is given.`,
	Example: `  # Remove the Claude Code registration
  workspace mcp uninstall

  # Remove the Codex registration and fail if it was not there
  workspace mcp uninstall --client codex --strict

  See Also:
    workspace mcp install  - Register the server`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRegistration(cmd, &uninstallFlags, registration.ActionUninstall)
	},
}
