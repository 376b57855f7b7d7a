package mcp

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/internal/registration"
)

var installFlags registrationFlags

func init() {
	installFlags.register(installCmd)
	Cmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register the workspace MCP server with a client",
	Long: `Register the "workspace" MCP server in a client's configuration.

The entry launches "uv --directory <path> run -m wa.mcp" unless the server
command is overridden in the config file. Existing settings and other servers
in the client configuration are preserved, and the file is backed up before
it is written. Installing an identical entry again changes nothing.

The first write re-serializes the whole file: JSON keys may be reordered, and
comments in Codex's config.toml are dropped and its quoting normalized. The
settings themselves are unchanged; the pre-write copy is kept as a backup
(see "workspace backup list").

With --include-agent, Claude Code also gets a "workspace" subagent in
<path>/.claude/agents/workspace.md. Other clients ignore the flag.`,
	Example: `  # Register with Claude Code (the default client)
  workspace mcp install

  # Register with Gemini CLI for a specific project, project scope
  workspace mcp install --client gemini-cli --path ~/src/notes --scope project

  # Pick the client interactively
  workspace mcp install -i

  See Also:
    workspace mcp uninstall  - Remove the registration
    workspace mcp status     - Show registration status
    workspace backup restore - Undo a change from a backup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runRegistration(cmd, &installFlags, registration.ActionInstall)
	},
}
