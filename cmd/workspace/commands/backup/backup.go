// Package backup provides the backup command group for inspecting and
// restoring the copies taken before each configuration write.
package backup

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/internal/platform"
)

// Cmd is the backup command that groups the backup subcommands.
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "List and restore configuration backups",
	Long: `Every install or uninstall that changes a client's store first copies the
store into the backup directory. These commands list those copies and put
one back in place.`,
	Example: `  # Show backups for every client
  workspace backup list

  # Undo the last change to the Codex store
  workspace backup restore --client codex

  See Also:
    workspace backup list     - List available backups
    workspace backup restore  - Restore a backup`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func completeClient(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return platform.KindNames(), cobra.ShellCompDirectiveNoFileComp
}

func clientUsage() string {
	return "target client: " + strings.Join(platform.KindNames(), ", ")
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
