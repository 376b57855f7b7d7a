package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/cmd/workspace/commands/flags"
	"github.com/thoreinstein/workspace/internal/backup"
	"github.com/thoreinstein/workspace/internal/cli"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
	"github.com/thoreinstein/workspace/internal/report"
)

var (
	listClient string
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVar(&listClient, "client", "", clientUsage()+" (default: all)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	_ = listCmd.RegisterFlagCompletionFunc("client", completeClient)
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available backups",
	Long: `List the backups kept for each client, newest first. Without --client
every supported client is shown.`,
	Example: `  workspace backup list
  workspace backup list --client gemini-cli --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	kinds := registration.NewTable().Kinds()
	if listClient != "" {
		kind, err := platform.ParseKind(listClient)
		if err != nil {
			return cli.ExitError(err)
		}
		kinds = []platform.Kind{kind}
	}

	mgr := backup.NewManager(backup.WithBackupDir(flags.Config().Backup.Dir))
	sets := make([]report.BackupSet, 0, len(kinds))
	for _, kind := range kinds {
		manifests, err := mgr.List(string(kind))
		if err != nil && !errors.Is(err, backup.ErrNoBackupsFound) {
			return errors.NewSystemError(errors.Wrapf(err, "listing backups for %s", kind), "")
		}
		sets = append(sets, report.BackupSet{Client: kind, Backups: manifests})
	}

	format := report.FormatText
	if listJSON {
		format = report.FormatJSON
	}
	return report.NewReporter(cmd.OutOrStdout(), format).Backups(sets)
}
