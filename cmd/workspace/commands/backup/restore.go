package backup

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/cmd/workspace/commands/flags"
	"github.com/thoreinstein/workspace/internal/backup"
	"github.com/thoreinstein/workspace/internal/cli"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
	"github.com/thoreinstein/workspace/internal/report"
)

var (
	restoreClient string
	restoreJSON   bool
)

func init() {
	restoreCmd.Flags().StringVar(&restoreClient, "client", "", clientUsage())
	restoreCmd.Flags().BoolVar(&restoreJSON, "json", false, "output as JSON")
	_ = restoreCmd.MarkFlagRequired("client")
	_ = restoreCmd.RegisterFlagCompletionFunc("client", completeClient)
	Cmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore [backup-id]",
	Short: "Restore a client's store from a backup",
	Long: `Write a backup of a client's configuration store back to its original
location. Without a backup ID the most recent backup is used. --client is
required so a restore never lands on the wrong client.

The backup is checked against its recorded hashes first. Files are written
atomically with their original permissions while holding the same lock as
install and uninstall.`,
	Example: `  # Undo the last change to the Claude Code store
  workspace backup restore --client claude-code

  # Restore a specific backup
  workspace backup restore 20260301T120000.000000000Z --client codex

  See Also:
    workspace backup list  - List available backups`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, args []string) error {
	cfg := flags.Config()

	kind, err := platform.ParseKind(restoreClient)
	if err != nil {
		return cli.ExitError(err)
	}
	var id string
	if len(args) > 0 {
		id = args[0]
	}

	var backups *backup.Manager
	if cfg.Backup.Enabled {
		backups = backup.NewManager(backup.WithBackupDir(cfg.Backup.Dir))
	}
	d := registration.New(
		registration.WithBackups(backups),
		registration.WithLockDir(cfg.LockDir),
		registration.WithLockTimeout(cfg.LockTimeout),
	)

	res, runErr := d.Restore(cmd.Context(), kind, id)

	format := report.FormatText
	if restoreJSON {
		format = report.FormatJSON
	}
	if (runErr == nil && !quiet(cmd)) || restoreJSON {
		if err := report.NewReporter(cmd.OutOrStdout(), format).Result(res); err != nil {
			return err
		}
	}
	if runErr != nil {
		return cli.ExitError(runErr)
	}
	return nil
}
