package mcp

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/cmd/workspace/commands/flags"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
	"github.com/thoreinstein/workspace/internal/report"
)

var (
	statusPath  string
	statusScope string
	statusJSON  bool
)

func init() {
	statusCmd.Flags().StringVar(&statusPath, "path", "",
		"project directory for project scope (default: current directory)")
	statusCmd.Flags().StringVar(&statusScope, "scope", string(platform.ScopeUser),
		"configuration scope: user, project")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	Cmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registration status for every client",
	Long: `Show, for every supported client, whether its configuration directory
exists and whether the "workspace" server is registered. Nothing is modified.`,
	Example: `  workspace mcp status
  workspace mcp status --scope project --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	scope, err := platform.ParseScope(statusScope)
	if err != nil {
		return errors.NewUserError(err, "Use --scope user or --scope project")
	}
	projectPath, err := paths.Absolute(statusPath)
	if err != nil {
		return errors.NewUserError(err, "Check the --path value")
	}

	opts := platform.Options{Scope: scope, ProjectRoot: projectPath}
	detections := platform.DetectAll(registration.NewTable(), opts, flags.Config().Server.Name)

	format := report.FormatText
	if statusJSON {
		format = report.FormatJSON
	}
	return report.NewReporter(cmd.OutOrStdout(), format).Status(detections)
}
