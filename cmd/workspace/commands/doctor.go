package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/cmd/workspace/commands/flags"
	"github.com/thoreinstein/workspace/internal/doctor"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/logging"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
	"github.com/thoreinstein/workspace/internal/report"
)

var (
	doctorFix   bool
	doctorJSON  bool
	doctorPath  string
	doctorScope string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"repair fixable issues")
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().StringVar(&doctorPath, "path", "",
		"project directory the server runs in (default: current directory)")
	doctorCmd.Flags().StringVar(&doctorScope, "scope", string(platform.ScopeUser),
		"configuration scope: user, project")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose client configurations",
	Long: `Run diagnostic checks on every client's configuration store and on the
server entry that install would write.

Checks whether each store parses, whether "workspace" is registered, whether
the store is writable by other users, and whether the server command resolves
on PATH. Nothing is modified unless --fix is given, which only tightens file
permissions.

Exit codes:
  0 - No errors (warnings may be present)
  2 - Errors present`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg := flags.Config()
	logger := logging.FromContext(cmd.Context())

	scope, err := platform.ParseScope(doctorScope)
	if err != nil {
		return errors.NewUserError(err, "Use --scope user or --scope project")
	}
	projectPath, err := paths.Absolute(doctorPath)
	if err != nil {
		return errors.NewUserError(err, "Check the --path value")
	}
	server, err := cfg.ServerFor(projectPath)
	if err != nil {
		return errors.NewConfigError(err)
	}

	runner := doctor.NewRunner(doctor.NewServerCheck(server))
	table := registration.NewTable()
	opts := platform.Options{Scope: scope, ProjectRoot: projectPath}
	for _, kind := range table.Kinds() {
		store, err := table.Open(kind, opts)
		if err != nil {
			logger.Debug("skipping client", "client", kind, "error", err)
			continue
		}
		runner.AddCheck(doctor.NewStoreCheck(store, server.Name))
		runner.AddCheck(doctor.NewPermissionCheck(store))
	}

	rep, err := runner.Run(doctorFix)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	format := report.FormatText
	if doctorJSON {
		format = report.FormatJSON
	}
	if !quiet || doctorJSON {
		if err := report.NewReporter(cmd.OutOrStdout(), format).Doctor(rep); err != nil {
			return err
		}
	}

	if rep.HasErrors() {
		return errors.NewSystemError(
			errors.Newf("doctor found %d error(s)", rep.Summary.Errors),
			"Review the failed checks above",
		)
	}
	return nil
}
