package mcp

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/workspace/cmd/workspace/commands/flags"
	"github.com/thoreinstein/workspace/internal/backup"
	"github.com/thoreinstein/workspace/internal/cli"
	cliprompt "github.com/thoreinstein/workspace/internal/cli/prompt"
	"github.com/thoreinstein/workspace/internal/config"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
	"github.com/thoreinstein/workspace/internal/registration"
	"github.com/thoreinstein/workspace/internal/report"
)

// registrationFlags are the flags shared by install and uninstall.
type registrationFlags struct {
	client       string
	path         string
	scope        string
	strict       bool
	includeAgent bool
	noBackup     bool
	interactive  bool
	json         bool
}

func (f *registrationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.client, "client", string(platform.DefaultKind),
		"target client: "+strings.Join(platform.KindNames(), ", "))
	cmd.Flags().StringVar(&f.path, "path", "",
		"project directory the server runs in (default: current directory)")
	cmd.Flags().StringVar(&f.scope, "scope", string(platform.ScopeUser),
		"configuration scope: user, project")
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"fail when there is nothing to change")
	cmd.Flags().BoolVar(&f.includeAgent, "include-agent", false,
		"also manage the Claude Code agent file in <path>/.claude/agents")
	cmd.Flags().BoolVar(&f.noBackup, "no-backup", false,
		"skip the configuration backup")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false,
		"choose the client interactively")
	cmd.Flags().BoolVar(&f.json, "json", false,
		"output as JSON")

	_ = cmd.RegisterFlagCompletionFunc("client", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return platform.KindNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("scope", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(platform.ScopeUser), string(platform.ScopeProject)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// runRegistration resolves the flags and configuration into a dispatcher run.
func runRegistration(cmd *cobra.Command, f *registrationFlags, action registration.Action) error {
	cfg := flags.Config()

	scope, err := platform.ParseScope(f.scope)
	if err != nil {
		return errors.NewUserError(err, "Use --scope user or --scope project")
	}
	projectPath, err := paths.Absolute(f.path)
	if err != nil {
		return errors.NewUserError(err, "Check the --path value")
	}
	opts := platform.Options{Scope: scope, ProjectRoot: projectPath}

	kind, err := resolveClient(cmd, f, cfg, opts)
	if err != nil {
		return cli.ExitError(err)
	}

	server, err := cfg.ServerFor(projectPath)
	if err != nil {
		return errors.NewConfigError(err)
	}

	var backups *backup.Manager
	if cfg.Backup.Enabled && !f.noBackup {
		backups = backup.NewManager(
			backup.WithBackupDir(cfg.Backup.Dir),
			backup.WithRetentionCount(cfg.Backup.Retention),
			backup.WithToolVersion(cmd.Root().Version),
		)
	}

	d := registration.New(
		registration.WithStoreOptions(opts),
		registration.WithServer(server),
		registration.WithBackups(backups),
		registration.WithLockDir(cfg.LockDir),
		registration.WithLockTimeout(cfg.LockTimeout),
		registration.WithStrict(f.strict),
		registration.WithAgent(f.includeAgent),
	)

	res, runErr := d.Run(cmd.Context(), kind, action)

	format := report.FormatText
	if f.json {
		format = report.FormatJSON
	}
	// Text output for failures goes through the error path
	if (runErr == nil && !quiet(cmd)) || f.json {
		if err := report.NewReporter(cmd.OutOrStdout(), format).Result(res); err != nil {
			return err
		}
	}
	if runErr != nil {
		return cli.ExitError(runErr)
	}
	return nil
}

// resolveClient picks the client interactively or from --client, whose
// default is claude-code.
func resolveClient(cmd *cobra.Command, f *registrationFlags, cfg *config.Config, opts platform.Options) (platform.Kind, error) {
	if f.interactive {
		detections := platform.DetectAll(registration.NewTable(), opts, cfg.Server.Name)
		if in, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(in.Fd())) {
			return cliprompt.FuzzySelectClient(detections)
		}
		return cliprompt.NewSelectorWithIO(cmd.InOrStdin(), cmd.ErrOrStderr()).SelectClient(detections)
	}

	return platform.ParseKind(f.client)
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
