// Package commands implements the CLI commands for workspace.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/workspace/cmd"
	"github.com/thoreinstein/workspace/cmd/workspace/commands/backup"
	"github.com/thoreinstein/workspace/cmd/workspace/commands/flags"
	"github.com/thoreinstein/workspace/cmd/workspace/commands/mcp"
	"github.com/thoreinstein/workspace/internal/config"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/logging"
)

// debugEnv raises verbosity when no -v flag is given.
const debugEnv = "WORKSPACE_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/workspace/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("workspace version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(mcp.Cmd)
	rootCmd.AddCommand(backup.Cmd)
}

func initConfig() {
	config.Init()
	cfg, err := config.Load(configFile)
	configLoadErr = err
	if err == nil {
		flags.SetConfig(cfg)
	}
}

var rootCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Register the workspace MCP server with coding-agent clients",
	Long: `workspace registers its MCP server with AI coding-agent clients.

It edits each client's own configuration store in place, preserving every
setting and server it does not own, and backs the store up before writing.
Supported clients are Claude Code (claude-code), Codex (codex), and
Gemini CLI (gemini-cli).`,
	Example: `  # Register with Claude Code
  workspace mcp install

  # Register with Codex for the project in ~/src/notes
  workspace mcp install --client codex --path ~/src/notes

  # Show registration status for every client
  workspace mcp status`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		if f := config.UsedFile(); f != "" {
			logging.FromContext(cmd.Context()).Debug("loaded config", "path", f)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "Pass only one of -q and -v")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(debugEnv); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	handlers := []slog.Handler{
		logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}.NewHandler(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		// File output uses JSON format
		handlers = append(handlers, logging.Config{Level: level, Format: logging.FormatJSON, Output: f}.NewHandler())
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// PrintError writes err and any suggestion or hint for the user.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("Error:"), err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(w, color.New(color.FgHiBlack).Sprint(exitErr.Suggestion))
	}
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintln(w, color.New(color.FgHiBlack).Sprint(hint))
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
