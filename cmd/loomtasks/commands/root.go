// Package commands implements the CLI commands for loomtasks.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ellemenno/loomtasks/cmd"
	"github.com/ellemenno/loomtasks/internal/config"
	"github.com/ellemenno/loomtasks/internal/errors"
	"github.com/ellemenno/loomtasks/internal/logging"
)

// debugEnv enables debug (1, true) or trace (2) logging without -v flags.
const debugEnv = "LOOMTASKS_DEBUG"

var (
	// verbosity holds the count of -v flags.
	verbosity int

	// quiet holds the value of the -q/--quiet flag.
	quiet bool

	// logFormat holds the value of the --log-format flag.
	logFormat string

	// logFile holds the path to the log file.
	logFile string

	// sdkFlag overrides the SDK version for this invocation.
	sdkFlag string

	// projectDir is the library project root (-C).
	projectDir string

	// platformFlag overrides host detection, e.g. "osx-x64".
	platformFlag string

	// exitFunc terminates the process after a failed tool run.
	exitFunc = os.Exit
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&sdkFlag, "sdk", "",
		"loom sdk version to use (overrides loom.config)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".",
		"library project directory")
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "",
		"host platform label, e.g. osx-x64 (default: detected)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("loomtasks version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "loomtasks",
	Short: "Build, run and release Loom libraries",
	Long: `loomtasks drives the Loom SDK for a library project.

It locates installed SDKs under ~/.loom/sdks, runs the SDK tools for the
host platform, keeps the library version declared in source and the
README's download and install references in step, and reads and writes
loom.config files.

The SDK is chosen from --sdk, then the project's loom.config, then the
sdk_version setting.`,
	Example: `  # Start a project
  loomtasks init --lib Foo --sdk sprint34

  # Bump the library version and README
  loomtasks lib version bump minor

  # Build and run
  loomtasks compile && loomtasks run

  See Also: loomtasks doctor, loomtasks sdk`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		config.Init()
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			switch os.Getenv(debugEnv) {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primary = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	case logging.FormatText:
		primary = logging.NewHandler(cmd.ErrOrStderr(), opts)
	default:
		return errors.NewUserError(errors.Newf("unknown log format %q", logFormat), "use --log-format text or json")
	}

	var fileHandler slog.Handler
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "check the --log-file path")
		}
		fileHandler = slog.NewJSONHandler(f, opts)
	}

	logger := slog.New(logging.Tee(primary, fileHandler))
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// PrintError writes err and any suggestion for the user.
func PrintError(w io.Writer, err error) {
	msg := "Error: " + err.Error()
	if logging.SupportsColor(w) {
		msg = color.New(color.FgRed).Sprint(msg)
	}
	fmt.Fprintln(w, msg)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(w, "  "+exitErr.Suggestion)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
