// Package commands implements the CLI commands for modcheck.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/modcheck/cmd"
	"github.com/thoreinstein/modcheck/internal/config"
	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/paths"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// colorFlag holds the value of the --color flag.
var colorFlag string

// configFile holds the value of the --config flag.
var configFile string

// loadedConfig is the configuration read during initialization.
var loadedConfig *config.Config

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
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "",
		"color output: auto, always, never (default from config, then auto)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: .modcheck/config.yaml, then ~/.config/modcheck/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("modcheck version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	viper.Reset()

	var root string
	if wd, err := os.Getwd(); err == nil {
		root, _ = paths.FindModuleRoot(wd)
	}
	config.Init(root)

	// Capture load errors for later reporting
	loadedConfig, configLoadErr = config.Load(configFile)
}

// currentConfig returns the loaded configuration, or defaults.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

var rootCmd = &cobra.Command{
	Use:   "modcheck",
	Short: "Run validators against a module and report the results",
	Long: `modcheck selects, runs and aggregates validators against a module: a
directory tree rooted at a metadata.json file.

Validators run sequentially and stop at the first failure, or in parallel
where every validator runs and the worst exit code wins. The combined
results are rendered in one or more report formats.`,
	Example: `  # Run every validator
  modcheck validate

  # Run only the metadata checks as JUnit for CI
  modcheck validate metadata --format junit:reports/validate.xml

  # Check the environment
  modcheck doctor

  See Also: modcheck validate, modcheck doctor, modcheck config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("MODCHECK_DEBUG"); ok {
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

	mode := currentConfig().Color
	if colorFlag != "" {
		mode = colorFlag
	}
	colors, err := logging.ParseColorMode(mode)
	if err != nil {
		return errors.NewUserError(err, "Use --color auto, always or never")
	}
	logging.SetColorMode(colors)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	var fileHandler slog.Handler
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		fileHandler = slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		})
	}

	var handler slog.Handler = primaryHandler
	if multi := logging.NewMultiHandler(primaryHandler, fileHandler); multi.Len() > 1 {
		handler = multi
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

// PrintError writes err and its suggestion to w.
// Silent exit errors print nothing; the command already reported the outcome.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Silent {
			return
		}
		if exitErr.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			if exitErr.Err == nil {
				fmt.Fprintf(w, "Error: %s\n", exitErr.Suggestion)
			} else {
				fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
			}
		}
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
