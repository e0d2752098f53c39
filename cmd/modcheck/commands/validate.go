package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/modcheck/internal/cli/prompt"
	"github.com/thoreinstein/modcheck/internal/config"
	"github.com/thoreinstein/modcheck/internal/doctor"
	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/progress"
	"github.com/thoreinstein/modcheck/internal/report"
	"github.com/thoreinstein/modcheck/internal/runner"
	"github.com/thoreinstein/modcheck/internal/validate"
	"github.com/thoreinstein/modcheck/internal/validate/metadata"
	"github.com/thoreinstein/modcheck/internal/validate/ruby"
)

var (
	validateList        bool
	validateAutoCorrect bool
	validateParallel    bool
	validateInteractive bool
	validateFormats     []string
)

// Seams replaced in tests.
var (
	newEnvironment = func(run runner.Runner) validate.Environment {
		return doctor.NewPreflight(run)
	}
	pickValidators = prompt.PickValidatorsDefault
	newRunner      = func() runner.Runner { return runner.New() }
)

func init() {
	validateCmd.Flags().BoolVar(&validateList, "list", false,
		"list the available validators")
	validateCmd.Flags().BoolVarP(&validateAutoCorrect, "auto-correct", "a", false,
		"automatically correct problems where possible")
	validateCmd.Flags().BoolVar(&validateParallel, "parallel", false,
		"run validators in parallel")
	validateCmd.Flags().BoolVarP(&validateInteractive, "interactive", "i", false,
		"pick validators interactively")
	validateCmd.Flags().StringArrayVarP(&validateFormats, "format", "f", nil,
		"report format as method[:target] (text, json, junit, yaml); repeatable")
	_ = validateCmd.Flags().MarkHidden("parallel")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [validators] [targets...]",
	Short: "Run validators against the module",
	Long: `Run one or more validators against the module in the current directory.

The first argument selects validators: a single name, or a comma separated
list. Anything else is treated as a target and every validator runs.
Remaining arguments are always targets.

Report formats take the form method[:target]. Targets are stdout, stderr or
a file path. The default is text on stdout.

Exit codes:
  0 - All validators passed
  >0 - The worst validator exit code`,
	Example: `  # List validators
  modcheck validate --list

  # Run metadata and ruby validators against two files
  modcheck validate metadata,ruby metadata.json lib/tasks/run.rb

  # Write a JUnit report alongside the text output
  modcheck validate -f text -f junit:reports/validate.xml

  See Also: modcheck doctor`,
	RunE: runValidate,
}

// newRegistry builds the ordered validator catalog.
func newRegistry(cfg *config.Config, run runner.Runner) *validate.Registry {
	return validate.MustRegistry(
		metadata.New(),
		ruby.New(run, cfg.Tool("rubocop")),
	)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	cfg := currentConfig()

	formats := cfg.Formats
	if cmd.Flags().Changed("format") {
		formats = validateFormats
	}
	specs, err := report.ParseFormats(formats)
	if err != nil {
		return errors.NewUserError(err,
			"Formats are method[:target] with method one of: "+strings.Join(methodNames(), ", "))
	}

	run := newRunner()
	reg := newRegistry(cfg, run)
	logger := logging.FromContext(cmd.Context())

	if validateInteractive && !validateList {
		picked, err := pickValidators(reg.Names())
		if err != nil {
			if errors.Is(err, errors.ErrSelectionCancelled) {
				logger.Info("no validators selected")
				return nil
			}
			return err
		}
		args = append([]string{strings.Join(picked, ",")}, args...)
	}

	d := &validate.Dispatcher{
		Registry: reg,
		Env:      newEnvironment(run),
		Logger:   logger,
		Out:      cmd.OutOrStdout(),
		Outputs: report.Outputs{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		},
		Help: cmd.Help,
		Progress: func(total int) validate.Progress {
			return progress.NewValidationSpinner(cmd.ErrOrStderr(), total)
		},
	}

	code, err := d.Run(cmd.Context(), validate.Request{
		Args:        args,
		List:        validateList,
		AutoCorrect: validateAutoCorrect || cfg.AutoCorrect,
		Parallel:    validateParallel || cfg.Parallel,
		Formats:     specs,
	})
	if err != nil {
		return err
	}
	if code != errors.ExitSuccess {
		return errors.NewSilentExit(code)
	}
	return nil
}

func methodNames() []string {
	methods := report.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return names
}
