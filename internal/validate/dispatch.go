package validate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/report"
)

// Environment checks the preconditions for running validators.
type Environment interface {
	// EnsureInModule returns the module root or an error if the working
	// directory is not inside a module.
	EnsureInModule() (string, error)
	// EnsureToolchain verifies that every named tool is available.
	EnsureToolchain(tools []string) error
}

// Request is one validate invocation.
type Request struct {
	// Args are the positional arguments: validators and targets.
	Args        []string
	List        bool
	AutoCorrect bool
	Parallel    bool
	// Formats defaults to text on stdout when empty.
	Formats []report.FormatSpec
}

// Plan is a prepared run: validators chosen and preconditions met.
type Plan struct {
	Validators []Validator
	Options    Options
	Formats    []report.FormatSpec
}

// Outcome is a completed invocation that ran no validators.
type Outcome struct {
	Code int
}

// Dispatcher ties selection, preconditions, execution and rendering together.
type Dispatcher struct {
	Registry *Registry
	Env      Environment
	Logger   *slog.Logger
	// Out receives the --list output.
	Out io.Writer
	// Outputs resolves report targets.
	Outputs report.Outputs
	// Help prints command help for a bare "help" argument.
	Help func() error
	// Progress creates the parallel progress indicator.
	Progress ProgressFunc
}

// Prepare handles early-exit requests and precondition checks.
// Exactly one of the returned plan or outcome is non-nil when err is nil.
func (d *Dispatcher) Prepare(req Request) (*Plan, *Outcome, error) {
	if slices.Equal(req.Args, []string{"help"}) {
		if d.Help != nil {
			if err := d.Help(); err != nil {
				return nil, nil, err
			}
		}
		return nil, &Outcome{Code: errors.ExitSuccess}, nil
	}

	if req.List {
		fmt.Fprintf(d.Out, "Available validators: %s\n", strings.Join(d.Registry.Names(), ", "))
		return nil, &Outcome{Code: errors.ExitSuccess}, nil
	}

	if _, err := d.Env.EnsureInModule(); err != nil {
		return nil, nil, preconditionError(err)
	}

	sel := Select(req.Args, d.Registry, d.Logger)

	formats := req.Formats
	if len(formats) == 0 {
		formats = report.DefaultFormats()
	}

	if err := d.Env.EnsureToolchain(Requirements(sel.Validators)); err != nil {
		return nil, nil, preconditionError(err)
	}

	// The toolchain check may have touched the filesystem; confirm the root again.
	root, err := d.Env.EnsureInModule()
	if err != nil {
		return nil, nil, preconditionError(err)
	}

	return &Plan{
		Validators: sel.Validators,
		Formats:    slices.Clone(formats),
		Options: Options{
			Targets:     sel.Targets,
			AutoCorrect: req.AutoCorrect,
			Parallel:    req.Parallel,
			Root:        root,
		},
	}, nil, nil
}

// Execute runs a plan, renders the report and returns the exit code.
func (d *Dispatcher) Execute(ctx context.Context, plan *Plan) int {
	r := report.New()
	r.SetOrder(Sources(plan.Validators))
	coord := &Coordinator{Logger: d.Logger, Progress: d.Progress}

	d.Logger.Debug("dispatching validators",
		"validators", strings.Join(Names(plan.Validators), ","),
		"parallel", plan.Options.Parallel,
		"root", plan.Options.Root)

	code := coord.Run(ctx, plan.Validators, r, plan.Options)

	for _, spec := range plan.Formats {
		if err := r.WriteTo(spec, d.Outputs); err != nil {
			d.Logger.Error("failed to write report", "format", spec.String(), "error", err)
			if code == errors.ExitSuccess {
				code = errors.ExitSystem
			}
		}
	}
	return code
}

// Run prepares and executes req.
func (d *Dispatcher) Run(ctx context.Context, req Request) (int, error) {
	plan, outcome, err := d.Prepare(req)
	if err != nil {
		return errors.ExitCode(err), err
	}
	if outcome != nil {
		return outcome.Code, nil
	}
	return d.Execute(ctx, plan), nil
}

func preconditionError(err error) error {
	return errors.NewConfigError(err)
}
