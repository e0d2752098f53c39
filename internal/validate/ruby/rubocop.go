// Package ruby validates Ruby sources in a module with rubocop.
package ruby

import (
	"bytes"
	"context"
	"strings"

	"github.com/goccy/go-json"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/report"
	"github.com/thoreinstein/modcheck/internal/runner"
	"github.com/thoreinstein/modcheck/internal/validate"
)

const (
	// Name is the name of the ruby validator group.
	Name = "ruby"

	// RubocopName is the name of the rubocop validator.
	RubocopName = "rubocop"
)

// rubyPatterns name the files rubocop is given from explicit targets.
var rubyPatterns = []string{"*.rb", "*.rake", "*.gemspec", "Gemfile", "Rakefile"}

type rubocopOutput struct {
	Files []struct {
		Path     string `json:"path"`
		Offenses []struct {
			Severity  string `json:"severity"`
			Message   string `json:"message"`
			CopName   string `json:"cop_name"`
			Corrected bool   `json:"corrected"`
			Location  struct {
				Line   int `json:"line"`
				Column int `json:"column"`
			} `json:"location"`
		} `json:"offenses"`
	} `json:"files"`
}

// Rubocop runs rubocop and converts its offenses into events.
type Rubocop struct {
	run        runner.Runner
	executable string
}

// NewRubocop returns a rubocop validator. An empty executable means "rubocop" on PATH.
func NewRubocop(run runner.Runner, executable string) *Rubocop {
	if executable == "" {
		executable = RubocopName
	}
	return &Rubocop{run: run, executable: executable}
}

// New returns the ruby validator group.
func New(run runner.Runner, executable string) *validate.Chain {
	return validate.NewChain(Name, NewRubocop(run, executable))
}

// Name implements validate.Validator.
func (*Rubocop) Name() string { return RubocopName }

// Requires implements validate.Requirer.
func (r *Rubocop) Requires() []string { return []string{r.executable} }

// Args returns the rubocop command line arguments for opts.
func (r *Rubocop) Args(opts validate.Options) []string {
	args := []string{"--format", "json"}
	if opts.AutoCorrect {
		args = append(args, "--auto-correct")
	}
	if len(opts.Targets) == 0 {
		return append(args, ".")
	}
	return append(args, opts.Targets...)
}

// Invoke implements validate.Validator.
func (r *Rubocop) Invoke(ctx context.Context, rep *report.Report, opts validate.Options) int {
	logger := logging.FromContext(ctx).With(logging.SourceKey, RubocopName)

	if len(opts.Targets) > 0 {
		set, err := validate.MatchTargets(opts, rubyPatterns...)
		if err != nil {
			rep.Add(report.Event{
				Source:   RubocopName,
				State:    report.StateError,
				Severity: report.SeverityError,
				Message:  err.Error(),
			})
			return 1
		}
		for _, missing := range set.Missing {
			rep.Add(report.Event{
				Source:  RubocopName,
				File:    missing,
				State:   report.StateSkipped,
				Message: "file does not exist",
			})
		}
		if len(set.Files) == 0 {
			logger.Debug("no ruby targets", "targets", strings.Join(opts.Targets, ","))
			rep.Add(report.Event{Source: RubocopName, State: report.StateSkipped, Message: "no ruby files to check"})
			return 0
		}
		opts.Targets = set.Files
	}

	res, err := r.run.Run(ctx, runner.Command{
		Name: r.executable,
		Args: r.Args(opts),
		Dir:  opts.Root,
	})
	if err != nil {
		msg := "failed to run rubocop: " + err.Error()
		if errors.Is(err, runner.ErrNotFound) {
			msg = "rubocop is not installed: " + err.Error()
		}
		rep.Add(report.Event{
			Source:   RubocopName,
			State:    report.StateError,
			Severity: report.SeverityError,
			Message:  msg,
		})
		return errors.ExitSystem
	}

	var out rubocopOutput
	if err := json.Unmarshal(bytes.TrimSpace(res.Stdout), &out); err != nil {
		logger.Debug("undecodable rubocop output", "stdout", string(res.Stdout), "stderr", string(res.Stderr))
		msg := strings.TrimSpace(string(res.Stderr))
		if msg == "" {
			msg = "unable to parse rubocop output: " + err.Error()
		}
		rep.Add(report.Event{
			Source:   RubocopName,
			State:    report.StateError,
			Severity: report.SeverityError,
			Message:  msg,
		})
		return 1
	}

	for _, f := range out.Files {
		if len(f.Offenses) == 0 {
			rep.Add(report.Event{Source: RubocopName, File: f.Path, State: report.StatePassed})
			continue
		}
		for _, o := range f.Offenses {
			e := report.Event{
				Source:   RubocopName,
				File:     f.Path,
				Line:     o.Location.Line,
				Column:   o.Location.Column,
				Test:     o.CopName,
				State:    report.StateFailure,
				Severity: mapSeverity(o.Severity),
				Message:  o.Message,
			}
			if o.Corrected {
				e.State = report.StatePassed
				e.Severity = report.SeverityInfo
				e.Message = "[Corrected] " + o.Message
			}
			rep.Add(e)
		}
	}

	logger.Debug("rubocop finished", "files", len(out.Files), "exit", res.ExitCode)
	return res.ExitCode
}

func mapSeverity(s string) report.Severity {
	switch s {
	case "error", "fatal":
		return report.SeverityError
	case "refactor", "convention", "warning":
		return report.SeverityWarning
	default:
		return report.SeverityInfo
	}
}
