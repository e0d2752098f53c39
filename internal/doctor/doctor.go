// Package doctor diagnoses whether the environment can run module validation.
package doctor

import (
	"context"
	"time"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "module", "config").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run(ctx context.Context) *CheckResult
}

// Suite executes diagnostic checks in registration order.
type Suite struct {
	checks []Check
}

// NewSuite creates a suite holding checks.
func NewSuite(checks ...Check) *Suite {
	return &Suite{checks: append([]Check(nil), checks...)}
}

// Add registers a diagnostic check.
func (s *Suite) Add(c Check) {
	s.checks = append(s.checks, c)
}

// Checks returns the registered checks.
func (s *Suite) Checks() []Check {
	return s.checks
}

// Run executes all registered checks and returns a report.
func (s *Suite) Run(ctx context.Context) *Report {
	logger := logging.FromContext(ctx)
	rep := &Report{
		Timestamp: time.Now().UTC(),
		Results:   make([]*CheckResult, 0, len(s.checks)),
	}

	for _, check := range s.checks {
		result := check.Run(ctx)
		if result.Name == "" {
			result.Name = check.Name()
		}
		if result.Category == "" {
			result.Category = check.Category()
		}
		logger.Debug("doctor check finished", "check", result.Name, "status", result.Status.String())

		rep.Results = append(rep.Results, result)
		rep.Summary.add(result.Status)
	}

	return rep
}

// Report aggregates all check results with timing and summary.
type Report struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// ExitCode maps the report to a process exit code:
// errors give ExitSystem, warnings give ExitUser, anything else ExitSuccess.
func (r *Report) ExitCode() int {
	switch {
	case r.HasErrors():
		return errors.ExitSystem
	case r.HasWarnings():
		return errors.ExitUser
	default:
		return errors.ExitSuccess
	}
}
