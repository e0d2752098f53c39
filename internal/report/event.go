package report

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// Severity represents the impact of a finding.
type Severity int

const (
	// SeverityInfo indicates an informational note.
	SeverityInfo Severity = iota
	// SeverityWarning indicates a recommended but non-blocking issue.
	SeverityWarning
	// SeverityError indicates a blocking problem.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return errors.Newf("unknown severity %q", b)
	}
	return nil
}

// State is the outcome of the check an event describes.
type State int

const (
	// StatePassed means the check ran and found nothing.
	StatePassed State = iota
	// StateFailure means the check found a problem in the target.
	StateFailure
	// StateError means the check itself could not run.
	StateError
	// StateSkipped means the check did not apply.
	StateSkipped
)

func (s State) String() string {
	switch s {
	case StatePassed:
		return "passed"
	case StateFailure:
		return "failure"
	case StateError:
		return "error"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "passed":
		*s = StatePassed
	case "failure":
		*s = StateFailure
	case "error":
		*s = StateError
	case "skipped":
		*s = StateSkipped
	default:
		return errors.Newf("unknown state %q", b)
	}
	return nil
}

// Event is a single finding recorded by a validator.
type Event struct {
	// Source is the name of the validator that recorded the event.
	Source string `json:"source" yaml:"source"`
	// File is the path of the file the event refers to, relative to the module root.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
	// Line and Column locate the finding; zero means unknown.
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
	// Test names the rule or check that produced the event.
	Test     string   `json:"test,omitempty" yaml:"test,omitempty"`
	State    State    `json:"state" yaml:"state"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// Failed reports whether the event represents a failure or error.
func (e Event) Failed() bool {
	return e.State == StateFailure || e.State == StateError
}

// Location returns file:line:column, omitting unknown parts.
func (e Event) Location() string {
	if e.File == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&sb, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&sb, ":%d", e.Column)
		}
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(e.Source)
	if loc := e.Location(); loc != "" {
		sb.WriteString(": ")
		sb.WriteString(loc)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Test != "" {
		fmt.Fprintf(&sb, " (%s)", e.Test)
	}
	return sb.String()
}
