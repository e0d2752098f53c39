package report

import (
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/pkg/fileutil"
)

// Outputs resolves report targets to writers.
type Outputs struct {
	Stdout io.Writer
	Stderr io.Writer
	// Dir anchors relative file targets. Empty means the working directory.
	Dir string
}

// StdOutputs returns Outputs bound to the process streams.
func StdOutputs() Outputs {
	return Outputs{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Render writes the report in the given method to w.
// Color is used for text output only when color is true.
func (r *Report) Render(w io.Writer, m Method, color bool) error {
	events := r.Events()
	switch m {
	case MethodText:
		return renderText(w, events, color)
	case MethodJSON:
		return renderJSON(w, r.started, events)
	case MethodJUnit:
		return renderJUnit(w, r.started, events)
	case MethodYAML:
		return renderYAML(w, r.started, events)
	default:
		return errors.Wrapf(errors.ErrInvalidFormat, "unknown method %q", m)
	}
}

// WriteTo renders the report according to spec. File targets are written
// atomically so a failed render never leaves a truncated report behind.
func (r *Report) WriteTo(spec FormatSpec, out Outputs) error {
	switch spec.Target {
	case TargetStdout:
		return r.Render(out.Stdout, spec.Method, logging.SupportsColor(out.Stdout))
	case TargetStderr:
		return r.Render(out.Stderr, spec.Method, logging.SupportsColor(out.Stderr))
	}

	path := spec.Target
	if out.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(out.Dir, path)
	}

	f, err := fileutil.CreateAtomic(path, 0o644)
	if err != nil {
		return errors.Wrapf(err, "opening report target %s", spec.Target)
	}
	if err := r.Render(f, spec.Method, false); err != nil {
		f.Abort()
		return errors.Wrapf(err, "rendering %s report", spec.Method)
	}
	return errors.Wrapf(f.Commit(), "writing report target %s", spec.Target)
}
