package validate

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/thoreinstein/modcheck/internal/report"
)

// Options is the immutable per-run configuration handed to every validator.
type Options struct {
	// Targets lists files or directories to validate. Empty means the
	// validator picks its own default scope.
	Targets []string
	// AutoCorrect asks validators to fix problems where they can.
	AutoCorrect bool
	// Parallel is set when validators run concurrently.
	Parallel bool
	// Root is the module root. Subprocesses run here and relative targets
	// resolve against it.
	Root string
}

// ResolveTargets returns Targets made absolute against Root.
func (o Options) ResolveTargets() []string {
	out := make([]string, 0, len(o.Targets))
	for _, t := range o.Targets {
		if !filepath.IsAbs(t) && o.Root != "" {
			t = filepath.Join(o.Root, t)
		}
		out = append(out, t)
	}
	return out
}

func (o Options) clone() Options {
	o.Targets = slices.Clone(o.Targets)
	return o
}

// Validator is a named unit of analysis.
//
// Invoke records findings into r and returns an exit code; 0 means success.
// Failures are reported as events and a nonzero code, never as panics or errors.
type Validator interface {
	Name() string
	Invoke(ctx context.Context, r *report.Report, opts Options) int
}

// Requirer is implemented by validators that shell out to external tools.
type Requirer interface {
	// Requires returns the executable names that must be available.
	Requires() []string
}

// Requirements collects the distinct tools required by vs in order.
func Requirements(vs []Validator) []string {
	var tools []string
	for _, v := range vs {
		req, ok := v.(Requirer)
		if !ok {
			continue
		}
		for _, tool := range req.Requires() {
			if !slices.Contains(tools, tool) {
				tools = append(tools, tool)
			}
		}
	}
	return tools
}

// Names returns the names of vs in order.
func Names(vs []Validator) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name()
	}
	return names
}

// Sources returns the names that vs record events under, expanding chains
// into their steps.
func Sources(vs []Validator) []string {
	var names []string
	for _, v := range vs {
		if c, ok := v.(*Chain); ok {
			names = append(names, Sources(c.Steps())...)
			continue
		}
		names = append(names, v.Name())
	}
	return names
}
