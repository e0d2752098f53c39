package doctor

import (
	"os"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/paths"
	"github.com/thoreinstein/modcheck/internal/runner"
)

// Preflight checks the preconditions for running validators.
// It satisfies validate.Environment.
type Preflight struct {
	// Start is the directory module discovery begins at. Empty means the working directory.
	Start  string
	Runner runner.Runner
}

// NewPreflight creates a Preflight rooted at the working directory.
func NewPreflight(run runner.Runner) *Preflight {
	return &Preflight{Runner: run}
}

// EnsureInModule returns the module root containing Start.
func (p *Preflight) EnsureInModule() (string, error) {
	start := p.Start
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "getting working directory")
		}
		start = wd
	}

	root, err := paths.FindModuleRoot(start)
	if err != nil {
		if errors.Is(err, paths.ErrNoModuleRoot) {
			return "", errors.Wrapf(errors.ErrNotInModule, "no %s found in %s or any parent", paths.ModuleMarker, start)
		}
		return "", err
	}
	return root, nil
}

// EnsureToolchain verifies that every tool resolves to an executable.
func (p *Preflight) EnsureToolchain(tools []string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := p.Runner.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return errors.Wrapf(errors.ErrToolchainMissing, "%s", strings.Join(missing, ", "))
	}
	return nil
}
