// Package runner executes external tools on behalf of validators.
package runner

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
)

// ErrNotFound is returned when a command's executable cannot be located.
var ErrNotFound = errors.New("executable not found")

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env entries are appended to the inherited environment.
	Env []string
}

// String returns the command line with arguments space-joined.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner runs external commands.
type Runner interface {
	// Run executes cmd and waits for it to exit. A non-zero exit status is
	// reported through Result.ExitCode, not as an error. An error means the
	// process could not be started or was interrupted.
	Run(ctx context.Context, cmd Command) (*Result, error)
	// LookPath resolves an executable name to a path.
	LookPath(name string) (string, error)
}

// Exec is the os/exec backed Runner.
type Exec struct{}

// New returns the default Runner.
func New() *Exec {
	return &Exec{}
}

// LookPath implements Runner.
func (*Exec) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", errors.Wrapf(ErrNotFound, "%s", name)
	}
	return path, nil
}

// Run implements Runner.
func (e *Exec) Run(ctx context.Context, c Command) (*Result, error) {
	if _, err := e.LookPath(c.Name); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger := logging.FromContext(ctx)
	logger.Debug("running command", "cmd", c.String(), "dir", c.Dir)

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr) && ctx.Err() == nil:
		res.ExitCode = exitErr.ExitCode()
	case ctx.Err() != nil:
		return res, errors.Wrapf(ctx.Err(), "%s interrupted", c.Name)
	default:
		return res, errors.Wrapf(err, "running %s", c.Name)
	}

	logger.Log(ctx, logging.LevelTrace, "command finished", "cmd", c.Name, "exit", res.ExitCode)
	return res, nil
}
