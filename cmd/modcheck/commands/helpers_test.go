package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/modcheck/internal/runner"
)

const validMetadata = `{
  "name": "acme-ntp",
  "version": "1.2.0",
  "author": "acme",
  "license": "Apache-2.0",
  "summary": "Manages NTP",
  "source": "https://example.com/acme-ntp",
  "dependencies": []
}
`

// fakeRunner resolves every tool and answers every command with stdout.
type fakeRunner struct {
	stdout  string
	code    int
	lookErr error

	mu       sync.Mutex
	commands []runner.Command
}

func (f *fakeRunner) Run(_ context.Context, cmd runner.Command) (*runner.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	return &runner.Result{Stdout: []byte(f.stdout), ExitCode: f.code}, nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) calls() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.commands...)
}

// useRunner swaps the runner seam for the duration of the test.
func useRunner(t *testing.T, r runner.Runner) {
	t.Helper()
	orig := newRunner
	newRunner = func() runner.Runner { return r }
	t.Cleanup(func() { newRunner = orig })
}

// isolateConfig points the user config dir at an empty temp dir.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	return dir
}

// setupModule creates a module with the given metadata.json and enters it.
func setupModule(t *testing.T, metadata string) string {
	t.Helper()
	isolateConfig(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(metadata), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	return dir
}

// resetFlags restores every flag variable to its default.
func resetFlags() {
	verbosity, quiet, logFormat, logFile, configFile, colorFlag = 0, false, "text", "", "", ""
	validateList, validateAutoCorrect, validateParallel, validateInteractive = false, false, false, false
	validateFormats = nil
	doctorJSON, doctorQuiet, doctorVerbose = false, false, false
	configInitUser, configInitForce = false, false
	validateCmd.Flags().Lookup("format").Changed = false
	_ = genDocCmd.Flags().Set("dir", "")
}

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(t.Context())
	return out.String(), errOut.String(), err
}
