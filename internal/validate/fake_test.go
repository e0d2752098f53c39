package validate

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/thoreinstein/modcheck/internal/report"
)

// fakeValidator records invocations and returns a fixed code.
type fakeValidator struct {
	name     string
	code     int
	panics   bool
	requires []string
	calls    atomic.Int32
	gotOpts  Options
	mu       sync.Mutex
	// started is closed on first invocation when non-nil.
	started chan struct{}
	// release blocks Invoke until closed when non-nil.
	release chan struct{}
}

func (f *fakeValidator) Name() string { return f.name }

func (f *fakeValidator) Invoke(_ context.Context, r *report.Report, opts Options) int {
	f.calls.Add(1)
	f.mu.Lock()
	f.gotOpts = opts
	f.mu.Unlock()
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.panics {
		panic("boom")
	}
	state := report.StatePassed
	if f.code != 0 {
		state = report.StateFailure
	}
	r.Add(report.Event{Source: f.name, State: state})
	return f.code
}

func (f *fakeValidator) options() Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gotOpts
}

type requiringValidator struct {
	*fakeValidator
}

func (r requiringValidator) Requires() []string { return r.requires }

// fakeProgress records terminal state.
type fakeProgress struct {
	mu        sync.Mutex
	total     int
	increment int
	success   int
	failed    int
}

func (p *fakeProgress) Increment() { p.mu.Lock(); p.increment++; p.mu.Unlock() }
func (p *fakeProgress) Success()   { p.mu.Lock(); p.success++; p.mu.Unlock() }
func (p *fakeProgress) Error()     { p.mu.Lock(); p.failed++; p.mu.Unlock() }

// fakeEnv is a scripted Environment.
type fakeEnv struct {
	root         string
	moduleErrs   []error
	toolchainErr error
	moduleCalls  int
	gotTools     []string
}

func (e *fakeEnv) EnsureInModule() (string, error) {
	i := e.moduleCalls
	e.moduleCalls++
	if i < len(e.moduleErrs) && e.moduleErrs[i] != nil {
		return "", e.moduleErrs[i]
	}
	return e.root, nil
}

func (e *fakeEnv) EnsureToolchain(tools []string) error {
	e.gotTools = tools
	return e.toolchainErr
}
