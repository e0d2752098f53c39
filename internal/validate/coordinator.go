package validate

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/report"
)

// Progress is advanced as parallel validators finish.
type Progress interface {
	Increment()
	Success()
	Error()
}

// ProgressFunc creates a Progress sized to total units.
type ProgressFunc func(total int) Progress

// Coordinator runs a selection of validators against a shared report.
type Coordinator struct {
	Logger *slog.Logger
	// Progress is used in parallel mode. Nil disables progress output.
	Progress ProgressFunc
}

// Run invokes vs and returns the aggregated exit code.
//
// Sequentially, validators run in order and the first nonzero code stops the
// run. In parallel, every validator runs in its own goroutine and the largest
// code is returned. Neither mode cancels ctx.
func (c *Coordinator) Run(ctx context.Context, vs []Validator, r *report.Report, opts Options) int {
	if opts.Parallel {
		return c.runParallel(ctx, vs, r, opts)
	}
	return c.runSequential(ctx, vs, r, opts)
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return logging.FromContext(context.Background())
}

func (c *Coordinator) runSequential(ctx context.Context, vs []Validator, r *report.Report, opts Options) int {
	code := 0
	for _, v := range vs {
		code = c.invoke(ctx, v, r, opts)
		if code != 0 {
			c.logger().Debug("stopping after failed validator", logging.SourceKey, v.Name(), "code", code)
			break
		}
	}
	return code
}

func (c *Coordinator) runParallel(ctx context.Context, vs []Validator, r *report.Report, opts Options) int {
	var progress Progress
	if c.Progress != nil {
		progress = c.Progress(len(vs))
	}

	var (
		mu    sync.Mutex
		codes []int
		g     errgroup.Group
	)
	for _, v := range vs {
		g.Go(func() error {
			code := c.invoke(ctx, v, r, opts)
			mu.Lock()
			codes = append(codes, code)
			mu.Unlock()
			if progress != nil {
				progress.Increment()
			}
			return nil
		})
	}
	_ = g.Wait()

	code := 0
	if len(codes) > 0 {
		code = slices.Max(codes)
	}

	if progress != nil {
		if code == 0 {
			progress.Success()
		} else {
			progress.Error()
		}
	}
	return code
}

// invoke runs one validator, turning a panic into an error event and code 1.
func (c *Coordinator) invoke(ctx context.Context, v Validator, r *report.Report, opts Options) (code int) {
	logger := c.logger().With(logging.SourceKey, v.Name())
	defer func() {
		if p := recover(); p != nil {
			logger.Error("validator panicked", "panic", p)
			logger.Debug("panic stack", "stack", string(debug.Stack()))
			r.Add(report.Event{
				Source:   v.Name(),
				State:    report.StateError,
				Severity: report.SeverityError,
				Message:  fmt.Sprintf("validator panicked: %v", p),
			})
			code = 1
		}
	}()

	logger.Debug("invoking validator", "targets", len(opts.Targets))
	code = v.Invoke(ctx, r, opts.clone())
	logger.Debug("validator finished", "code", code)
	return code
}
