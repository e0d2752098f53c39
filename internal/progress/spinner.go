// Package progress shows a progress indicator while validators run in parallel.
package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/thoreinstein/modcheck/internal/logging"
)

var (
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	dim     = lipgloss.Color("#6B7280")

	passStyle  = lipgloss.NewStyle().Foreground(success)
	failStyle  = lipgloss.NewStyle().Foreground(danger)
	countStyle = lipgloss.NewStyle().Foreground(dim)
)

// Spinner reports progress over a fixed number of units.
// All methods are safe for concurrent use.
type Spinner struct {
	mu       sync.Mutex
	w        io.Writer
	message  string
	total    int
	done     int
	frame    int
	frames   spinner.Spinner
	animate  bool
	finished bool

	stop    chan struct{}
	stopped chan struct{}
}

// NewValidationSpinner starts a spinner for a parallel validator run.
func NewValidationSpinner(w io.Writer, total int) *Spinner {
	return New(w, fmt.Sprintf("Running %d validators in parallel", total), total)
}

// New starts a spinner with the given message. When w is a terminal the
// spinner animates in place; otherwise only the start and final lines are written.
func New(w io.Writer, message string, total int) *Spinner {
	s := &Spinner{
		w:       w,
		message: message,
		total:   total,
		frames:  spinner.Dot,
		animate: logging.IsTTY(w),
	}

	if !s.animate {
		fmt.Fprintln(w, message)
		return s
	}

	s.stop = make(chan struct{})
	s.stopped = make(chan struct{})
	s.draw()
	go s.loop()
	return s
}

func (s *Spinner) loop() {
	defer close(s.stopped)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.finished {
				s.frame = (s.frame + 1) % len(s.frames.Frames)
				s.draw()
			}
			s.mu.Unlock()
		}
	}
}

// draw renders the current frame. Callers hold s.mu, except New before the loop starts.
func (s *Spinner) draw() {
	fmt.Fprintf(s.w, "\r\033[K%s %s %s",
		s.frames.Frames[s.frame],
		s.message,
		countStyle.Render(fmt.Sprintf("(%d/%d)", s.done, s.total)))
}

// Increment records one finished unit.
func (s *Spinner) Increment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.done >= s.total {
		return
	}
	s.done++
	if s.animate {
		s.draw()
	}
}

// Done returns the number of finished units.
func (s *Spinner) Done() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Success stops the spinner with a success mark.
func (s *Spinner) Success() {
	s.finish(passStyle.Render("✓"))
}

// Error stops the spinner with a failure mark.
func (s *Spinner) Error() {
	s.finish(failStyle.Render("✗"))
}

// finish writes the terminal line once; later calls are no-ops.
func (s *Spinner) finish(mark string) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return
	}
	s.finished = true
	line := fmt.Sprintf("%s %s (%d/%d)", mark, s.message, s.done, s.total)
	if s.animate {
		fmt.Fprintf(s.w, "\r\033[K%s\n", line)
	} else {
		fmt.Fprintln(s.w, line)
	}
	s.mu.Unlock()

	if s.animate {
		close(s.stop)
		<-s.stopped
	}
}
