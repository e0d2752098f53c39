package report

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Report is the shared, append-only collection of events for one dispatch cycle.
// It is safe for concurrent use.
type Report struct {
	mu      sync.Mutex
	events  []Event
	order   map[string]int
	started time.Time
}

// New creates an empty report stamped with the current time.
func New() *Report {
	return &Report{started: time.Now().UTC()}
}

// Add records an event. Events without a source are attributed to "unknown".
func (r *Report) Add(e Event) {
	if e.Source == "" {
		e.Source = "unknown"
	}
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// SetOrder fixes the position of sources when events are listed.
// Sources not named here follow the named ones in alphabetical order.
func (r *Report) SetOrder(sources []string) {
	order := make(map[string]int, len(sources))
	for i, s := range sources {
		if _, ok := order[s]; !ok {
			order[s] = i
		}
	}
	r.mu.Lock()
	r.order = order
	r.mu.Unlock()
}

// Len returns the number of recorded events.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Started returns the time the report was created.
func (r *Report) Started() time.Time {
	return r.started
}

// Events returns a copy of the recorded events grouped by source, in the
// order given to SetOrder or alphabetically by default.
// Events from the same source keep the order they were recorded in.
func (r *Report) Events() []Event {
	r.mu.Lock()
	events := slices.Clone(r.events)
	order := r.order
	r.mu.Unlock()

	slices.SortStableFunc(events, func(a, b Event) int {
		ra, oka := order[a.Source]
		rb, okb := order[b.Source]
		switch {
		case oka && okb:
			return cmp.Compare(ra, rb)
		case oka:
			return -1
		case okb:
			return 1
		default:
			return cmp.Compare(a.Source, b.Source)
		}
	})
	return events
}

// Sources returns the distinct event sources in listing order.
func (r *Report) Sources() []string {
	var sources []string
	for _, e := range r.Events() {
		if len(sources) == 0 || sources[len(sources)-1] != e.Source {
			sources = append(sources, e.Source)
		}
	}
	return sources
}

// Summary counts events by state.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Passed   int `json:"passed" yaml:"passed"`
	Failures int `json:"failures" yaml:"failures"`
	Errors   int `json:"errors" yaml:"errors"`
	Skipped  int `json:"skipped" yaml:"skipped"`
}

// Summarize returns event counts for the whole report.
func (r *Report) Summarize() Summary {
	return summarize(r.Events())
}

// HasFailures returns true if any event is a failure or error.
func (r *Report) HasFailures() bool {
	s := r.Summarize()
	return s.Failures+s.Errors > 0
}

func summarize(events []Event) Summary {
	s := Summary{Total: len(events)}
	for _, e := range events {
		switch e.State {
		case StatePassed:
			s.Passed++
		case StateFailure:
			s.Failures++
		case StateError:
			s.Errors++
		case StateSkipped:
			s.Skipped++
		}
	}
	return s
}

// bySource groups already sorted events by source.
func bySource(events []Event) [][]Event {
	var groups [][]Event
	for i, e := range events {
		if i == 0 || events[i-1].Source != e.Source {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], e)
	}
	return groups
}
