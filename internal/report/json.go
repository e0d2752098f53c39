package report

import (
	"io"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// document is the structured form shared by the json and yaml renderers.
type document struct {
	Started time.Time `json:"started" yaml:"started"`
	Summary Summary   `json:"summary" yaml:"summary"`
	Events  []Event   `json:"events" yaml:"events"`
}

func newDocument(started time.Time, events []Event) document {
	if events == nil {
		events = []Event{}
	}
	return document{Started: started, Summary: summarize(events), Events: events}
}

func renderJSON(w io.Writer, started time.Time, events []Event) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(newDocument(started, events)), "encoding JSON report")
}

func renderYAML(w io.Writer, started time.Time, events []Event) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newDocument(started, events)); err != nil {
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "encoding YAML report")
}
