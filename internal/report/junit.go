package report

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/thoreinstein/modcheck/internal/errors"
)

type junitSuites struct {
	XMLName  xml.Name     `xml:"testsuites"`
	Tests    int          `xml:"tests,attr"`
	Failures int          `xml:"failures,attr"`
	Errors   int          `xml:"errors,attr"`
	Skipped  int          `xml:"skipped,attr"`
	Suites   []junitSuite `xml:"testsuite"`
}

type junitSuite struct {
	Name      string      `xml:"name,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Errors    int         `xml:"errors,attr"`
	Skipped   int         `xml:"skipped,attr"`
	Timestamp string      `xml:"timestamp,attr"`
	Cases     []junitCase `xml:"testcase"`
}

type junitCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *junitProblem `xml:"failure,omitempty"`
	Error     *junitProblem `xml:"error,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

type junitProblem struct {
	Type    string `xml:"type,attr"`
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

func renderJUnit(w io.Writer, started time.Time, events []Event) error {
	total := summarize(events)
	doc := junitSuites{
		Tests:    total.Total,
		Failures: total.Failures,
		Errors:   total.Errors,
		Skipped:  total.Skipped,
	}

	for _, group := range bySource(events) {
		s := summarize(group)
		suite := junitSuite{
			Name:      group[0].Source,
			Tests:     s.Total,
			Failures:  s.Failures,
			Errors:    s.Errors,
			Skipped:   s.Skipped,
			Timestamp: started.Format(time.RFC3339),
		}
		for _, e := range group {
			suite.Cases = append(suite.Cases, junitTestCase(e))
		}
		doc.Suites = append(doc.Suites, suite)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return errors.Wrap(err, "writing JUnit report")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding JUnit report")
	}
	_, err := io.WriteString(w, "\n")
	return errors.Wrap(err, "writing JUnit report")
}

func junitTestCase(e Event) junitCase {
	name := e.Test
	if loc := e.Location(); loc != "" {
		if name != "" {
			name = loc + " " + name
		} else {
			name = loc
		}
	}
	if name == "" {
		name = e.Source
	}

	c := junitCase{Name: name, Classname: e.Source}
	problem := &junitProblem{Type: e.Severity.String(), Message: e.Message, Body: e.String()}
	switch e.State {
	case StateFailure:
		c.Failure = problem
	case StateError:
		c.Error = problem
	case StateSkipped:
		c.Skipped = &junitSkipped{Message: e.Message}
	}
	return c
}
