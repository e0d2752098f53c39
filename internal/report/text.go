package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/modcheck/internal/errors"
)

type palette struct {
	ok, warn, fail, dim, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		ok:   color.New(color.FgGreen),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
		dim:  color.New(color.FgHiBlack),
		bold: color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.ok, p.warn, p.fail, p.dim, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func renderText(w io.Writer, events []Event, useColor bool) error {
	p := newPalette(useColor)
	var sb strings.Builder

	if len(events) == 0 {
		sb.WriteString(p.ok.Sprint("✓ No events recorded"))
		sb.WriteString("\n")
		_, err := io.WriteString(w, sb.String())
		return errors.Wrap(err, "writing text report")
	}

	for _, group := range bySource(events) {
		s := summarize(group)
		switch {
		case s.Failures+s.Errors > 0:
			sb.WriteString(p.fail.Sprint("✗ "))
		case s.Passed == 0 && s.Skipped == s.Total:
			sb.WriteString(p.dim.Sprint("- "))
		default:
			sb.WriteString(p.ok.Sprint("✓ "))
		}
		sb.WriteString(p.bold.Sprint(group[0].Source))
		sb.WriteString("\n")

		for _, e := range group {
			if e.State == StatePassed && e.Severity == SeverityInfo && e.Message == "" {
				continue
			}
			writeTextEvent(&sb, p, e)
		}
	}

	s := summarize(events)
	parts := []string{fmt.Sprintf("%d event(s)", s.Total)}
	if s.Failures > 0 {
		parts = append(parts, p.fail.Sprintf("%d failure(s)", s.Failures))
	}
	if s.Errors > 0 {
		parts = append(parts, p.fail.Sprintf("%d error(s)", s.Errors))
	}
	if s.Skipped > 0 {
		parts = append(parts, p.dim.Sprintf("%d skipped", s.Skipped))
	}
	fmt.Fprintf(&sb, "\n%s\n", strings.Join(parts, ", "))

	_, err := io.WriteString(w, sb.String())
	return errors.Wrap(err, "writing text report")
}

func writeTextEvent(sb *strings.Builder, p palette, e Event) {
	// Format:  • location: message (test) [severity]
	sb.WriteString("  • ")
	if loc := e.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	msg := e.Message
	if msg == "" {
		msg = e.State.String()
	}
	sb.WriteString(msg)
	if e.Test != "" {
		sb.WriteString(" ")
		sb.WriteString(p.dim.Sprintf("(%s)", e.Test))
	}

	sev := p.dim
	switch {
	case e.Severity == SeverityError:
		sev = p.fail
	case e.Severity == SeverityWarning:
		sev = p.warn
	}
	sb.WriteString(" ")
	sb.WriteString(sev.Sprintf("[%s]", e.Severity))
	sb.WriteString("\n")
}
