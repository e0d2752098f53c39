package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// SourceKey is the attribute naming the validator a record belongs to.
// The text handler renders it as a bracketed prefix instead of key=value.
const SourceKey = "validator"

// palette holds the handler colors. A nil palette renders plain text.
type palette struct {
	time, trace, debug, info, warn, err, key, source *color.Color
}

// newPalette forces color on; callers decide whether color applies.
func newPalette() *palette {
	p := &palette{
		time:   color.New(color.FgHiBlack),
		trace:  color.New(color.FgHiBlack),
		debug:  color.New(color.FgMagenta),
		info:   color.New(color.FgGreen),
		warn:   color.New(color.FgYellow),
		err:    color.New(color.FgRed, color.Bold),
		key:    color.New(color.FgCyan),
		source: color.New(color.FgBlue, color.Bold),
	}
	for _, c := range []*color.Color{p.time, p.trace, p.debug, p.info, p.warn, p.err, p.key, p.source} {
		c.EnableColor()
	}
	return p
}

// Handler implements slog.Handler for TTY-optimized text output.
// Each record is formatted into a buffer and written with a single Write so
// records from validators running in parallel never interleave.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
	source string
	colors *palette
}

// NewHandler creates a new TTY-optimized text handler.
// Colors are used only when out supports them.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats r as "TIME LEVEL [source] message key=value...".
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.pick(func(p *palette) *color.Color { return p.time }), r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}

	fmt.Fprintf(&buf, "%-5s ", h.paint(h.levelColor(r.Level), levelName(r.Level)))

	source := h.source
	prefix := h.groupPrefix()
	var recordAttrs []slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if prefix == "" && a.Key == SourceKey && a.Value.Kind() == slog.KindString {
			source = a.Value.String()
			return true
		}
		recordAttrs = append(recordAttrs, a)
		return true
	})

	if source != "" {
		buf.WriteString(h.paint(h.pick(func(p *palette) *color.Color { return p.source }), "["+source+"]"))
		buf.WriteByte(' ')
	}
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.appendAttr(&buf, "", a)
	}
	for _, a := range recordAttrs {
		h.appendAttr(&buf, prefix, a)
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, prefix+a.Key+".", ga)
		}
		return
	}

	key := h.paint(h.pick(func(p *palette) *color.Color { return p.key }), prefix+a.Key)
	fmt.Fprintf(buf, " %s=%v", key, a.Value.Any())
}

func (h *Handler) levelColor(level slog.Level) *color.Color {
	if h.colors == nil {
		return nil
	}
	switch {
	case level >= slog.LevelError:
		return h.colors.err
	case level >= slog.LevelWarn:
		return h.colors.warn
	case level >= slog.LevelInfo:
		return h.colors.info
	case level >= slog.LevelDebug:
		return h.colors.debug
	default:
		return h.colors.trace
	}
}

func (h *Handler) pick(f func(*palette) *color.Color) *color.Color {
	if h.colors == nil {
		return nil
	}
	return f(h.colors)
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// levelName names LevelTrace instead of printing DEBUG-4.
func levelName(level slog.Level) string {
	if level == LevelTrace {
		return "TRACE"
	}
	return level.String()
}

// groupPrefix returns the dotted key prefix for the open groups.
func (h *Handler) groupPrefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// WithAttrs returns a new Handler with the given attributes.
// A top-level SourceKey attribute becomes the record prefix.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	newH.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newH.attrs, h.attrs)

	prefix := h.groupPrefix()
	for _, a := range attrs {
		if prefix == "" && a.Key == SourceKey && a.Value.Kind() == slog.KindString {
			newH.source = a.Value.String()
			continue
		}
		a.Key = prefix + a.Key
		newH.attrs = append(newH.attrs, a)
	}
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered by prefixing keys: group.key=value.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = make([]string, len(h.groups)+1)
	copy(newH.groups, h.groups)
	newH.groups[len(h.groups)] = name
	return &newH
}
