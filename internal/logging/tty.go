package logging

import (
	"io"
	"os"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// ColorMode controls ANSI color in log records and text reports.
type ColorMode string

const (
	// ColorAuto colors terminals unless NO_COLOR is set or TERM is dumb.
	ColorAuto ColorMode = "auto"
	// ColorAlways colors every writer, including files and pipes.
	ColorAlways ColorMode = "always"
	// ColorNever disables color everywhere.
	ColorNever ColorMode = "never"
)

// ErrInvalidColorMode is returned by ParseColorMode for unknown modes.
var ErrInvalidColorMode = errors.New("color must be one of auto, always, never")

var colorMode atomic.Value

// ParseColorMode parses a color setting. An empty string is ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", errors.Wrapf(ErrInvalidColorMode, "got %q", s)
	}
}

// SetColorMode sets the process-wide color mode used by SupportsColor.
func SetColorMode(m ColorMode) {
	colorMode.Store(m)
}

// CurrentColorMode returns the mode set by SetColorMode, or ColorAuto.
func CurrentColorMode() ColorMode {
	if m, ok := colorMode.Load().(ColorMode); ok {
		return m
	}
	return ColorAuto
}

// IsTTY returns true if the given writer is a terminal.
// Any writer with an Fd method, such as *os.File, is checked.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether output written to w should carry ANSI color.
func SupportsColor(w io.Writer) bool {
	return supportsColor(CurrentColorMode(), IsTTY(w))
}

// supportsColor applies the color mode, then NO_COLOR (https://no-color.org)
// and TERM=dumb, then terminal detection.
func supportsColor(mode ColorMode, isTTY bool) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
