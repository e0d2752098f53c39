package logging

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// useColorMode sets the process color mode for one test.
func useColorMode(t *testing.T, m ColorMode) {
	t.Helper()
	orig := CurrentColorMode()
	SetColorMode(m)
	t.Cleanup(func() { SetColorMode(orig) })
}

func TestSupportsColor(t *testing.T) {
	tests := []struct {
		name  string
		mode  ColorMode
		env   map[string]string
		isTTY bool
		want  bool
	}{
		{"auto on a terminal", ColorAuto, nil, true, true},
		{"auto on a pipe", ColorAuto, nil, false, false},
		{"NO_COLOR wins in auto", ColorAuto, map[string]string{"NO_COLOR": "1"}, true, false},
		{"TERM=dumb wins in auto", ColorAuto, map[string]string{"TERM": "dumb"}, true, false},
		{"always on a pipe", ColorAlways, nil, false, true},
		{"always beats NO_COLOR", ColorAlways, map[string]string{"NO_COLOR": "1"}, false, true},
		{"never on a terminal", ColorNever, nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TERM", "xterm-256color")
			unsetenv(t, "NO_COLOR")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if got := supportsColor(tt.mode, tt.isTTY); got != tt.want {
				t.Errorf("supportsColor(%q, %v) = %v, want %v", tt.mode, tt.isTTY, got, tt.want)
			}
		})
	}
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"", ColorAuto, false},
		{"auto", ColorAuto, false},
		{"always", ColorAlways, false},
		{"never", ColorNever, false},
		{"sometimes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColorMode) {
					t.Errorf("ParseColorMode(%q) error = %v, want ErrInvalidColorMode", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseColorMode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestColorAlways_ValidatorPrefixColored(t *testing.T) {
	useColorMode(t, ColorAlways)

	var buf bytes.Buffer
	slog.New(NewHandler(&buf, nil)).With(SourceKey, "rubocop").Info("offenses found")

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected ANSI escapes with color=always, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "rubocop") {
		t.Errorf("missing validator prefix: %q", buf.String())
	}
}

func TestColorNever_PlainRecords(t *testing.T) {
	useColorMode(t, ColorNever)

	var buf bytes.Buffer
	slog.New(NewHandler(&buf, nil)).With(SourceKey, "metadata-syntax").Warn("file is empty")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected ANSI escapes with color=never: %q", buf.String())
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("IsTTY should return false for a buffer")
	}
}
