package commands

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/modcheck/internal/config"
	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
)

// keepDefaultLogger restores the process logger after setupLogging replaced it.
func keepDefaultLogger(t *testing.T) {
	t.Helper()
	orig := slog.Default()
	origColor := logging.CurrentColorMode()
	t.Cleanup(func() {
		slog.SetDefault(orig)
		logging.SetColorMode(origColor)
	})
	t.Cleanup(resetFlags)
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	keepDefaultLogger(t)
	t.Setenv("MODCHECK_DEBUG", "")

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	keepDefaultLogger(t)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"MODCHECK_DEBUG=1", "1", slog.LevelDebug},
		{"MODCHECK_DEBUG=true", "true", slog.LevelDebug},
		{"MODCHECK_DEBUG=2", "2", logging.LevelTrace},
		{"MODCHECK_DEBUG=0", "0", slog.LevelWarn},
		{"MODCHECK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("MODCHECK_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}

			if tt.wantLevel == slog.LevelDebug {
				if logger.Enabled(t.Context(), logging.LevelTrace) {
					t.Error("expected Trace level to be disabled when MODCHECK_DEBUG=1")
				}
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	keepDefaultLogger(t)
	t.Setenv("MODCHECK_DEBUG", "2")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	keepDefaultLogger(t)
	quiet = true
	verbosity = 0

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected Warn level to be disabled")
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	keepDefaultLogger(t)
	verbosity = 1
	quiet = true

	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error when both quiet and verbose are set")
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	keepDefaultLogger(t)
	logFile = filepath.Join(t.TempDir(), "modcheck.log")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(rootCmd.Context()).Info("hello from test")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello from test"`) {
		t.Errorf("log file missing JSON record: %s", data)
	}
}

func TestSetupLogging_BadLogFile(t *testing.T) {
	keepDefaultLogger(t)
	logFile = filepath.Join(t.TempDir(), "missing", "modcheck.log")

	err := setupLogging(rootCmd)
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("ExitCode = %d, want %d (err: %v)", errors.ExitCode(err), errors.ExitUser, err)
	}
}

func TestSetupLogging_Color(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		config   string
		want     logging.ColorMode
		wantCode int
	}{
		{"default is auto", "", "", logging.ColorAuto, errors.ExitSuccess},
		{"config value", "", "never", logging.ColorNever, errors.ExitSuccess},
		{"flag beats config", "always", "never", logging.ColorAlways, errors.ExitSuccess},
		{"invalid flag", "rainbow", "", "", errors.ExitUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keepDefaultLogger(t)
			origCfg := loadedConfig
			t.Cleanup(func() { loadedConfig = origCfg })

			cfg := config.Default()
			cfg.Color = tt.config
			loadedConfig = cfg
			colorFlag = tt.flag

			err := setupLogging(rootCmd)
			if got := errors.ExitCode(err); got != tt.wantCode {
				t.Fatalf("ExitCode = %d, want %d (err: %v)", got, tt.wantCode, err)
			}
			if tt.wantCode == errors.ExitSuccess && logging.CurrentColorMode() != tt.want {
				t.Errorf("color mode = %q, want %q", logging.CurrentColorMode(), tt.want)
			}
		})
	}
}

func TestSetupLogging_LogFileAndConsole(t *testing.T) {
	keepDefaultLogger(t)
	logFile = filepath.Join(t.TempDir(), "modcheck.log")
	var console bytes.Buffer
	rootCmd.SetErr(&console)
	t.Cleanup(func() { rootCmd.SetErr(nil) })

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(rootCmd.Context()).With(logging.SourceKey, "rubocop").Warn("offenses found")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"validator":"rubocop"`) {
		t.Errorf("log file missing validator attribute: %s", data)
	}
	if !strings.Contains(console.String(), "[rubocop] offenses found") {
		t.Errorf("console missing record: %q", console.String())
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "Error: boom\n"},
		{"silent", errors.NewSilentExit(2), ""},
		{
			"with suggestion",
			errors.NewConfigError(errors.ErrNotInModule),
			"Error: not inside a module\n  Run: modcheck doctor\n",
		},
		{
			"suggestion only",
			errors.NewUserError(nil, "cannot use --quiet and --verbose together"),
			"Error: cannot use --quiet and --verbose together\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			if buf.String() != tt.want {
				t.Errorf("PrintError() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
