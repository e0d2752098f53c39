// Package logging provides structured logging for the modcheck CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Validator Records
//
// Loggers scoped with [SourceKey] render the validator name as a prefix in
// text output, so parallel runs stay attributable:
//
//	logger.With(logging.SourceKey, "rubocop").Warn("offenses found")
//	// 3:04PM WARN  [rubocop] offenses found
//
// # Color
//
// [SetColorMode] applies the --color setting to both log records and text
// reports. [ColorAuto] colors terminals unless NO_COLOR is set or TERM is dumb.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Quiet Mode
//
// Use [NewDiscard] for a logger disabled at every level:
//
//	logger := logging.NewDiscard()
package logging
