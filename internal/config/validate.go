package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/report"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, f := range cfg.Formats {
		if _, err := report.ParseFormat(f); err != nil {
			errs = append(errs, &FormatError{Format: f, Err: errors.ErrInvalidFormat})
		}
	}
	if _, err := report.ParseFormats(cfg.Formats); err != nil && len(errs) == 0 {
		errs = append(errs, &FormatError{Format: strings.Join(cfg.Formats, ","), Err: err})
	}

	if _, err := logging.ParseColorMode(cfg.Color); err != nil {
		errs = append(errs, err)
	}

	for name, exe := range cfg.Tools {
		if err := validatePath(exe); err != nil {
			errs = append(errs, &ToolError{Tool: name, Path: exe, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if path == "" || cleaned == "." || strings.HasSuffix(path, string(os.PathSeparator)) {
		return ErrInvalidPath
	}
	return nil
}

// FormatError represents an invalid report format entry.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return "formats: " + e.Err.Error() + ": " + e.Format
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ToolError represents an invalid tool executable override.
type ToolError struct {
	Tool string
	Path string
	Err  error
}

func (e *ToolError) Error() string {
	return "tools." + e.Tool + ": " + e.Err.Error() + ": " + e.Path
}

func (e *ToolError) Unwrap() error {
	return e.Err
}
