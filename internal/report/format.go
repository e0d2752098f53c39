package report

import (
	"slices"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// Method names an output format.
type Method string

const (
	// MethodText produces human-readable text output.
	MethodText Method = "text"
	// MethodJSON produces machine-readable JSON output.
	MethodJSON Method = "json"
	// MethodJUnit produces JUnit XML for CI systems.
	MethodJUnit Method = "junit"
	// MethodYAML produces YAML output.
	MethodYAML Method = "yaml"
)

const (
	// DefaultMethod is used when no format is configured.
	DefaultMethod = MethodText
	// DefaultTarget is used when a format spec names no target.
	DefaultTarget = TargetStdout

	// TargetStdout writes to standard output.
	TargetStdout = "stdout"
	// TargetStderr writes to standard error.
	TargetStderr = "stderr"
)

// Methods returns all supported output methods.
func Methods() []Method {
	return []Method{MethodText, MethodJSON, MethodJUnit, MethodYAML}
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	return slices.Contains(Methods(), m)
}

// FormatSpec is an output method paired with a destination.
// Target is "stdout", "stderr", or a file path.
type FormatSpec struct {
	Method Method
	Target string
}

// String returns the spec in method:target form.
func (f FormatSpec) String() string {
	return string(f.Method) + ":" + f.Target
}

// DefaultFormats returns the formats used when none are requested.
func DefaultFormats() []FormatSpec {
	return []FormatSpec{{Method: DefaultMethod, Target: DefaultTarget}}
}

// ParseFormat parses a "method[:target]" string.
// Only the first colon separates method from target so file paths may contain colons.
func ParseFormat(s string) (FormatSpec, error) {
	s = strings.TrimSpace(s)
	method, target, _ := strings.Cut(s, ":")
	m := Method(strings.ToLower(method))
	if !m.Valid() {
		return FormatSpec{}, errors.Wrapf(errors.ErrInvalidFormat, "unknown method %q in %q", method, s)
	}
	if target == "" {
		target = DefaultTarget
	}
	return FormatSpec{Method: m, Target: target}, nil
}

// ParseFormats parses every entry, returning DefaultFormats for an empty list.
// Two specs that share a file target are rejected since the second would
// overwrite the first.
func ParseFormats(values []string) ([]FormatSpec, error) {
	if len(values) == 0 {
		return DefaultFormats(), nil
	}

	specs := make([]FormatSpec, 0, len(values))
	files := make(map[string]bool)
	for _, v := range values {
		spec, err := ParseFormat(v)
		if err != nil {
			return nil, err
		}
		if !isStream(spec.Target) {
			if files[spec.Target] {
				return nil, errors.Wrapf(errors.ErrInvalidFormat, "target %q used by more than one format", spec.Target)
			}
			files[spec.Target] = true
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func isStream(target string) bool {
	return target == TargetStdout || target == TargetStderr
}
