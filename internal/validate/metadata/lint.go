package metadata

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-json"

	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/report"
	"github.com/thoreinstein/modcheck/internal/validate"
	"github.com/thoreinstein/modcheck/pkg/fileutil"
)

// LintName is the name of the metadata.json lint validator.
const LintName = "metadata-json-lint"

// RequiredFields must be present in every metadata.json.
var RequiredFields = []string{"name", "version", "author", "license", "summary", "source", "dependencies"}

// moduleNameRe matches the forge "author-module" (or "author/module") form.
var moduleNameRe = regexp.MustCompile(`^[a-zA-Z0-9]+[-/][a-z][a-z0-9_]*$`)

type dependency struct {
	Name               string `json:"name"`
	VersionRequirement string `json:"version_requirement"`
}

type document struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Dependencies []dependency `json:"dependencies"`
}

// Lint checks metadata.json content rules.
type Lint struct {
	patterns []string
}

// NewLint returns the metadata-json-lint validator.
func NewLint() *Lint {
	return &Lint{patterns: []string{MetadataFile}}
}

// Name implements validate.Validator.
func (*Lint) Name() string { return LintName }

// finding is a single lint result before it becomes an event.
type finding struct {
	test     string
	severity report.Severity
	message  string
}

// Invoke implements validate.Validator. Errors return 1; warnings alone return 0.
func (l *Lint) Invoke(ctx context.Context, r *report.Report, opts validate.Options) int {
	logger := logging.FromContext(ctx).With(logging.SourceKey, LintName)

	set, err := validate.ExpandTargets(opts, l.patterns...)
	if err != nil {
		r.Add(report.Event{
			Source:   LintName,
			State:    report.StateError,
			Severity: report.SeverityError,
			Message:  err.Error(),
		})
		return 1
	}
	if len(set.Files) == 0 {
		r.Add(report.Event{Source: LintName, State: report.StateSkipped, Message: "no metadata.json to lint"})
		return 0
	}

	code := 0
	for _, rel := range set.Files {
		logger.Debug("linting metadata", "file", rel)
		data, err := fileutil.ReadFileLimit(filepath.Join(opts.Root, filepath.FromSlash(rel)), MaxMetadataSize)
		if err != nil {
			r.Add(report.Event{
				Source:   LintName,
				File:     rel,
				State:    report.StateError,
				Severity: report.SeverityError,
				Message:  err.Error(),
			})
			code = 1
			continue
		}

		findings := lint(data)
		if len(findings) == 0 {
			r.Add(report.Event{Source: LintName, File: rel, State: report.StatePassed})
			continue
		}
		for _, f := range findings {
			e := report.Event{
				Source:   LintName,
				File:     rel,
				Test:     f.test,
				State:    report.StateFailure,
				Severity: f.severity,
				Message:  f.message,
			}
			r.Add(e)
			if f.severity == report.SeverityError {
				code = 1
			}
		}
	}
	return code
}

func lint(data []byte) []finding {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []finding{{"json", report.SeverityError, "metadata is not a JSON object: " + err.Error()}}
	}

	var out []finding
	for _, key := range RequiredFields {
		if _, ok := raw[key]; !ok {
			out = append(out, finding{"required-fields", report.SeverityError, fmt.Sprintf("required field %q is missing", key)})
		}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return append(out, finding{"types", report.SeverityError, err.Error()})
	}

	if _, ok := raw["name"]; ok && !moduleNameRe.MatchString(doc.Name) {
		out = append(out, finding{"name", report.SeverityError,
			fmt.Sprintf("name %q must be in the form author-module", doc.Name)})
	}

	if _, ok := raw["version"]; ok {
		if _, err := semver.StrictNewVersion(doc.Version); err != nil {
			out = append(out, finding{"version", report.SeverityError,
				fmt.Sprintf("version %q is not valid semver: %v", doc.Version, err)})
		}
	}

	seen := make(map[string]bool)
	for i, dep := range doc.Dependencies {
		if dep.Name == "" {
			out = append(out, finding{"dependencies", report.SeverityError,
				fmt.Sprintf("dependency %d has no name", i)})
			continue
		}
		key := strings.ReplaceAll(dep.Name, "/", "-")
		if seen[key] {
			out = append(out, finding{"dependencies", report.SeverityWarning,
				fmt.Sprintf("duplicate dependency %q", dep.Name)})
		}
		seen[key] = true

		if dep.VersionRequirement == "" {
			out = append(out, finding{"dependencies", report.SeverityWarning,
				fmt.Sprintf("dependency %q has no version_requirement", dep.Name)})
			continue
		}
		if _, err := semver.NewConstraint(dep.VersionRequirement); err != nil {
			out = append(out, finding{"dependencies", report.SeverityError,
				fmt.Sprintf("dependency %q has invalid version_requirement %q: %v", dep.Name, dep.VersionRequirement, err)})
		}
	}
	return out
}
