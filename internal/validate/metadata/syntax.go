// Package metadata validates a module's metadata.json and task metadata.
package metadata

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/thoreinstein/modcheck/internal/errors"
	"github.com/thoreinstein/modcheck/internal/logging"
	"github.com/thoreinstein/modcheck/internal/report"
	"github.com/thoreinstein/modcheck/internal/validate"
	"github.com/thoreinstein/modcheck/pkg/fileutil"
)

const (
	// SyntaxName is the name of the JSON syntax validator.
	SyntaxName = "metadata-syntax"

	// MetadataFile is the module metadata file name.
	MetadataFile = "metadata.json"

	// MaxMetadataSize is the largest metadata or task JSON file read.
	MaxMetadataSize = 256 * 1024
)

// Syntax checks that module metadata files are well-formed JSON.
type Syntax struct {
	patterns []string
}

// NewSyntax returns the metadata-syntax validator.
func NewSyntax() *Syntax {
	return &Syntax{patterns: []string{MetadataFile, "tasks/*.json"}}
}

// Name implements validate.Validator.
func (*Syntax) Name() string { return SyntaxName }

// Invoke implements validate.Validator.
func (s *Syntax) Invoke(ctx context.Context, r *report.Report, opts validate.Options) int {
	logger := logging.FromContext(ctx).With(logging.SourceKey, SyntaxName)

	set, err := validate.ExpandTargets(opts, s.patterns...)
	if err != nil {
		r.Add(report.Event{
			Source:   SyntaxName,
			State:    report.StateError,
			Severity: report.SeverityError,
			Message:  err.Error(),
		})
		return 1
	}
	for _, missing := range set.Missing {
		r.Add(report.Event{
			Source:  SyntaxName,
			File:    missing,
			State:   report.StateSkipped,
			Message: "file does not exist",
		})
	}
	if len(set.Files) == 0 {
		r.Add(report.Event{Source: SyntaxName, State: report.StateSkipped, Message: "no metadata files to check"})
		return 0
	}

	code := 0
	for _, rel := range set.Files {
		logger.Debug("checking JSON syntax", "file", rel)
		if e, ok := checkSyntax(opts.Root, rel); !ok {
			r.Add(e)
			code = 1
			continue
		}
		r.Add(report.Event{Source: SyntaxName, File: rel, Test: "json-syntax", State: report.StatePassed})
	}
	return code
}

// checkSyntax returns a failure event and false if rel is not valid JSON.
func checkSyntax(root, rel string) (report.Event, bool) {
	e := report.Event{
		Source:   SyntaxName,
		File:     rel,
		Test:     "json-syntax",
		State:    report.StateFailure,
		Severity: report.SeverityError,
	}

	data, err := fileutil.ReadFileLimit(filepath.Join(root, filepath.FromSlash(rel)), MaxMetadataSize)
	var tooLarge *fileutil.TooLargeError
	switch {
	case errors.As(err, &tooLarge):
		e.Test = "file-size"
		e.Message = fmt.Sprintf("file is %d bytes, over the %d byte limit", tooLarge.Size, tooLarge.Limit)
		return e, false
	case err != nil:
		e.State = report.StateError
		e.Message = err.Error()
		return e, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		e.Message = "file is empty"
		return e, false
	}

	var v any
	err = json.Unmarshal(data, &v)
	if err == nil {
		return e, true
	}

	e.Message = err.Error()
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		e.Line, e.Column = position(data, syntaxErr.Offset)
	}
	return e, false
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}
