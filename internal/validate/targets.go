package validate

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// TargetSet is the result of expanding Options.Targets against file patterns.
// Paths are slash-separated and relative to the module root where possible.
type TargetSet struct {
	Files   []string
	Missing []string
}

// ExpandTargets finds the files a validator should check.
//
// Patterns are globs relative to a directory, such as "metadata.json" or
// "tasks/*.json". With no targets the patterns are applied to the module
// root. Directory targets apply the patterns inside the directory; file
// targets are kept when they match a pattern by relative path or base name.
func ExpandTargets(opts Options, patterns ...string) (TargetSet, error) {
	var set TargetSet
	add := func(abs string) {
		rel := relToRoot(opts.Root, abs)
		if !slices.Contains(set.Files, rel) {
			set.Files = append(set.Files, rel)
		}
	}

	if len(opts.Targets) == 0 {
		files, err := globFiles(opts.Root, patterns)
		if err != nil {
			return set, err
		}
		for _, f := range files {
			add(f)
		}
		slices.Sort(set.Files)
		return set, nil
	}

	// Files matching from the root, used to resolve directory targets that
	// sit inside a pattern such as "tasks".
	fromRoot, err := globFiles(opts.Root, patterns)
	if err != nil {
		return set, err
	}

	for i, abs := range opts.ResolveTargets() {
		info, err := os.Stat(abs)
		if err != nil {
			set.Missing = append(set.Missing, opts.Targets[i])
			continue
		}
		if info.IsDir() {
			inDir, err := globFiles(abs, patterns)
			if err != nil {
				return set, err
			}
			for _, f := range inDir {
				add(f)
			}
			prefix := abs + string(filepath.Separator)
			for _, f := range fromRoot {
				if strings.HasPrefix(f, prefix) {
					add(f)
				}
			}
			continue
		}
		if matchesAny(opts.Root, abs, patterns) {
			add(abs)
		}
	}
	slices.Sort(set.Files)
	return set, nil
}

// MatchTargets filters Options.Targets for a tool that walks directories
// itself. Directory targets are kept whole, file targets are kept when they
// match a pattern, and the rest are dropped. Missing targets are listed
// separately. With no targets the result is empty.
func MatchTargets(opts Options, patterns ...string) (TargetSet, error) {
	var set TargetSet
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return set, errors.Wrapf(err, "bad pattern %q", p)
		}
	}

	for i, abs := range opts.ResolveTargets() {
		info, err := os.Stat(abs)
		if err != nil {
			set.Missing = append(set.Missing, opts.Targets[i])
			continue
		}
		if !info.IsDir() && !matchesAny(opts.Root, abs, patterns) {
			continue
		}
		rel := relToRoot(opts.Root, abs)
		if !slices.Contains(set.Files, rel) {
			set.Files = append(set.Files, rel)
		}
	}
	return set, nil
}

// relToRoot returns abs relative to root in slash form, or abs itself when
// it lies outside root.
func relToRoot(root, abs string) string {
	rel := abs
	if root != "" {
		if r, err := filepath.Rel(root, abs); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.ToSlash(rel)
}

func globFiles(dir string, patterns []string) ([]string, error) {
	var files []string
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, filepath.FromSlash(p)))
		if err != nil {
			return nil, errors.Wrapf(err, "bad pattern %q", p)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func matchesAny(root, abs string, patterns []string) bool {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		rel = abs
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(abs)
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := filepath.Match(p, base); ok {
				return true
			}
		}
	}
	return false
}
