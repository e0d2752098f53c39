package validate

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

var commaListRe = regexp.MustCompile(`^[\w-]+(,[\w-]+)+$`)

// Selection is the outcome of interpreting positional arguments.
type Selection struct {
	Validators []Validator
	Targets    []string
}

// IsCommaList reports whether s is a comma-separated list of at least two names.
func IsCommaList(s string) bool {
	return commaListRe.MatchString(s)
}

// Select interprets args against reg.
//
// The first argument may be a comma-separated list of validator names, a
// single validator name, or a target. Every later argument is a target.
// Unknown names in a list are dropped with a warning.
func Select(args []string, reg *Registry, logger *slog.Logger) Selection {
	all := reg.All()
	if len(args) == 0 {
		logger.Info("Running all available validators...")
		return Selection{Validators: all}
	}

	var sel Selection
	first := args[0]

	switch {
	case IsCommaList(first):
		names := strings.Split(first, ",")
		for _, v := range all {
			if slices.Contains(names, v.Name()) {
				sel.Validators = append(sel.Validators, v)
			}
		}
		available := strings.Join(reg.Names(), ", ")
		for _, name := range names {
			if _, ok := reg.Lookup(name); !ok {
				logger.Warn("Unknown validator '" + name + "'. Available validators: " + available)
			}
		}
	default:
		if v, ok := reg.Lookup(first); ok {
			sel.Validators = []Validator{v}
		} else {
			sel.Validators = all
			sel.Targets = []string{first}
			logger.Info("Running all available validators...")
		}
	}

	sel.Targets = append(sel.Targets, args[1:]...)
	return sel
}
