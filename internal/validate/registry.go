package validate

import (
	"slices"

	"github.com/thoreinstein/modcheck/internal/errors"
)

// Registry is the fixed, ordered set of available validators.
type Registry struct {
	validators []Validator
}

// NewRegistry builds a registry. Names must be non-empty and unique.
func NewRegistry(vs ...Validator) (*Registry, error) {
	seen := make(map[string]bool, len(vs))
	for _, v := range vs {
		name := v.Name()
		if name == "" {
			return nil, errors.New("validator with empty name")
		}
		if seen[name] {
			return nil, errors.Newf("duplicate validator %q", name)
		}
		seen[name] = true
	}
	return &Registry{validators: slices.Clone(vs)}, nil
}

// MustRegistry is like NewRegistry but panics on error.
func MustRegistry(vs ...Validator) *Registry {
	r, err := NewRegistry(vs...)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns every validator in registry order.
func (r *Registry) All() []Validator {
	return slices.Clone(r.validators)
}

// Names returns every validator name in registry order.
func (r *Registry) Names() []string {
	return Names(r.validators)
}

// Lookup finds a validator by exact name.
func (r *Registry) Lookup(name string) (Validator, bool) {
	for _, v := range r.validators {
		if v.Name() == name {
			return v, true
		}
	}
	return nil, false
}

// Len returns the number of registered validators.
func (r *Registry) Len() int {
	return len(r.validators)
}
