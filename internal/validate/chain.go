package validate

import (
	"context"

	"github.com/thoreinstein/modcheck/internal/report"
)

// Chain is a validator made of ordered steps. It stops at the first step
// that returns a nonzero code and returns that code.
type Chain struct {
	name  string
	steps []Validator
}

// NewChain creates a named chain.
func NewChain(name string, steps ...Validator) *Chain {
	return &Chain{name: name, steps: steps}
}

// Name implements Validator.
func (c *Chain) Name() string { return c.name }

// Steps returns the chain's validators in order.
func (c *Chain) Steps() []Validator { return c.steps }

// Invoke implements Validator.
func (c *Chain) Invoke(ctx context.Context, r *report.Report, opts Options) int {
	for _, step := range c.steps {
		if code := step.Invoke(ctx, r, opts); code != 0 {
			return code
		}
	}
	return 0
}

// Requires implements Requirer over every step.
func (c *Chain) Requires() []string {
	return Requirements(c.steps)
}
