package metadata

import "github.com/thoreinstein/modcheck/internal/validate"

// Name is the name of the metadata validator group.
const Name = "metadata"

// New returns the metadata group: syntax first, then lint.
func New() *validate.Chain {
	return validate.NewChain(Name, NewSyntax(), NewLint())
}
