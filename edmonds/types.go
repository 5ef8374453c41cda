package edmonds

import "errors"

// ErrDecodeInvariantViolation marks a decoder result that is not a spanning
// arborescence. It is never returned: Decode panics with an error wrapping it,
// since a well-formed input can only reach that state through a decoder bug.
var ErrDecodeInvariantViolation = errors.New("edmonds: decoder produced an invalid tree")

// Contraction describes one cycle contraction, as seen by the OnContract hook.
type Contraction struct {
	// Level is the contraction depth, 0 for the first contraction.
	Level int

	// Size is the number of nodes the level had before contraction.
	Size int

	// Cycle lists the cycle members in ascending level-local indices.
	// At level 0 these are token indices.
	Cycle []int

	// Weight is κ, the total greedy score of the cycle arcs.
	Weight float64
}

// Options configures Decode.
// Use DefaultOptions() for the production setup.
type Options struct {
	// OnContract, if non-nil, observes every contraction in order.
	// It must not retain Contraction.Cycle beyond the call.
	OnContract func(Contraction)

	// Verify re-checks the output with tree.Validate and panics on failure.
	Verify bool
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns Options with no hook and verification on.
func DefaultOptions() Options {
	return Options{
		OnContract: nil,
		Verify:     true,
	}
}

// WithOnContract installs a contraction hook.
func WithOnContract(fn func(Contraction)) Option {
	return func(o *Options) {
		o.OnContract = fn
	}
}

// WithVerify toggles the output invariant check.
func WithVerify(on bool) Option {
	return func(o *Options) {
		o.Verify = on
	}
}
