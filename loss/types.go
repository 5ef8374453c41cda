package loss

import (
	"errors"
	"math/rand"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/tree"
)

// ErrInvalidGoldHeads indicates gold heads that are not a spanning
// arborescence over the sentence. It always wraps tree.ErrInvalidHeads.
var ErrInvalidGoldHeads = errors.New("loss: invalid gold heads")

// ErrUnknownKind is returned by Compute for a Kind it does not know.
var ErrUnknownKind = errors.New("loss: unknown loss kind")

// ErrInvalidOption indicates a negative or NaN Alpha or Std.
var ErrInvalidOption = errors.New("loss: invalid option")

// Kind selects a loss variant.
type Kind int

const (
	// KindMargin is the margin-rescaled structured hinge.
	KindMargin Kind = iota
	// KindRegularized adds α·Σ S[gold]² to KindMargin.
	KindRegularized
	// KindPerturbed runs KindMargin on a copy of S with Gaussian noise.
	KindPerturbed
	// KindNLL is the per-token negative log-likelihood; it never decodes.
	KindNLL
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindMargin:
		return "margin"
	case KindRegularized:
		return "regularized"
	case KindPerturbed:
		return "perturbed"
	case KindNLL:
		return "nll"
	default:
		return "unknown"
	}
}

// Default hyper-parameters.
const (
	DefaultAlpha = 0.1
	DefaultStd   = 0.1
	// DefaultMargin is the per-token augmentation added to non-gold arcs.
	DefaultMargin = 1.0
)

// Options configures a loss evaluation. Use DefaultOptions() and the With*
// helpers.
//
// Fields:
//
//	Kind       : variant to compute (Compute and Evaluate only).
//	Alpha      : regularizer weight α ≥ 0, KindRegularized.
//	Std        : noise standard deviation σ ≥ 0, KindPerturbed.
//	Rand       : noise source; must not be shared across goroutines.
//	Seed       : used when Rand is nil; 0 selects a fixed default seed.
//	HingeOffset: constant added inside max(0, ·). 0 is the textbook hinge,
//	              1 doubles the margin already carried by the augmented scores.
type Options struct {
	Kind        Kind
	Alpha       float64
	Std         float64
	Rand        *rand.Rand
	Seed        int64
	HingeOffset float64
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the plain margin loss with α = σ = 0.1, seed 0 and
// no hinge offset.
func DefaultOptions() Options {
	return Options{
		Kind:        KindMargin,
		Alpha:       DefaultAlpha,
		Std:         DefaultStd,
		Rand:        nil,
		Seed:        0,
		HingeOffset: 0,
	}
}

// WithKind selects the variant for Evaluate.
func WithKind(k Kind) Option {
	return func(o *Options) { o.Kind = k }
}

// WithAlpha sets the regularizer weight.
func WithAlpha(alpha float64) Option {
	return func(o *Options) { o.Alpha = alpha }
}

// WithStd sets the noise standard deviation.
func WithStd(std float64) Option {
	return func(o *Options) { o.Std = std }
}

// WithRand sets an explicit noise source.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// WithSeed sets the seed used when no Rand is given.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithHingeOffset sets the constant inside the hinge.
func WithHingeOffset(offset float64) Option {
	return func(o *Options) { o.HingeOffset = offset }
}

// Result is the full breakdown of one loss evaluation.
type Result struct {
	// Value is the loss.
	Value float64

	// Predicted is the decoded tree on the augmented scores (nil for KindNLL).
	Predicted tree.Heads

	// TrueScore is Σ S[gold[m]][m] on the scores the hinge saw.
	TrueScore float64

	// PredictedScore is the augmented score of Predicted.
	PredictedScore float64

	// Regularizer is the α term already included in Value.
	Regularizer float64

	// Mistakes is the Hamming distance between Predicted and gold.
	Mistakes int
}

// Example is one sentence for Batch.
type Example struct {
	Scores *arc.ScoreMatrix
	Gold   tree.Heads
}
