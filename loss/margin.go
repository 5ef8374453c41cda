package loss

import (
	"fmt"
	"math"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/edmonds"
	"github.com/katalvlaran/arbor/tree"
)

// StructuredMargin returns the margin-rescaled structured hinge:
//
//	S'   = S + 1 on every arc except the gold arcs
//	pred = edmonds.Decode(S')
//	loss = max(0, S'(pred) − S(gold) + HingeOffset)
//
// The result is 0 whenever gold beats every other tree by at least one point
// per wrongly attached token.
//
// Errors: arc.ErrMalformedScoreMatrix, ErrInvalidGoldHeads, ErrInvalidOption.
// Complexity: O(n³) worst case (one decode).
func StructuredMargin(s *arc.ScoreMatrix, gold tree.Heads, opts ...Option) (float64, error) {
	res, err := evaluate(s, gold, KindMargin, build(opts))
	return res.Value, err
}

// RegularizedMargin is StructuredMargin plus α·Σ S[gold[m]][m]², computed on
// the unperturbed scores.
func RegularizedMargin(s *arc.ScoreMatrix, gold tree.Heads, opts ...Option) (float64, error) {
	res, err := evaluate(s, gold, KindRegularized, build(opts))
	return res.Value, err
}

// PerturbedMargin is StructuredMargin on a copy of S with N(0, σ²) noise added
// to every entry. The noise comes from Options.Rand, or a stream seeded by
// Options.Seed, so equal seeds give equal losses.
func PerturbedMargin(s *arc.ScoreMatrix, gold tree.Heads, opts ...Option) (float64, error) {
	res, err := evaluate(s, gold, KindPerturbed, build(opts))
	return res.Value, err
}

// Evaluate computes the variant selected by WithKind (KindMargin by default)
// and returns the full breakdown.
//
// Errors: as the variant, or ErrUnknownKind.
func Evaluate(s *arc.ScoreMatrix, gold tree.Heads, opts ...Option) (Result, error) {
	o := build(opts)
	return evaluate(s, gold, o.Kind, o)
}

// Compute dispatches on opts.Kind and returns the loss value.
//
//   - KindMargin:      StructuredMargin
//   - KindRegularized: RegularizedMargin
//   - KindPerturbed:   PerturbedMargin
//   - KindNLL:         LocalNLL
//   - otherwise:       ErrUnknownKind
func Compute(s *arc.ScoreMatrix, gold tree.Heads, opts Options) (float64, error) {
	res, err := evaluate(s, gold, opts.Kind, opts)
	return res.Value, err
}

func build(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// validateOptions rejects negative or NaN hyper-parameters.
func validateOptions(o Options) error {
	if o.Alpha < 0 || math.IsNaN(o.Alpha) {
		return fmt.Errorf("loss: alpha %g: %w", o.Alpha, ErrInvalidOption)
	}
	if o.Std < 0 || math.IsNaN(o.Std) {
		return fmt.Errorf("loss: std %g: %w", o.Std, ErrInvalidOption)
	}
	if math.IsNaN(o.HingeOffset) || math.IsInf(o.HingeOffset, 0) {
		return fmt.Errorf("loss: hinge offset %g: %w", o.HingeOffset, ErrInvalidOption)
	}

	return nil
}

// checkInputs validates the score matrix and the gold tree against it.
func checkInputs(op string, s *arc.ScoreMatrix, gold tree.Heads) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tree.Validate(gold, s.Len()); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidGoldHeads, err)
	}

	return nil
}

func evaluate(s *arc.ScoreMatrix, gold tree.Heads, kind Kind, o Options) (Result, error) {
	op := "loss." + kind.String()
	switch kind {
	case KindMargin, KindRegularized, KindPerturbed:
	case KindNLL:
		v, err := LocalNLL(s, gold)
		return Result{Value: v}, err
	default:
		return Result{}, fmt.Errorf("loss: kind %d: %w", int(kind), ErrUnknownKind)
	}
	if err := validateOptions(o); err != nil {
		return Result{}, err
	}
	if err := checkInputs(op, s, gold); err != nil {
		return Result{}, err
	}

	var reg float64
	if kind == KindRegularized {
		reg = o.Alpha * goldSquares(s, gold)
	}
	scores := s
	if kind == KindPerturbed {
		scores = s.Perturbed(o.Std, noiseSource(o))
		// Noise may push a large finite score to ±Inf.
		if err := scores.Validate(); err != nil {
			return Result{}, fmt.Errorf("%s: perturbed scores: %w", op, err)
		}
	}

	res, err := hinge(scores, gold, o.HingeOffset)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	res.Regularizer = reg
	res.Value += reg

	return res, nil
}

// hinge runs the shared margin skeleton on validated inputs.
func hinge(s *arc.ScoreMatrix, gold tree.Heads, offset float64) (Result, error) {
	trueScore, err := tree.Score(s, gold)
	if err != nil {
		return Result{}, err
	}
	shifted, err := s.Shifted(gold, DefaultMargin)
	if err != nil {
		return Result{}, err
	}
	pred, predScore, err := edmonds.Decode(shifted)
	if err != nil {
		return Result{}, err
	}
	mistakes, err := tree.Hamming(pred, gold)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Value:          math.Max(0, predScore-trueScore+offset),
		Predicted:      pred,
		TrueScore:      trueScore,
		PredictedScore: predScore,
		Mistakes:       mistakes,
	}, nil
}

// goldSquares returns Σ S[gold[m]][m]².
func goldSquares(s *arc.ScoreMatrix, gold tree.Heads) float64 {
	var sum float64
	for i, h := range gold {
		v, _ := s.At(h, i+1) // gold already validated
		sum += v * v
	}

	return sum
}
