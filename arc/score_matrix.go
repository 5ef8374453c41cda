package arc

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/arbor/matrix"
)

// malformedf wraps a cause with ErrMalformedScoreMatrix so callers can match
// both the arc sentinel and the underlying matrix sentinel with errors.Is.
func malformedf(ctx string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", ctx, ErrMalformedScoreMatrix)
	}

	return fmt.Errorf("%s: %w: %w", ctx, ErrMalformedScoreMatrix, cause)
}

// New returns an all-zero score matrix for a sentence of n tokens.
//
// Errors: ErrMalformedScoreMatrix if n < 1.
// Complexity: O(n²).
func New(n int) (*ScoreMatrix, error) {
	if n < 1 {
		return nil, malformedf(fmt.Sprintf("arc.New(%d)", n), nil)
	}
	d, err := matrix.NewDenseWithPolicy(n+1, n+1, false)
	if err != nil {
		return nil, malformedf("arc.New", err)
	}

	return &ScoreMatrix{n: n, d: d}, nil
}

// FromSquare copies an (n+1)×(n+1) row slice into a validated score matrix.
// rows[h][m] is the score of head h for modifier m; column 0 and the diagonal
// are ignored.
//
// Errors: ErrMalformedScoreMatrix (wrapping the matrix sentinel when one applies).
// Complexity: O(n²).
func FromSquare(rows [][]float64) (*ScoreMatrix, error) {
	if len(rows) < 2 {
		return nil, malformedf(fmt.Sprintf("arc.FromSquare: %d rows", len(rows)), nil)
	}
	d, err := matrix.FromRows(rows, false)
	if err != nil {
		return nil, malformedf("arc.FromSquare", err)
	}
	if err = matrix.ValidateSquare(d); err != nil {
		return nil, malformedf("arc.FromSquare", err)
	}
	s := &ScoreMatrix{n: len(rows) - 1, d: d}
	if err = s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// FromModifierColumns copies the scorer's native (n+1)×n layout into a
// validated score matrix. The root column is absent from the input: rows[h][j]
// is the score of head h for modifier j+1.
//
// Errors: ErrMalformedScoreMatrix (wrong row count, wrong column count, NaN/Inf).
// Complexity: O(n²).
func FromModifierColumns(rows [][]float64) (*ScoreMatrix, error) {
	if len(rows) < 2 {
		return nil, malformedf(fmt.Sprintf("arc.FromModifierColumns: %d rows", len(rows)), nil)
	}
	n := len(rows) - 1
	s, err := New(n)
	if err != nil {
		return nil, err
	}

	var h, j int
	for h = 0; h <= n; h++ {
		if len(rows[h]) != n {
			return nil, malformedf(
				fmt.Sprintf("arc.FromModifierColumns: row %d has %d columns, want %d", h, len(rows[h]), n),
				matrix.ErrDimensionMismatch)
		}
		for j = 0; j < n; j++ {
			if err = s.d.Set(h, j+1, rows[h][j]); err != nil {
				return nil, malformedf("arc.FromModifierColumns", err)
			}
		}
	}
	if err = s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Len returns n, the number of real tokens.
func (s *ScoreMatrix) Len() int { return s.n }

// Size returns n+1, the side of the matrix including the root.
func (s *ScoreMatrix) Size() int { return s.n + 1 }

// At returns S[h][m].
// Errors: matrix.ErrOutOfRange outside 0..n.
func (s *ScoreMatrix) At(h, m int) (float64, error) {
	return s.d.At(h, m)
}

// Set stores S[h][m] = v. Any value is accepted; Validate reports
// non-finite values in cells that are read.
// Errors: matrix.ErrOutOfRange outside 0..n.
func (s *ScoreMatrix) Set(h, m int, v float64) error {
	return s.d.Set(h, m, v)
}

// Column returns the candidate-head scores of modifier m (length n+1).
// Entry m of the result is the unused diagonal cell.
// Errors: matrix.ErrOutOfRange unless 1 ≤ m ≤ n.
func (s *ScoreMatrix) Column(m int) ([]float64, error) {
	if m < 1 || m > s.n {
		return nil, fmt.Errorf("arc.Column(%d): %w", m, matrix.ErrOutOfRange)
	}

	return s.d.Col(m)
}

// Weights returns a flat row-major copy of the (n+1)×(n+1) scores; entry
// h*(n+1)+m is S[h][m]. Decoders own the returned slice.
// Complexity: O(n²).
func (s *ScoreMatrix) Weights() []float64 {
	return s.d.Data()
}

// Clone returns an independent copy.
// Complexity: O(n²).
func (s *ScoreMatrix) Clone() *ScoreMatrix {
	return &ScoreMatrix{n: s.n, d: s.d.CloneDense()}
}

// Validate checks the decoding preconditions: non-nil, n ≥ 1, square
// (n+1)×(n+1) storage and finite values in every cell (h, m) with
// m ∈ 1..n and h ≠ m. Column 0 and the diagonal are not inspected.
//
// Errors: ErrMalformedScoreMatrix wrapping the matrix sentinel when one applies.
// Complexity: O(n²).
func (s *ScoreMatrix) Validate() error {
	if s == nil || s.d == nil {
		return malformedf("arc.Validate", matrix.ErrNilMatrix)
	}
	if s.n < 1 {
		return malformedf(fmt.Sprintf("arc.Validate: n=%d", s.n), nil)
	}
	if err := matrix.ValidateSquare(s.d); err != nil {
		return malformedf("arc.Validate", err)
	}
	if s.d.Rows() != s.n+1 {
		return malformedf(fmt.Sprintf("arc.Validate: %d rows for n=%d", s.d.Rows(), s.n), matrix.ErrDimensionMismatch)
	}
	unused := func(h, m int) bool { return m == Root || h == m }
	if err := matrix.ValidateFinite(s.d, unused); err != nil {
		return malformedf("arc.Validate", err)
	}

	return nil
}

// Shifted returns a margin-augmented copy: every arc (h, m), m ≥ 1, gains
// +margin except the gold arcs (gold[m-1], m), which keep their original
// score. gold must have length n with heads in 0..n.
//
// Errors: ErrMalformedScoreMatrix on a length mismatch, matrix.ErrOutOfRange
// on an out-of-range head.
// Complexity: O(n²).
func (s *ScoreMatrix) Shifted(gold []int, margin float64) (*ScoreMatrix, error) {
	if len(gold) != s.n {
		return nil, malformedf(fmt.Sprintf("arc.Shifted: %d heads for n=%d", len(gold), s.n), matrix.ErrDimensionMismatch)
	}
	for i, h := range gold {
		if h < 0 || h > s.n {
			return nil, fmt.Errorf("arc.Shifted: head %d of token %d: %w", h, i+1, matrix.ErrOutOfRange)
		}
	}

	out := s.Clone()
	// Relaxed policy: the unused cells may be non-finite, Apply never fails here.
	_ = out.d.Apply(func(h, m int, v float64) float64 {
		if m == Root || gold[m-1] == h {
			return v
		}
		return v + margin
	})

	return out, nil
}

// Perturbed returns a copy with independent N(0, std²) noise added to every
// entry. rng must not be shared with other goroutines during the call.
// Complexity: O(n²).
func (s *ScoreMatrix) Perturbed(std float64, rng *rand.Rand) *ScoreMatrix {
	out := s.Clone()
	_ = out.d.Apply(func(_, _ int, v float64) float64 {
		return v + std*rng.NormFloat64()
	})

	return out
}

// String renders the matrix row by row for diagnostics.
func (s *ScoreMatrix) String() string {
	return s.d.String()
}
