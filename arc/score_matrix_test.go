package arc_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/matrix"
)

// TestNew_RejectsEmptySentence verifies that n < 1 is malformed.
func TestNew_RejectsEmptySentence(t *testing.T) {
	for _, n := range []int{0, -3} {
		_, err := arc.New(n)
		require.ErrorIs(t, err, arc.ErrMalformedScoreMatrix)
	}

	s, err := arc.New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 4, s.Size())
	require.NoError(t, s.Validate())
}

// TestFromSquare_Shape covers non-square and too-small inputs.
func TestFromSquare_Shape(t *testing.T) {
	tests := []struct {
		name  string
		rows  [][]float64
		cause error
	}{
		{"empty", nil, nil},
		{"root only", [][]float64{{0}}, nil},
		{"non-square", [][]float64{{0, 1, 2}, {0, 0, 1}}, matrix.ErrDimensionMismatch},
		{"ragged", [][]float64{{0, 1}, {0}}, matrix.ErrDimensionMismatch},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := arc.FromSquare(tc.rows)
			require.ErrorIs(t, err, arc.ErrMalformedScoreMatrix)
			if tc.cause != nil {
				require.ErrorIs(t, err, tc.cause)
			}
		})
	}
}

// TestFromSquare_IgnoresUnusedCells ensures column 0 and the diagonal may be non-finite.
func TestFromSquare_IgnoresUnusedCells(t *testing.T) {
	nan := math.NaN()
	s, err := arc.FromSquare([][]float64{
		{nan, 1, 2},
		{math.Inf(1), nan, 3},
		{math.Inf(-1), 4, nan},
	})
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	// A non-finite value in a used cell is rejected.
	_, err = arc.FromSquare([][]float64{
		{0, 1, math.Inf(1)},
		{0, 0, 3},
		{0, 4, 0},
	})
	require.ErrorIs(t, err, arc.ErrMalformedScoreMatrix)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestFromModifierColumns_MatchesSquare checks that both layouts describe the same arcs.
func TestFromModifierColumns_MatchesSquare(t *testing.T) {
	cols := [][]float64{
		{1, 2, 3},
		{0, 4, 5},
		{6, 0, 7},
		{8, 9, 0},
	}
	s, err := arc.FromModifierColumns(cols)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	var h, m int
	for h = 0; h <= 3; h++ {
		for m = 1; m <= 3; m++ {
			v, err := s.At(h, m)
			require.NoError(t, err)
			assert.Equal(t, cols[h][m-1], v, "S[%d][%d]", h, m)
		}
	}

	_, err = arc.FromModifierColumns([][]float64{{1, 2}, {3, 4}})
	require.ErrorIs(t, err, arc.ErrMalformedScoreMatrix)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = arc.FromModifierColumns([][]float64{{1}, {math.NaN()}})
	require.NoError(t, err, "the only NaN sits on the unused diagonal")

	_, err = arc.FromModifierColumns([][]float64{{math.NaN()}, {1}})
	require.ErrorIs(t, err, arc.ErrMalformedScoreMatrix)
}

// TestValidate_Nil ensures a nil matrix is reported, not dereferenced.
func TestValidate_Nil(t *testing.T) {
	var s *arc.ScoreMatrix
	require.ErrorIs(t, s.Validate(), arc.ErrMalformedScoreMatrix)
	require.ErrorIs(t, s.Validate(), matrix.ErrNilMatrix)
}

// TestAccessors covers bounds checking and Column/Weights copies.
func TestAccessors(t *testing.T) {
	s, err := arc.New(2)
	require.NoError(t, err)

	require.NoError(t, s.Set(2, 1, 5))
	v, err := s.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	_, err = s.At(3, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, s.Set(0, -1, 1), matrix.ErrOutOfRange)

	col, err := s.Column(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 5}, col)
	_, err = s.Column(0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	w := s.Weights()
	require.Len(t, w, 9)
	assert.Equal(t, 5.0, w[2*3+1])
	w[2*3+1] = -1
	v, _ = s.At(2, 1)
	assert.Equal(t, 5.0, v, "Weights must return a copy")
}

// TestShifted_KeepsGoldArcs verifies the margin augmentation and that the input is untouched.
func TestShifted_KeepsGoldArcs(t *testing.T) {
	s, err := arc.FromSquare([][]float64{
		{0, 1, 2, 3},
		{0, 0, 4, 5},
		{0, 6, 0, 7},
		{0, 8, 9, 0},
	})
	require.NoError(t, err)
	gold := []int{0, 1, 1}

	sh, err := s.Shifted(gold, 1)
	require.NoError(t, err)

	var h, m int
	for h = 0; h <= 3; h++ {
		for m = 1; m <= 3; m++ {
			if h == m {
				continue
			}
			orig, _ := s.At(h, m)
			got, _ := sh.At(h, m)
			if gold[m-1] == h {
				assert.Equal(t, orig, got, "gold arc %d→%d", h, m)
			} else {
				assert.Equal(t, orig+1, got, "arc %d→%d", h, m)
			}
		}
	}
	v, _ := s.At(2, 1)
	assert.Equal(t, 6.0, v, "source matrix must not be mutated")

	_, err = s.Shifted([]int{0, 1}, 1)
	require.ErrorIs(t, err, arc.ErrMalformedScoreMatrix)
	_, err = s.Shifted([]int{0, 1, 4}, 1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestPerturbed_SeedDeterminism checks that equal seeds give equal noise.
func TestPerturbed_SeedDeterminism(t *testing.T) {
	s, err := arc.New(4)
	require.NoError(t, err)

	a := s.Perturbed(0.5, rand.New(rand.NewSource(7)))
	b := s.Perturbed(0.5, rand.New(rand.NewSource(7)))
	c := s.Perturbed(0.5, rand.New(rand.NewSource(8)))

	assert.Equal(t, a.Weights(), b.Weights())
	assert.NotEqual(t, a.Weights(), c.Weights())
	for _, v := range s.Weights() {
		assert.Zero(t, v, "source matrix must not be mutated")
	}
	require.NoError(t, a.Validate())
}
