package edmonds_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/tree"
)

// randomMatrix fills every used cell with N(0,1) scores.
func randomMatrix(t testing.TB, rng *rand.Rand, n int) *arc.ScoreMatrix {
	t.Helper()
	s, err := arc.New(n)
	require.NoError(t, err)
	for h := 0; h <= n; h++ {
		for m := 1; m <= n; m++ {
			if h != m {
				require.NoError(t, s.Set(h, m, rng.NormFloat64()))
			}
		}
	}
	return s
}

// randomTree attaches tokens in random order to an already attached node.
func randomTree(rng *rand.Rand, n int) tree.Heads {
	h := make(tree.Heads, n)
	attached := []int{arc.Root}
	for _, i := range rng.Perm(n) {
		h[i] = attached[rng.Intn(len(attached))]
		attached = append(attached, i+1)
	}
	return h
}

// bruteForce enumerates every head assignment and returns the best tree score.
func bruteForce(t testing.TB, s *arc.ScoreMatrix) float64 {
	t.Helper()
	n := s.Len()
	h := make(tree.Heads, n)
	best := math.Inf(-1)
	var rec func(i int)
	rec = func(i int) {
		if i == n {
			if tree.Validate(h, n) != nil {
				return
			}
			v, err := tree.Score(s, h)
			require.NoError(t, err)
			if v > best {
				best = v
			}
			return
		}
		for head := 0; head <= n; head++ {
			if head == i+1 {
				continue
			}
			h[i] = head
			rec(i + 1)
		}
	}
	rec(0)
	return best
}
