package loss

import (
	"math"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/tree"
)

// LocalNLL returns the per-token negative log-likelihood, averaged over
// tokens:
//
//	(1/n) Σ_m [ −S[gold[m]][m] + log Σ_{h≠m} exp(S[h][m]) ]
//
// Each column is a softmax over candidate heads; the diagonal is not a
// candidate. No tree constraint is applied and nothing is decoded. The value
// is ≥ 0 and tends to 0 as the gold arc outscores its column.
//
// Errors: arc.ErrMalformedScoreMatrix, ErrInvalidGoldHeads.
// Complexity: O(n²).
func LocalNLL(s *arc.ScoreMatrix, gold tree.Heads) (float64, error) {
	if err := checkInputs("loss.nll", s, gold); err != nil {
		return 0, err
	}

	n := s.Len()
	var total float64
	for m := 1; m <= n; m++ {
		col, err := s.Column(m)
		if err != nil {
			return 0, err
		}
		total += logSumExp(col, m) - col[gold.Head(m)]
	}

	return total / float64(n), nil
}

// logSumExp returns log Σ_{i≠skip} exp(v[i]), shifted by the maximum so that
// large scores do not overflow.
func logSumExp(v []float64, skip int) float64 {
	hi := math.Inf(-1)
	for i, x := range v {
		if i != skip && x > hi {
			hi = x
		}
	}
	var sum float64
	for i, x := range v {
		if i != skip {
			sum += math.Exp(x - hi)
		}
	}

	return hi + math.Log(sum)
}
