// Package arc defines the arc score matrix: the dense (n+1)×(n+1) table of
// head→modifier scores a sentence scorer hands to the decoder.
//
// Orientation is fixed across the module: S[h][m] is the score of attaching
// modifier m to head h (row = head, column = modifier). Index 0 is the
// virtual root. Column 0 and the diagonal are never read by any consumer, so
// they may hold arbitrary values, including NaN.
package arc

import (
	"errors"

	"github.com/katalvlaran/arbor/matrix"
)

// Root is the index of the virtual root token.
const Root = 0

// ErrMalformedScoreMatrix is returned when a score matrix violates the input
// contract: nil, n < 1, non-square storage, a wrong modifier-column count, or
// a non-finite entry in a cell that decoding or a loss would read.
var ErrMalformedScoreMatrix = errors.New("arc: malformed score matrix")

// ScoreMatrix is the arc score matrix of one sentence with n real tokens.
// Storage is a single flat row-major matrix.Dense of size (n+1)×(n+1) with
// the finite-only policy disabled, since unused cells may hold anything;
// Validate checks every cell that is read.
//
// A ScoreMatrix is not safe for concurrent mutation. Decoders and losses only
// read it, so one matrix may be decoded from several goroutines at once.
type ScoreMatrix struct {
	n int           // number of real tokens
	d *matrix.Dense // (n+1)×(n+1) scores, row = head, col = modifier
}
