// Package tree defines head assignments (dependency trees over tokens 1..n
// rooted at the virtual root 0) and the checks that keep them valid.
//
// A Heads value is a spanning arborescence when:
//   - it has exactly n entries, entry i holding the head of token i+1;
//   - every head lies in 0..n and no token heads itself;
//   - following heads from any token reaches the root (no cycles).
//
// Validate enforces all three with a disjoint-set pass; Walk and Children
// expose the tree top-down.
package tree

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/arbor/arc"
)

// ErrInvalidHeads indicates a head assignment that is not a spanning
// arborescence rooted at 0: wrong length, out-of-range head, self head, or cycle.
var ErrInvalidHeads = errors.New("tree: invalid head assignment")

// Heads is a head assignment for tokens 1..n. Heads[i] is the head of token
// i+1; use Head(m) for 1-based access. The root has no entry.
type Heads []int

// Len returns n, the number of tokens.
func (h Heads) Len() int { return len(h) }

// Head returns the head of token m (1-based). It panics when m is outside 1..n,
// like slice indexing.
func (h Heads) Head(m int) int { return h[m-1] }

// Clone returns an independent copy.
func (h Heads) Clone() Heads {
	if h == nil {
		return nil
	}
	out := make(Heads, len(h))
	copy(out, h)

	return out
}

// Equal reports whether h and o assign the same head to every token.
func (h Heads) Equal(o Heads) bool {
	if len(h) != len(o) {
		return false
	}
	for i := range h {
		if h[i] != o[i] {
			return false
		}
	}

	return true
}

// Hamming returns the number of tokens whose head differs between h and o.
// Errors: ErrInvalidHeads on a length mismatch.
func Hamming(h, o Heads) (int, error) {
	if len(h) != len(o) {
		return 0, fmt.Errorf("tree.Hamming: lengths %d and %d: %w", len(h), len(o), ErrInvalidHeads)
	}
	var diff int
	for i := range h {
		if h[i] != o[i] {
			diff++
		}
	}

	return diff, nil
}

// Validate checks that h is a spanning arborescence over n tokens rooted at 0.
//
// Steps:
//  1. Length must equal n (n ≥ 1).
//  2. Every head in 0..n and different from its token.
//  3. Union each arc (head, token) into a disjoint set; since every token has
//     exactly one incoming arc, n arcs over n+1 nodes without a repeated
//     component form a tree, and that tree is rooted at 0.
//
// Errors: ErrInvalidHeads wrapped with the first offending token.
// Complexity: O(n·α(n)).
func Validate(h Heads, n int) error {
	if n < 1 || len(h) != n {
		return fmt.Errorf("tree.Validate: %d heads for %d tokens: %w", len(h), n, ErrInvalidHeads)
	}

	var m, head int
	for m = 1; m <= n; m++ {
		head = h[m-1]
		if head < arc.Root || head > n {
			return fmt.Errorf("tree.Validate: token %d has head %d outside 0..%d: %w", m, head, n, ErrInvalidHeads)
		}
		if head == m {
			return fmt.Errorf("tree.Validate: token %d heads itself: %w", m, ErrInvalidHeads)
		}
	}

	ds := newDisjointSet(n + 1)
	for m = 1; m <= n; m++ {
		if !ds.union(h[m-1], m) {
			return fmt.Errorf("tree.Validate: token %d closes a cycle: %w", m, ErrInvalidHeads)
		}
	}

	return nil
}

// Score returns Σ S[h(m)][m] over all tokens.
//
// Errors: ErrInvalidHeads when len(h) != s.Len(); matrix.ErrOutOfRange for a
// head outside 0..n.
// Complexity: O(n).
func Score(s *arc.ScoreMatrix, h Heads) (float64, error) {
	if len(h) != s.Len() {
		return 0, fmt.Errorf("tree.Score: %d heads for %d tokens: %w", len(h), s.Len(), ErrInvalidHeads)
	}
	var total, v float64
	var err error
	for i, head := range h {
		if v, err = s.At(head, i+1); err != nil {
			return 0, fmt.Errorf("tree.Score: token %d: %w", i+1, err)
		}
		total += v
	}

	return total, nil
}
