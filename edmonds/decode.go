package edmonds

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/arbor/arc"
	"github.com/katalvlaran/arbor/tree"
)

// none marks a missing head or an unmapped node.
const none = -1

// level is one contraction problem: k nodes (0 is the root) and a flat k×k
// weight table, w[h*k+m]. Arcs into the root and self-loops hold -Inf.
type level struct {
	k int
	w []float64
}

func (l *level) at(h, m int) float64 { return l.w[h*l.k+m] }

// frame records what expansion needs to undo one contraction.
type frame struct {
	k      int   // node count before contraction
	greedy []int // greedy head per node at that level
	cycle  []int // members, ascending
	keep   []int // surviving nodes in order; keep[new] = old
	enter  []int // enter[newHead] = member reached by the best arc from newHead
	leave  []int // leave[newMod] = member that is the best source toward newMod
}

// Decode returns the maximum spanning arborescence of s and its total score.
//
// The result has length n; result.Head(m) is the head of token m.
//
// Errors: arc.ErrMalformedScoreMatrix when s fails Validate.
// Panics: with an error wrapping ErrDecodeInvariantViolation if the output is
// not a spanning arborescence (only when Verify is on).
// Complexity: O(n³) worst case.
func Decode(s *arc.ScoreMatrix, opts ...Option) (tree.Heads, float64, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := s.Validate(); err != nil {
		return nil, 0, fmt.Errorf("edmonds.Decode: %w", err)
	}

	heads := solve(initialLevel(s), o.OnContract)
	out := make(tree.Heads, s.Len())
	copy(out, heads[1:])

	if o.Verify {
		if err := tree.Validate(out, s.Len()); err != nil {
			panic(fmt.Errorf("edmonds.Decode: %w: %w", ErrDecodeInvariantViolation, err))
		}
	}
	score, err := tree.Score(s, out)
	if err != nil {
		panic(fmt.Errorf("edmonds.Decode: %w: %w", ErrDecodeInvariantViolation, err))
	}

	return out, score, nil
}

// Greedy returns the best-scoring head of every token on its own, ties to the
// smallest head. The result is an arborescence only when it has no cycle, in
// which case it equals Decode's answer.
//
// Errors: arc.ErrMalformedScoreMatrix when s fails Validate.
// Complexity: O(n²).
func Greedy(s *arc.ScoreMatrix) (tree.Heads, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("edmonds.Greedy: %w", err)
	}
	g := greedyHeads(initialLevel(s))

	return tree.Heads(g[1:]), nil
}

// initialLevel copies the scores of s, masking arcs that no tree may use.
func initialLevel(s *arc.ScoreMatrix) *level {
	k := s.Size()
	w := s.Weights()
	ninf := math.Inf(-1)
	for v := 0; v < k; v++ {
		w[v*k+arc.Root] = ninf
		w[v*k+v] = ninf
	}

	return &level{k: k, w: w}
}

// solve runs the contraction loop, then expands frames in reverse order.
// The returned slice has one entry per node of lv; entry 0 is none.
func solve(lv *level, hook func(Contraction)) []int {
	var stack []*frame
	var heads []int
	for {
		g := greedyHeads(lv)
		cyc := findCycle(g)
		if cyc == nil {
			heads = g
			break
		}
		f, next, kappa := contract(lv, g, cyc)
		if hook != nil {
			hook(Contraction{Level: len(stack), Size: lv.k, Cycle: cyc, Weight: kappa})
		}
		stack = append(stack, f)
		lv = next
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		heads = expand(f, heads)
	}

	return heads
}

// greedyHeads picks argmax_{h≠m} w[h][m] for every m ≥ 1.
// Root arcs are finite at every level, so every m gets a head.
func greedyHeads(lv *level) []int {
	g := make([]int, lv.k)
	g[arc.Root] = none

	var h, m, arg int
	var best, v float64
	for m = 1; m < lv.k; m++ {
		best, arg = math.Inf(-1), none
		for h = 0; h < lv.k; h++ {
			if h == m {
				continue
			}
			if v = lv.at(h, m); v > best {
				best, arg = v, h
			}
		}
		g[m] = arg
	}

	return g
}

// findCycle returns the members of the cycle reached first when scanning
// start nodes upward from 1, in ascending order, or nil if g is acyclic.
// Complexity: O(k).
func findCycle(g []int) []int {
	k := len(g)
	mark := make([]int, k) // 0 = unseen, otherwise the start that reached it
	var v int
	for start := 1; start < k; start++ {
		if mark[start] != 0 {
			continue
		}
		v = start
		for v != arc.Root && mark[v] == 0 {
			mark[v] = start
			v = g[v]
		}
		if v == arc.Root || mark[v] != start {
			continue
		}
		// v lies on a cycle discovered during this walk.
		cyc := []int{v}
		for u := g[v]; u != v; u = g[u] {
			cyc = append(cyc, u)
		}
		slices.Sort(cyc)

		return cyc
	}

	return nil
}

// contract folds cyc into a single node appended after the survivors.
// It returns the expansion frame, the contracted level and κ.
func contract(lv *level, g, cyc []int) (*frame, *level, float64) {
	k := lv.k
	f := &frame{
		k:      k,
		greedy: g,
		cycle:  cyc,
	}
	inCycle := make([]bool, k)
	var kappa float64
	for _, c := range cyc {
		inCycle[c] = true
		kappa += lv.at(g[c], c)
	}
	for v := 0; v < k; v++ {
		if !inCycle[v] {
			f.keep = append(f.keep, v)
		}
	}

	nk := len(f.keep) + 1
	c := nk - 1
	next := &level{k: nk, w: make([]float64, nk*nk)}
	ninf := math.Inf(-1)
	for i := range next.w {
		next.w[i] = ninf
	}
	f.enter = make([]int, nk)
	f.leave = make([]int, nk)
	for i := range f.enter {
		f.enter[i], f.leave[i] = none, none
	}

	var nu, nv, u, v int
	var val float64
	for nu, u = range f.keep {
		// Arcs between survivors are unchanged.
		for nv, v = range f.keep {
			next.w[nu*nk+nv] = lv.at(u, v)
		}
		// Entering arcs u → C: best member under the cycle-relative score.
		for _, m := range cyc {
			val = lv.at(u, m) - lv.at(g[m], m) + kappa
			if val > next.w[nu*nk+c] {
				next.w[nu*nk+c] = val
				f.enter[nu] = m
			}
		}
		// Leaving arcs C → u, the root never receives one.
		if u == arc.Root {
			continue
		}
		for _, m := range cyc {
			val = lv.at(m, u)
			if val > next.w[c*nk+nu] {
				next.w[c*nk+nu] = val
				f.leave[nu] = m
			}
		}
	}

	return f, next, kappa
}

// expand maps heads of the contracted level back to the level of f.
func expand(f *frame, inner []int) []int {
	c := len(f.keep)
	out := make([]int, f.k)
	out[arc.Root] = none

	for nu, u := range f.keep {
		if u == arc.Root {
			continue
		}
		if nh := inner[nu]; nh == c {
			out[u] = f.leave[nu]
		} else {
			out[u] = f.keep[nh]
		}
	}
	for _, m := range f.cycle {
		out[m] = f.greedy[m]
	}
	// The arc chosen into C breaks the cycle at its recorded member.
	nh := inner[c]
	out[f.enter[nh]] = f.keep[nh]

	return out
}
