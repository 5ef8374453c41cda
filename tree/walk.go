package tree

import "fmt"

// Option configures Walk.
type Option func(*WalkOptions)

// WalkOptions holds configurable parameters for a depth-first walk from the root.
type WalkOptions struct {
	// OnVisit, if non-nil, is invoked when a node is first reached (pre-order).
	// Returning an error aborts the walk with that error.
	OnVisit func(node, depth int) error

	// OnExit, if non-nil, is invoked after all descendants of a node were
	// explored (post-order). Returning an error aborts the walk.
	OnExit func(node int) error

	// MaxDepth, if non-negative, stops descending below that depth.
	// A depth of 0 visits only the root. Default is -1 (no limit).
	MaxDepth int
}

// DefaultWalkOptions returns WalkOptions with no hooks and no depth limit.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{MaxDepth: -1}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(node, depth int) error) Option {
	return func(o *WalkOptions) { o.OnVisit = fn }
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(node int) error) Option {
	return func(o *WalkOptions) { o.OnExit = fn }
}

// WithMaxDepth limits the walk to nodes at depth ≤ limit.
func WithMaxDepth(limit int) Option {
	return func(o *WalkOptions) { o.MaxDepth = limit }
}

// WalkResult captures the outcome of Walk.
type WalkResult struct {
	// Order lists nodes in pre-order, starting with the root 0. Siblings are
	// visited in ascending index order.
	Order []int

	// Depth[v] is the number of arcs between the root and v, or -1 when v was
	// not reached (cycle members, or nodes beyond MaxDepth).
	Depth []int
}

// Reached reports how many tokens (root excluded) the walk reached.
func (r *WalkResult) Reached() int {
	return len(r.Order) - 1
}

// Children returns, for every node 0..n, its dependents in ascending order.
// Heads outside 0..n are ignored.
// Complexity: O(n).
func Children(h Heads) [][]int {
	n := len(h)
	out := make([][]int, n+1)
	for i, head := range h {
		if head < 0 || head > n {
			continue
		}
		out[head] = append(out[head], i+1)
	}

	return out
}

// frame is one entry of the explicit DFS stack.
type frame struct {
	node  int
	depth int
	next  int // index of the next child to explore
}

// Walk performs an iterative depth-first traversal from the root over the
// children lists of h. It does not require h to be valid: nodes on a cycle
// are simply never reached, which makes Walk usable as a reachability check
// (valid trees reach all n tokens).
//
// Errors: any error returned by a hook, wrapped with the node id.
// Complexity: O(n) time and memory.
func Walk(h Heads, opts ...Option) (*WalkResult, error) {
	wopts := DefaultWalkOptions()
	for _, fn := range opts {
		fn(&wopts)
	}

	n := len(h)
	children := Children(h)
	res := &WalkResult{
		Order: make([]int, 0, n+1),
		Depth: make([]int, n+1),
	}
	for v := range res.Depth {
		res.Depth[v] = -1
	}

	visit := func(node, depth int) error {
		res.Depth[node] = depth
		res.Order = append(res.Order, node)
		if wopts.OnVisit != nil {
			if err := wopts.OnVisit(node, depth); err != nil {
				return fmt.Errorf("tree: OnVisit hook for %d: %w", node, err)
			}
		}
		return nil
	}

	if err := visit(0, 0); err != nil {
		return res, err
	}
	stack := []frame{{node: 0}}
	var top *frame
	var child int
	for len(stack) > 0 {
		top = &stack[len(stack)-1]
		kids := children[top.node]
		canDescend := wopts.MaxDepth < 0 || top.depth < wopts.MaxDepth
		if canDescend && top.next < len(kids) {
			child = kids[top.next]
			top.next++
			if res.Depth[child] >= 0 {
				continue
			}
			if err := visit(child, top.depth+1); err != nil {
				return res, err
			}
			stack = append(stack, frame{node: child, depth: top.depth + 1})
			continue
		}

		// Post-order: all children explored.
		if wopts.OnExit != nil {
			if err := wopts.OnExit(top.node); err != nil {
				return res, fmt.Errorf("tree: OnExit hook for %d: %w", top.node, err)
			}
		}
		stack = stack[:len(stack)-1]
	}

	return res, nil
}
