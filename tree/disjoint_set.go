package tree

// disjointSet is a union-find over the integer nodes 0..size-1 with path
// compression and union by rank.
type disjointSet struct {
	parent []int
	rank   []int
}

// newDisjointSet puts every node in its own singleton set.
// Complexity: O(size).
func newDisjointSet(size int) *disjointSet {
	ds := &disjointSet{
		parent: make([]int, size),
		rank:   make([]int, size),
	}
	for v := range ds.parent {
		ds.parent[v] = v
	}

	return ds
}

// find returns the representative of v.
// Iterative, halving the path on the way up to avoid deep recursion.
func (ds *disjointSet) find(v int) int {
	for ds.parent[v] != v {
		ds.parent[v] = ds.parent[ds.parent[v]]
		v = ds.parent[v]
	}

	return v
}

// union merges the sets of u and v. It returns false when they already share
// a set, i.e. when the arc u–v would close a cycle.
// Complexity: O(α(n)) amortized.
func (ds *disjointSet) union(u, v int) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	// Attach smaller-rank tree under larger-rank root.
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}

	return true
}
