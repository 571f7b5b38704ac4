// Package graph implements an in-memory undirected weighted graph keyed by
// non-negative int32 node ids, the shape produced by the similarity kernel
// and consumed by the Chinese Whispers clustering engine.
//
// Unlike a general-purpose graph library, adjacency is stored as flat
// primitive slices (int32 ids, float32 weights) rather than boxed
// vertex/edge structs: node ids double as dense array indices, so a
// struct-per-node representation would only add pointer-chasing. See
// SPEC_FULL.md §7 ("flat primitive adjacency").
//
// A Graph is built serially (by graphio.Load or by whispers when
// constructing an ego network) and is safe for concurrent reads once
// construction has finished and happens-before with the readers — no
// internal locking is performed. Concurrent mutation is not supported.
package graph

// Graph is an undirected, weighted graph over node ids in [0, N).
type Graph struct {
	present []bool      // present[v]: whether node v has been added
	adj     [][]int32   // adj[v]: neighbor ids of v, insertion order
	wt      [][]float32 // wt[v][i]: weight of the edge to adj[v][i]
	member  []map[int32]int // member[v][u] = index into adj[v]/wt[v], for O(1) has-edge + weight lookup
	label   []int32     // label[v]: opaque class assigned by the clustering engine
	size    int         // count of present nodes
}

// NewGraph returns an empty Graph pre-sized to hold at least
// initialCapacity node ids without an immediate reallocation. A
// non-positive initialCapacity is treated as zero; capacity still grows
// geometrically as nodes beyond it are added.
func NewGraph(initialCapacity int) *Graph {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &Graph{
		present: make([]bool, 0, initialCapacity),
		adj:     make([][]int32, 0, initialCapacity),
		wt:      make([][]float32, 0, initialCapacity),
		member:  make([]map[int32]int, 0, initialCapacity),
		label:   make([]int32, 0, initialCapacity),
	}
}

// growTo ensures the dense backing slices can index node id v. When v is
// past the current length it reallocates, doubling the capacity (starting
// from 16 when it is zero) until it can hold v, per spec.md §4.2's
// geometric-growth requirement.
func (g *Graph) growTo(v int32) {
	need := int(v) + 1
	if need <= len(g.present) {
		return
	}
	newCap := cap(g.present)
	if newCap == 0 {
		newCap = 16
	}
	for newCap < need {
		newCap *= 2
	}

	present := make([]bool, need, newCap)
	adj := make([][]int32, need, newCap)
	wt := make([][]float32, need, newCap)
	member := make([]map[int32]int, need, newCap)
	label := make([]int32, need, newCap)

	copy(present, g.present)
	copy(adj, g.adj)
	copy(wt, g.wt)
	copy(member, g.member)
	copy(label, g.label)

	g.present = present
	g.adj = adj
	g.wt = wt
	g.member = member
	g.label = label
}
