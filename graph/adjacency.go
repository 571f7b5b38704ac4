package graph

import "fmt"

// AddNode marks v present, initializing its empty neighbor/weight
// sequences and membership set. A no-op if v is already present.
// Returns a wrapped ErrNegativeNode if v < 0, since node ids double as
// dense array indices and cannot be negative.
//
// Complexity: amortized O(1).
func (g *Graph) AddNode(v int32) error {
	if v < 0 {
		return fmt.Errorf("AddNode(%d): %w", v, ErrNegativeNode)
	}
	g.growTo(v)
	if g.present[v] {
		return nil
	}
	g.present[v] = true
	g.member[v] = make(map[int32]int)
	g.size++
	return nil
}

// AddEdge inserts the undirected edge (u, v, w). It is a no-op when
// u == v (no self-loops, invariant ii) or when either endpoint is
// negative (ErrNegativeNode — see AddNode). Both endpoints are
// auto-added if absent. Re-inserting an edge that already exists is
// idempotent on the adjacency lists: the first writer's weight wins and
// is never updated by a later AddEdge(u, v, ...) call (spec.md §9 open
// question 2).
//
// Complexity: O(1) expected (map membership check both directions).
func (g *Graph) AddEdge(u, v int32, w float32) {
	if u == v || u < 0 || v < 0 {
		return
	}
	// u, v >= 0 here, so AddNode cannot fail.
	_ = g.AddNode(u)
	_ = g.AddNode(v)

	if _, exists := g.member[u][v]; exists {
		return
	}

	g.member[u][v] = len(g.adj[u])
	g.adj[u] = append(g.adj[u], v)
	g.wt[u] = append(g.wt[u], w)

	g.member[v][u] = len(g.adj[v])
	g.adj[v] = append(g.adj[v], u)
	g.wt[v] = append(g.wt[v], w)
}

// HasNode reports whether v has been added to the graph.
func (g *Graph) HasNode(v int32) bool {
	if v < 0 || int(v) >= len(g.present) {
		return false
	}
	return g.present[v]
}

// Size returns the count of present nodes.
func (g *Graph) Size() int {
	return g.size
}

// Capacity returns the number of node ids the graph can currently index
// without reallocating, exposed mainly for tests asserting geometric
// growth behavior.
func (g *Graph) Capacity() int {
	return cap(g.present)
}

// Bound returns one past the highest node id ever added (0 for an empty
// graph). Callers that need to enumerate "every base node" — the worker
// pool splitting [0, N) into ranges — use this as N, since sort_edges and
// loading only ever observe node ids that appeared in some edge record.
func (g *Graph) Bound() int {
	return len(g.present)
}
