package graph

import "sort"

// Edge is a single (neighbor, weight) pair as returned by Edges.
type Edge struct {
	Node   int32
	Weight float32
}

// Neighbors returns the ordered sequence of neighbor ids of v. Empty (nil)
// for an absent v.
//
// Complexity: O(1) — returns the backing slice directly; callers must not
// mutate it.
func (g *Graph) Neighbors(v int32) []int32 {
	if !g.HasNode(v) {
		return nil
	}
	return g.adj[v]
}

// Edges returns the ordered sequence of (neighbor, weight) pairs incident
// to v. Empty (nil) for an absent v.
//
// Complexity: O(deg(v)).
func (g *Graph) Edges(v int32) []Edge {
	if !g.HasNode(v) {
		return nil
	}
	adj, wt := g.adj[v], g.wt[v]
	edges := make([]Edge, len(adj))
	for i := range adj {
		edges[i] = Edge{Node: adj[i], Weight: wt[i]}
	}
	return edges
}

// EdgeWeight returns the weight of the edge (u, v), or 0 if either node or
// the edge itself is absent. Implemented as a linear scan over adj(u), per
// spec.md §4.2 — callers needing repeated lookups should prefer the
// membership map built during AddEdge, which this type keeps internally
// but does not expose.
//
// Complexity: O(deg(u)).
func (g *Graph) EdgeWeight(u, v int32) float32 {
	if !g.HasNode(u) {
		return 0
	}
	for i, nb := range g.adj[u] {
		if nb == v {
			return g.wt[u][i]
		}
	}
	return 0
}

// SortEdges reorders every node's adjacency and weight sequences in
// tandem by ascending weight (invariant iv). Must be called once after
// loading; the clustering engine's ego-network truncation
// (max_edges/max_connectivity) depends on this order.
//
// Complexity: O(N·k log k) where k is the average degree.
func (g *Graph) SortEdges() {
	for v := 0; v < len(g.present); v++ {
		if !g.present[v] {
			continue
		}
		adj, wt := g.adj[v], g.wt[v]
		idx := make([]int, len(adj))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool { return wt[idx[a]] < wt[idx[b]] })

		sortedAdj := make([]int32, len(adj))
		sortedWt := make([]float32, len(wt))
		for newPos, oldPos := range idx {
			sortedAdj[newPos] = adj[oldPos]
			sortedWt[newPos] = wt[oldPos]
		}
		g.adj[v] = sortedAdj
		g.wt[v] = sortedWt

		members := g.member[int32(v)]
		for newPos, nb := range sortedAdj {
			members[nb] = newPos
		}
	}
}
