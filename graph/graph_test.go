package graph_test

import (
	"testing"

	"github.com/katalvlaran/lvlath-senses/graph"
)

// TestAddEdgeSymmetric covers invariant (i): adjacency is symmetric with
// matching weights on both endpoints. Mirrors spec.md scenario S2.
func TestAddEdgeSymmetric(t *testing.T) {
	g := graph.NewGraph(0)
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(2, 3, 0.8)

	assertNeighbors(t, g, 1, []int32{2})
	assertNeighbors(t, g, 2, []int32{1, 3})
	assertNeighbors(t, g, 3, []int32{2})

	if got := g.EdgeWeight(3, 2); got != 0.8 {
		t.Errorf("EdgeWeight(3,2) = %v, want 0.8", got)
	}
	if got := g.EdgeWeight(2, 3); got != 0.8 {
		t.Errorf("EdgeWeight(2,3) = %v, want 0.8", got)
	}
}

// TestAddEdgeNoSelfLoop covers invariant (ii).
func TestAddEdgeNoSelfLoop(t *testing.T) {
	g := graph.NewGraph(0)
	g.AddEdge(5, 5, 1.0)
	if g.HasNode(5) {
		t.Errorf("AddEdge(5,5,...) must not create node 5")
	}
}

// TestDuplicateEdgeFirstWriterWins covers spec.md scenario S3.
func TestDuplicateEdgeFirstWriterWins(t *testing.T) {
	g := graph.NewGraph(0)
	g.AddEdge(1, 2, 0.5)
	g.AddEdge(1, 2, 0.9)

	if got := g.EdgeWeight(1, 2); got != 0.5 {
		t.Errorf("EdgeWeight(1,2) = %v, want 0.5 (first writer wins)", got)
	}
	assertNeighbors(t, g, 1, []int32{2})
}

// TestSortEdgesAscending covers invariant (iv) and testable property 4.
func TestSortEdgesAscending(t *testing.T) {
	g := graph.NewGraph(0)
	g.AddEdge(0, 1, 0.9)
	g.AddEdge(0, 2, 0.1)
	g.AddEdge(0, 3, 0.5)

	g.SortEdges()

	edges := g.Edges(0)
	for i := 1; i < len(edges); i++ {
		if edges[i-1].Weight > edges[i].Weight {
			t.Fatalf("edges not ascending at %d: %+v", i, edges)
		}
	}
	if edges[0].Node != 2 || edges[len(edges)-1].Node != 1 {
		t.Errorf("unexpected order after sort: %+v", edges)
	}
}

// TestSortEdgesPreservesLookup ensures EdgeWeight/membership bookkeeping
// stays correct after SortEdges reorders the backing slices.
func TestSortEdgesPreservesLookup(t *testing.T) {
	g := graph.NewGraph(0)
	g.AddEdge(0, 1, 0.9)
	g.AddEdge(0, 2, 0.1)
	g.SortEdges()
	g.AddEdge(0, 3, 0.4) // new edge inserted after sort

	if got := g.EdgeWeight(0, 1); got != 0.9 {
		t.Errorf("EdgeWeight(0,1) after sort = %v, want 0.9", got)
	}
}

// TestGeometricGrowth covers spec.md §4.2's capacity-doubling requirement.
func TestGeometricGrowth(t *testing.T) {
	g := graph.NewGraph(4)
	initialCap := g.Capacity()
	if err := g.AddNode(100); err != nil {
		t.Fatalf("AddNode(100) returned error: %v", err)
	}
	if g.Capacity() <= initialCap {
		t.Errorf("Capacity did not grow: still %d after adding node 100", g.Capacity())
	}
	if !g.HasNode(100) {
		t.Errorf("node 100 should be present after AddNode")
	}
}

// TestAbsentNodeQueries ensures queries on absent nodes return zero values
// rather than panicking.
func TestAbsentNodeQueries(t *testing.T) {
	g := graph.NewGraph(0)
	if g.Neighbors(42) != nil {
		t.Errorf("Neighbors on absent node should be nil")
	}
	if g.Edges(42) != nil {
		t.Errorf("Edges on absent node should be nil")
	}
	if g.EdgeWeight(42, 43) != 0 {
		t.Errorf("EdgeWeight on absent nodes should be 0")
	}
}

func assertNeighbors(t *testing.T, g *graph.Graph, v int32, want []int32) {
	t.Helper()
	got := g.Neighbors(v)
	if len(got) != len(want) {
		t.Fatalf("Neighbors(%d) = %v, want %v", v, got, want)
	}
	seen := make(map[int32]bool, len(got))
	for _, n := range got {
		seen[n] = true
	}
	for _, n := range want {
		if !seen[n] {
			t.Errorf("Neighbors(%d) = %v, missing %d", v, got, n)
		}
	}
}
