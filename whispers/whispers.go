// Package whispers builds a per-token ego network from a loaded
// similarity graph and partitions it with the Chinese Whispers
// label-propagation algorithm, emitting base-node clusters that meet a
// minimum size threshold. Grounded on spec.md §4.6.
//
// Chinese Whispers is explicitly randomized (spec.md §9): do not write
// tests asserting exact partitions, only termination, the size filter,
// and sense-id monotonicity.
package whispers

import (
	"math/rand"

	"github.com/katalvlaran/lvlath-senses/graph"
)

// negativeInfinityFloor is the propagation step's initial "no label seen
// yet" sentinel. Cosine-similarity weights lie in [-1, 1], so any
// observed sum exceeds it; this is unsafe only if callers feed edge
// weights <= -10000, which is out of domain for this pipeline (spec.md
// §9, open question 4).
const negativeInfinityFloor = -10000.0

// unassignedLabel is never produced by Step 2's 1-based label
// initialization, so it is reserved as the ego-network "no label yet"
// sentinel — never observed once propagation has run at least once.
const unassignedLabel = 0

// Options bounds the ego-network construction and label propagation.
type Options struct {
	MaxEdges        int // neighbors of the base node considered (spec.md default 200)
	MaxConnectivity int // neighbor-of-neighbor edges considered per neighbor (default 200)
	MaxIterations   int // propagation sweep cap (default 100)
	MinCluster      int // minimum members for a cluster to be published (default 5)
}

// Member is one cluster member: a node id and its edge weight to the
// cluster's base node in the original graph (not the ego network).
type Member struct {
	Node   int32
	Weight float32
}

// Cluster is one emitted sense: the base node, a per-base-node
// monotonically increasing sense id starting at 1, and its members.
type Cluster struct {
	BaseNode int32
	SenseID  int32
	Members  []Member
}

// Run computes zero or more clusters for base within g, using rng for the
// per-iteration shuffle. Each call should be given its own *rand.Rand;
// reusing one across concurrent calls is not safe (math/rand.Rand is not
// safe for concurrent use).
func Run(g *graph.Graph, base int32, opts Options, rng *rand.Rand) []Cluster {
	ego, order := buildEgoNetwork(g, base, opts)
	if len(order) == 0 {
		return nil
	}

	initLabels(ego, order)
	propagate(ego, order, opts.MaxIterations, rng)

	return extractClusters(g, ego, base, order, opts.MinCluster)
}

// buildEgoNetwork constructs E_v per spec.md §4.6 Step 1: nbrs is v's
// neighbors truncated to the first MaxEdges entries of adj(v) — which,
// after Graph.SortEdges, are the *lowest*-weight neighbors, not the
// highest (spec.md §9 open question 1). This is the reference behavior,
// implemented literally rather than "fixed".
//
// order is the ego network's node list in construction order (every
// selected neighbor, even one left with no ego edges), used for label
// initialization and iteration so results don't depend on Go's map
// iteration order.
func buildEgoNetwork(g *graph.Graph, base int32, opts Options) (*graph.Graph, []int32) {
	nbrs := g.Neighbors(base)
	if len(nbrs) > opts.MaxEdges {
		nbrs = nbrs[:opts.MaxEdges]
	}
	if len(nbrs) == 0 {
		return graph.NewGraph(0), nil
	}

	inNbrs := make(map[int32]bool, len(nbrs))
	for _, u := range nbrs {
		inNbrs[u] = true
	}

	ego := graph.NewGraph(len(nbrs))
	order := make([]int32, len(nbrs))
	copy(order, nbrs)
	for _, u := range nbrs {
		_ = ego.AddNode(u) // u came from g.Neighbors, already non-negative
	}

	for _, u := range nbrs {
		edges := g.Edges(u)
		if len(edges) > opts.MaxConnectivity {
			edges = edges[:opts.MaxConnectivity]
		}
		for _, e := range edges {
			if e.Node == base || !inNbrs[e.Node] {
				continue
			}
			ego.AddEdge(u, e.Node, e.Weight)
		}
	}
	return ego, order
}

// initLabels assigns labels 1, 2, 3, ... to order's nodes in list order
// (spec.md §4.6 Step 2; 0 is reserved as the unassigned sentinel).
func initLabels(ego *graph.Graph, order []int32) {
	for i, v := range order {
		ego.SetLabel(v, int32(i)+1)
	}
}

// propagate runs up to maxIterations label-propagation sweeps, stopping
// early when a sweep makes no change (spec.md §4.6 Step 3).
func propagate(ego *graph.Graph, order []int32, maxIterations int, rng *rand.Rand) {
	if maxIterations <= 0 {
		maxIterations = 1
	}
	shuffled := make([]int32, len(order))
	copy(shuffled, order)

	for iter := 0; iter < maxIterations; iter++ {
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		changed := false
		for _, x := range shuffled {
			winner, ok := winningLabel(ego, x)
			if !ok {
				continue // isolated node in the ego network: nothing to propagate
			}
			if ego.GetLabel(x) != winner {
				ego.SetLabel(x, winner)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// winningLabel sums incident edge weights by neighbor label and returns
// the label with the largest sum. Ties go to whichever label was first
// reached while scanning x's edges in ego-network insertion order (a
// deterministic, documented policy; spec.md notes the choice is
// arbitrary since labels carry no meaning of their own).
func winningLabel(ego *graph.Graph, x int32) (int32, bool) {
	edges := ego.Edges(x)
	if len(edges) == 0 {
		return 0, false
	}

	var order []int32
	sums := make(map[int32]float32)
	for _, e := range edges {
		lbl := ego.GetLabel(e.Node)
		if _, seen := sums[lbl]; !seen {
			order = append(order, lbl)
		}
		sums[lbl] += e.Weight
	}

	best := int32(unassignedLabel)
	bestSum := float32(negativeInfinityFloor)
	for _, lbl := range order {
		if sums[lbl] > bestSum {
			bestSum = sums[lbl]
			best = lbl
		}
	}
	return best, true
}

// extractClusters partitions order's nodes by final label (spec.md §4.6
// Step 4), publishing only groups meeting minCluster, with monotonically
// increasing sense ids starting at 1 for published clusters.
func extractClusters(g, ego *graph.Graph, base int32, order []int32, minCluster int) []Cluster {
	remaining := make([]int32, len(order))
	copy(remaining, order)

	var clusters []Cluster
	var senseID int32

	for len(remaining) > 0 {
		target := ego.GetLabel(remaining[0])

		var group, rest []int32
		for _, v := range remaining {
			if ego.GetLabel(v) == target {
				group = append(group, v)
			} else {
				rest = append(rest, v)
			}
		}
		remaining = rest

		if len(group) < minCluster {
			continue
		}
		senseID++
		members := make([]Member, len(group))
		for i, v := range group {
			members[i] = Member{Node: v, Weight: g.EdgeWeight(base, v)}
		}
		clusters = append(clusters, Cluster{BaseNode: base, SenseID: senseID, Members: members})
	}
	return clusters
}
