package graph

// GetLabel returns the opaque class label assigned to v by the
// clustering engine, or 0 if v is absent or no label has been set.
func (g *Graph) GetLabel(v int32) int32 {
	if !g.HasNode(v) {
		return 0
	}
	return g.label[v]
}

// SetLabel assigns class c to v. A no-op if v is absent.
func (g *Graph) SetLabel(v int32, c int32) {
	if !g.HasNode(v) {
		return
	}
	g.label[v] = c
}

// Nodes returns the ids of all present nodes in ascending order. Used by
// the Chinese Whispers engine to enumerate an ego network's members.
func (g *Graph) Nodes() []int32 {
	nodes := make([]int32, 0, g.size)
	for v := 0; v < len(g.present); v++ {
		if g.present[v] {
			nodes = append(nodes, int32(v))
		}
	}
	return nodes
}
