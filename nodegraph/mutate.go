package nodegraph

// InsertEdge adds a new outgoing edge from source to target with the given
// attributes, used only during compression. If there is free
// capacity immediately after source's edge block (a dummy slot), the edge
// is written in place; otherwise source's entire block is relocated to the
// end of the edge array with headroom, and the vacated slots are marked
// dummy (target == InvalidNodeID).
//
// Complexity: amortized O(1); worst case O(out-degree(source)) on
// relocation.
func (g *Graph) InsertEdge(source NodeID, attrs EdgeAttributes) EdgeID {
	n := &g.nodes[source]
	oneBeyond := n.firstEdge + EdgeID(n.count)

	canWriteInPlace := int(oneBeyond) < len(g.edges) && g.edges[oneBeyond].isDummy()
	if !canWriteInPlace {
		g.relocateBlock(source)
		n = &g.nodes[source]
		oneBeyond = n.firstEdge + EdgeID(n.count)
	}

	g.edges[oneBeyond] = edgeSlot{data: attrs}
	n.count++

	return oneBeyond
}

// relocateBlock moves source's entire edge block to the end of g.edges,
// with ~10% extra headroom (plus two slots) so a run of inserts amortizes,
// mirroring the growth policy in the original DynamicGraph::InsertEdge.
func (g *Graph) relocateBlock(source NodeID) {
	n := &g.nodes[source]
	newFirst := EdgeID(len(g.edges))
	headroom := n.count/10 + 2

	moved := make([]edgeSlot, n.count, n.count+headroom)
	copy(moved, g.edges[n.firstEdge:n.firstEdge+EdgeID(n.count)])
	g.markDummyRange(n.firstEdge, n.count)

	g.edges = append(g.edges, moved...)
	for i := uint32(0); i < headroom; i++ {
		g.edges = append(g.edges, edgeSlot{data: EdgeAttributes{Target: InvalidNodeID}})
	}

	n.firstEdge = newFirst
}

func (g *Graph) markDummyRange(first EdgeID, count uint32) {
	for i := EdgeID(0); i < EdgeID(count); i++ {
		g.edges[first+i] = edgeSlot{data: EdgeAttributes{Target: InvalidNodeID}}
	}
}

// DeleteEdge removes edge e (which must belong to source's block) by
// swapping it with the last edge in source's block, then marking the
// vacated last slot dummy's deletion policy.
func (g *Graph) DeleteEdge(source NodeID, e EdgeID) {
	n := &g.nodes[source]
	n.count--
	last := n.firstEdge + EdgeID(n.count)

	g.edges[e] = g.edges[last]
	g.edges[last] = edgeSlot{data: EdgeAttributes{Target: InvalidNodeID}}
}
