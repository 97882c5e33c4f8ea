package nodegraph

import (
	"sort"

	"github.com/waygraph/waygraph/annotation"
	"github.com/waygraph/waygraph/geometry"
)

// ViaNodeChecker reports whether a node-based node is the via-node of any
// turn restriction. The restriction package implements this; nodegraph
// depends only on the interface to avoid an import cycle (a
// compressible node must not be a restriction via-node).
type ViaNodeChecker interface {
	IsViaNode(NodeID) bool
}

// EdgeClassifier resolves an edge's annotation index to the road
// classification interned for it; annotation.Table implements this. A nil
// classifier treats every edge as equally classified.
type EdgeClassifier interface {
	ClassificationFor(annotationIndex uint32) annotation.ClassificationFlags
}

// CompressionStats summarizes one Compress() run, used by the top-level
// pipeline runner to report SemanticWarning-class counts.
type CompressionStats struct {
	NodesRemoved int
	EdgesMerged  int
}

// reverseIndex tracks, for every node, the set of (source, edge id) pairs
// whose edge targets it — the inverse of the forward CSR adjacency. Compression is
// the only stage that needs predecessor lookups, so the index is built
// once per Compress call and kept current as edges are merged, rather than
// rescanning the whole graph for every candidate node.
type reverseIndex map[NodeID][]inEdge

type inEdge struct {
	source NodeID
	edge   EdgeID
}

func buildReverseIndex(g *Graph) reverseIndex {
	idx := make(reverseIndex, g.NumNodes())
	for u := NodeID(0); u < NodeID(g.NumNodes()); u++ {
		begin, end := g.AdjacentEdges(u)
		for e := begin; e < end; e++ {
			if g.IsDummy(e) {
				continue
			}
			t := g.Target(e)
			idx[t] = append(idx[t], inEdge{source: u, edge: e})
		}
	}

	return idx
}

func (idx reverseIndex) remove(v NodeID, e EdgeID) {
	list := idx[v]
	for i, in := range list {
		if in.edge == e {
			idx[v] = append(list[:i], list[i+1:]...)

			return
		}
	}
}

// Compress collapses chains of degree-2 nodes into single edges whose
// interior geometry is recorded in the graph's GeometryStore A
// node v is compressible when: its out-degree is exactly 2 (a pass-through
// between two neighbors, reflecting that a bidirectional road contributes
// one outgoing edge per direction), it is not a barrier or traffic signal,
// it is not the via-node of any restriction, and the edge pairs being
// merged are compatible (same name, mode, reversed flag, and
// classification). Repeats to a fixed point.
//
// Compress mutates the graph in place and is not safe for concurrent use;
// compression runs single-threaded.
func Compress(g *Graph, restrictions ViaNodeChecker, classes EdgeClassifier) CompressionStats {
	var stats CompressionStats

	rev := buildReverseIndex(g)

	changed := true
	for changed {
		changed = false
		for v := NodeID(0); v < NodeID(g.NumNodes()); v++ {
			if !isCompressible(g, restrictions, v) {
				continue
			}

			merges := chainMerges(g, rev, v, classes)
			if merges == nil {
				continue
			}

			// Apply merges from the highest out-edge slot in v's block
			// downward: since v's block holds exactly two live edges,
			// deleting the higher one first never triggers the
			// swap-with-last relocation that deleteEdgeTracked's
			// bookkeeping is otherwise needed for on the *second* delete
			// within the same block.
			sort.Slice(merges, func(i, j int) bool { return merges[i].outEdge > merges[j].outEdge })

			for _, m := range merges {
				applyMerge(g, rev, v, m)
				stats.EdgesMerged++
			}
			stats.NodesRemoved++
			changed = true
		}
	}

	return stats
}

// chainMerge describes one u->v->w pair to collapse into u->w.
type chainMerge struct {
	inEdge  EdgeID
	inFrom  NodeID
	outEdge EdgeID
	outTo   NodeID
}

// isCompressible implements the node-level gating (barrier,
// traffic signal, restriction via-node). Edge compatibility is checked
// per-direction in chainMerges, since a node can be compressible in one
// direction but not the other.
func isCompressible(g *Graph, restrictions ViaNodeChecker, v NodeID) bool {
	if g.IsBarrier(v) || g.IsTrafficSignal(v) {
		return false
	}
	if restrictions != nil && restrictions.IsViaNode(v) {
		return false
	}

	return g.OutDegree(v) == 2
}

// chainMerges finds the pass-through merges available at v: for each
// outgoing edge v->w, the unique predecessor u->v whose edge is compatible
// with v->w. Returns nil if no direction qualifies.
func chainMerges(g *Graph, rev reverseIndex, v NodeID, classes EdgeClassifier) []chainMerge {
	begin, end := g.AdjacentEdges(v)

	var merges []chainMerge
	for outE := begin; outE < end; outE++ {
		if g.IsDummy(outE) {
			continue
		}
		w := g.Target(outE)
		if w == v {
			continue
		}

		for _, pred := range rev[v] {
			if pred.source == w {
				continue // don't fold a u-turn-shaped pair back on itself
			}
			if compatible(g.EdgeData(pred.edge), g.EdgeData(outE), classes) {
				merges = append(merges, chainMerge{
					inEdge:  pred.edge,
					inFrom:  pred.source,
					outEdge: outE,
					outTo:   w,
				})

				break
			}
		}
	}

	if len(merges) == 0 {
		return nil
	}

	return merges
}

// compatible reports whether two edges incident to a degree-2 node share
// the attributes required to merge them: same name, same mode, same
// reversed flag, and the same road classification per the annotation
// table. The access-restricted and roundabout flags must also agree, since
// the merged edge can only carry one value of each.
func compatible(a, b *EdgeAttributes, classes EdgeClassifier) bool {
	if classes != nil && classes.ClassificationFor(a.AnnotationIndex) != classes.ClassificationFor(b.AnnotationIndex) {
		return false
	}

	return a.NameID == b.NameID &&
		a.Mode == b.Mode &&
		a.Reversed == b.Reversed &&
		a.AccessRestricted == b.AccessRestricted &&
		a.Roundabout == b.Roundabout
}

// applyMerge removes the u->v and v->w edges of m, inserting a single
// u->w edge carrying their summed weight/duration and concatenated
// geometry, and keeps the reverse index consistent.
func applyMerge(g *Graph, rev reverseIndex, v NodeID, m chainMerge) {
	inData := *g.EdgeData(m.inEdge)
	outData := *g.EdgeData(m.outEdge)

	merged := EdgeAttributes{
		Target:           m.outTo,
		Weight:           inData.Weight + outData.Weight,
		Distance:         inData.Distance + outData.Distance,
		Duration:         inData.Duration + outData.Duration,
		Forward:          inData.Forward,
		Backward:         inData.Backward,
		Reversed:         inData.Reversed,
		Roundabout:       inData.Roundabout,
		AccessRestricted: inData.AccessRestricted,
		Startpoint:       inData.Startpoint,
		Mode:             inData.Mode,
		NameID:           inData.NameID,
		Barrier:          outData.Barrier,
		TrafficSignal:    outData.TrafficSignal,
	}

	geo := g.Geometry()
	merged.GeometryID = geo.Append(concatenateGeometry(geo, inData.GeometryID, outData.GeometryID))

	deleteEdgeTracked(g, rev, m.inFrom, m.inEdge)
	newEdge := g.InsertEdge(m.inFrom, merged)
	rev[m.outTo] = append(rev[m.outTo], inEdge{source: m.inFrom, edge: newEdge})

	deleteEdgeTracked(g, rev, v, m.outEdge)
}

// deleteEdgeTracked deletes edge e from source's block and repairs the
// reverse index: DeleteEdge swaps e with the block's last slot, so
// whichever edge used to live at "last" now lives at e and must be
// re-indexed under its target.
func deleteEdgeTracked(g *Graph, rev reverseIndex, source NodeID, e EdgeID) {
	_, end := g.AdjacentEdges(source)
	last := end - 1

	rev.remove(g.Target(e), e)

	if last != e && !g.IsDummy(last) {
		movedTarget := g.Target(last)
		rev.remove(movedTarget, last)
		rev[movedTarget] = append(rev[movedTarget], inEdge{source: source, edge: e})
	}

	g.DeleteEdge(source, e)
}

// concatenateGeometry builds the new interior coordinate sequence for a
// merged edge by splicing the incoming edge's interior coordinates with
// the outgoing edge's ("the geometry concatenation u,v,w with v
// as interior coordinate" — v's own coordinate is the join point already
// present as the trailing/leading element of the adjacent sequences).
func concatenateGeometry(store *GeometryStore, inID, outID GeometryID) []geometry.Coordinate {
	var result []geometry.Coordinate

	if coords, err := store.Get(inID); err == nil {
		result = append(result, coords...)
	}
	if coords, err := store.Get(outID); err == nil {
		result = append(result, coords...)
	}

	return result
}
