package nodegraph

import "fmt"

// Graph is the directed, compressed-sparse-row node-based graph.
// nodes[n] holds the (first-edge, count) range into edges; the
// edge array grows past the initial CSR layout only through InsertEdge,
// which may relocate a single node's block to the end, leaving dummy
// sentinels behind.
//
// Graph is not safe for concurrent mutation; the compressor, the only
// stage that mutates it, runs single-threaded. Once frozen, concurrent
// readers only ever call the read-only methods below.
type Graph struct {
	nodes []node
	edges []edgeSlot

	barriers       map[NodeID]bool
	trafficSignals map[NodeID]bool

	geometry *GeometryStore
}

// NewGraph builds a Graph from edges (sorted by Source) and the
// barrier/traffic-signal node sets sourced from the Input graph's Nodes
// stream. Self-loops are rejected with ErrSelfLoop; an edge asserting
// neither Forward nor Backward is rejected with ErrNoDirection. When the
// input contains both (u,v) and (v,u), both directed edges are retained —
// no merging occurs at this stage.
//
// Complexity: O(N + E).
func NewGraph(nodeCount int, edges []InputEdge, nodes []InputNode) (*Graph, error) {
	g := &Graph{
		nodes:          make([]node, nodeCount+1),
		barriers:       make(map[NodeID]bool),
		trafficSignals: make(map[NodeID]bool),
		geometry:       NewGeometryStore(),
	}

	for _, n := range nodes {
		if n.Barrier {
			g.barriers[n.ID] = true
		}
		if n.TrafficLight {
			g.trafficSignals[n.ID] = true
		}
	}

	var lastSource NodeID
	for i, e := range edges {
		if i > 0 && e.Source < lastSource {
			return nil, ErrInputNotSorted
		}
		lastSource = e.Source

		if e.Source == e.Target {
			return nil, fmt.Errorf("%w: node %d", ErrSelfLoop, e.Source)
		}
		if !e.Forward && !e.Backward {
			return nil, fmt.Errorf("%w: %d->%d", ErrNoDirection, e.Source, e.Target)
		}
		if int(e.Source) >= nodeCount || int(e.Target) >= nodeCount {
			return nil, fmt.Errorf("%w: edge %d->%d, %d nodes", ErrNodeOutOfRange, e.Source, e.Target, nodeCount)
		}
	}

	// First pass: count out-degree per source.
	for _, e := range edges {
		g.nodes[e.Source].count++
	}

	// Prefix-sum to assign first-edge offsets.
	var offset EdgeID
	for i := range g.nodes {
		g.nodes[i].firstEdge = offset
		offset += EdgeID(g.nodes[i].count)
	}
	g.nodes[nodeCount].firstEdge = offset

	g.edges = make([]edgeSlot, offset)
	cursor := make([]EdgeID, nodeCount)
	for i := range cursor {
		cursor[i] = g.nodes[i].firstEdge
	}

	for _, e := range edges {
		pos := cursor[e.Source]
		cursor[e.Source]++
		g.edges[pos] = edgeSlot{data: EdgeAttributes{
			Target:           e.Target,
			Weight:           e.Weight,
			Distance:         e.Distance,
			Duration:         e.Duration,
			Forward:          e.Forward,
			Backward:         e.Backward,
			Roundabout:       e.Roundabout,
			AccessRestricted: e.Access,
			Startpoint:       e.Startpoint,
			Mode:             e.Mode,
			Barrier:          g.barriers[e.Target],
			TrafficSignal:    g.trafficSignals[e.Target],
		}}
	}

	return g, nil
}

// NumNodes returns the number of vertices in the graph (excluding the
// sentinel one-past-the-end CSR entry).
func (g *Graph) NumNodes() int { return len(g.nodes) - 1 }

// EdgeCapacity returns one past the highest edge id the edge array has ever
// held, including dummy slots left by InsertEdge/DeleteEdge. Callers that
// need to index auxiliary per-edge storage by EdgeID (the factory's node-based-edge
// to edge-based-node mapping) size their slice to this.
func (g *Graph) EdgeCapacity() int { return len(g.edges) }

// OutDegree returns the number of outgoing edges from n.
func (g *Graph) OutDegree(n NodeID) int { return int(g.nodes[n].count) }

// BeginEdges returns the first edge index of n's outgoing block.
func (g *Graph) BeginEdges(n NodeID) EdgeID { return g.nodes[n].firstEdge }

// EndEdges returns one past the last edge index of n's outgoing block.
func (g *Graph) EndEdges(n NodeID) EdgeID {
	return g.nodes[n].firstEdge + EdgeID(g.nodes[n].count)
}

// AdjacentEdges returns the edge-id range [BeginEdges(n), EndEdges(n))
// for iteration
func (g *Graph) AdjacentEdges(n NodeID) (begin, end EdgeID) {
	return g.BeginEdges(n), g.EndEdges(n)
}

// Target returns the destination node of edge e.
func (g *Graph) Target(e EdgeID) NodeID { return g.edges[e].data.Target }

// EdgeData returns a pointer to the mutable attributes of edge e, used by
// the compressor to update weight/duration/geometry.
func (g *Graph) EdgeData(e EdgeID) *EdgeAttributes { return &g.edges[e].data }

// FindEdge returns the edge id of the first outgoing edge from u whose
// target is v, or InvalidEdgeID if none exists. Lookup is linear in u's
// out-degree
func (g *Graph) FindEdge(u, v NodeID) EdgeID {
	begin, end := g.AdjacentEdges(u)
	for e := begin; e < end; e++ {
		if g.edges[e].isDummy() {
			continue
		}
		if g.edges[e].data.Target == v {
			return e
		}
	}

	return InvalidEdgeID
}

// IsBarrier reports whether n is a barrier node.
func (g *Graph) IsBarrier(n NodeID) bool { return g.barriers[n] }

// IsTrafficSignal reports whether n carries a traffic signal.
func (g *Graph) IsTrafficSignal(n NodeID) bool { return g.trafficSignals[n] }

// Geometry returns the graph's compressed-geometry store.
func (g *Graph) Geometry() *GeometryStore { return g.geometry }

// IsDummy reports whether edge e is a vacated slot left by InsertEdge's
// move-to-end policy or DeleteEdge's swap-with-last policy.
func (g *Graph) IsDummy(e EdgeID) bool { return g.edges[e].isDummy() }
