package ebgraph

import (
	"math"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
)

// NodeID identifies a vertex of the edge-based graph: a directed
// node-based edge, or — for the duplicated shadows the way-restriction map
// allocates — a directed node-based edge plus a specific arrival history.
type NodeID uint32

// InvalidNodeID marks "no edge-based node" — a node-based edge pass 1
// never assigned because it was a dummy slot or travel-mode-inaccessible.
const InvalidNodeID NodeID = math.MaxUint32

// TurnID identifies one admissible turn; dense and unique across a
// completed build.
type TurnID uint32

// EBNode is one edge-based node record, a packed 32 bytes on disk: the
// node-based edge's two endpoint coordinates, its name, its base weight,
// whether the spatial grid should ignore it, its travel mode, and the
// disconnected-component id a later pass assigns (left zero here; the
// components CLI computes it downstream).
type EBNode struct {
	ID           NodeID
	From         geometry.Coordinate
	To           geometry.Coordinate
	NameID       uint32
	Weight       int32
	IgnoreInGrid bool
	Mode         nodegraph.TravelMode
	ComponentID  uint32
}

// EdgeData is the per-turn payload carried by an EBEdge: turn id, weight,
// duration, distance, and the two direction flags.
type EdgeData struct {
	TurnID   TurnID
	Weight   int32
	Duration int32
	Distance int32
	Forward  bool
	Backward bool
}

// EBEdge is one edge-based edge record: a directed arc between two
// edge-based nodes representing one admissible turn.
type EBEdge struct {
	Source NodeID
	Target NodeID
	Data   EdgeData
}

// bidirectional reports whether e carries traffic in both directions,
// used to break ties in the output ordering.
func (e EBEdge) bidirectional() bool { return e.Data.Forward && e.Data.Backward }

// Less implements the artifact output ordering: sorted by (source, target,
// weight), bidirectional edges before unidirectional ones at an otherwise
// equal key.
func (e EBEdge) Less(o EBEdge) bool {
	if e.Source != o.Source {
		return e.Source < o.Source
	}
	if e.Target != o.Target {
		return e.Target < o.Target
	}
	if e.Data.Weight != o.Data.Weight {
		return e.Data.Weight < o.Data.Weight
	}

	return e.bidirectional() && !o.bidirectional()
}

// equalKey reports whether e and o are equal under the Less ordering's key
// (source, target, weight, bidirectionality). The end-of-pass duplicate
// removal applies to nodes only and compares whole EBNode values; edges are
// not deduplicated, since distinct turn-ids must all survive.
func (e EBEdge) equalKey(o EBEdge) bool {
	return e.Source == o.Source && e.Target == o.Target && e.Data.Weight == o.Data.Weight && e.bidirectional() == o.bidirectional()
}

// Stats summarizes one factory run for the top-level report.
type Stats struct {
	NodesEmitted          int
	DuplicatedNodesEmitted int
	EdgesEmitted          int
	TurnsSkipped          int64
}
