package nodegraph

import (
	"math"

	"github.com/waygraph/waygraph/geometry"
)

// NodeID identifies a vertex in the node-based graph.
type NodeID uint32

// EdgeID identifies a directed edge's slot in the shared edge array.
type EdgeID uint32

// InvalidNodeID is the dummy sentinel used both for "no such node" and to
// mark vacated edge-array slots (target == InvalidNodeID).
const InvalidNodeID NodeID = math.MaxUint32

// InvalidEdgeID is returned by FindEdge when no matching edge exists.
const InvalidEdgeID EdgeID = math.MaxUint32

// TravelMode is a small closed set of transportation modes, matching the
// 4-bit travel-mode tag in the Input graph format.
type TravelMode uint8

// Travel modes. Inaccessible is the fallback used when an unrecognized
// travel-mode tag is encountered.
const (
	ModeInaccessible TravelMode = iota
	ModeDriving
	ModeCycling
	ModeWalking
	ModeFerry
	ModeTrain
)

// EdgeAttributes holds everything the node-based graph invariants
// require per directed edge.
type EdgeAttributes struct {
	Target NodeID

	Weight   int32 // positive integer cost
	Distance int32 // length
	Duration int32

	Forward  bool
	Backward bool
	Reversed bool // set after splitting an undirected OSM way into two directed edges

	Roundabout       bool
	AccessRestricted bool
	Startpoint       bool

	Mode TravelMode

	NameID           uint32
	AnnotationIndex  uint32
	GeometryID       GeometryID

	// Barrier/TrafficSignal are carried on the edge once the node they
	// refer to has been compressed away, so barrier and signal state
	// survive compression as attributes of the incident edges.
	Barrier       bool
	TrafficSignal bool
}

// InputEdge is a single record of the extracted network's edge stream,
// sorted by Source before being handed to NewGraph.
type InputEdge struct {
	Source NodeID
	Target NodeID

	NameID     uint32
	Weight     int32
	Duration   int32
	Distance   int32
	Forward    bool
	Backward   bool
	Roundabout bool
	Access     bool // true == access-restricted
	Startpoint bool
	Mode       TravelMode
	IsSplit    bool
}

// InputNode is a single record of the Input graph format's Nodes stream.
type InputNode struct {
	ID           NodeID
	Coordinate   geometry.Coordinate
	Barrier      bool
	TrafficLight bool
	OSMID        int64
}

// node is the (first-edge, count) CSR record for a single vertex.
type node struct {
	firstEdge EdgeID
	count     uint32
}

// edgeSlot is a single entry in the shared, arena-style edge array.
type edgeSlot struct {
	data EdgeAttributes
}

func (s edgeSlot) isDummy() bool { return s.data.Target == InvalidNodeID }
