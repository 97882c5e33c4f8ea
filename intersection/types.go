package intersection

import (
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
)

// ConnectedRoad is one outgoing road at an intersection: the
// outgoing edge, its perceived bearing, its normalized angle relative to the
// arriving via-edge's outgoing bearing, and whether entering it is allowed.
type ConnectedRoad struct {
	Edge    nodegraph.EdgeID
	Target  nodegraph.NodeID
	Bearing float64
	Angle   float64

	EntryAllowed bool
}

// UTurnAngle is the angle value assigned to the synthetic u-turn entry
// always occupying index 0 of a generated intersection view.
const UTurnAngle = 0.0

// StraightAngle is the angle value representing continuing straight
// ahead; angles are normalized so straight-ahead is 180°.
const StraightAngle = 180.0

// PerceivedBearingSampleDistance is how far down a road (in meters) the
// generator samples a coordinate to compute the perceived bearing, smoothing over
// immediate geometric noise right at the intersection.
const PerceivedBearingSampleDistance = 20.0

// CoordinateSource supplies the node coordinates the generator needs (edge
// geometry comes from the graph's GeometryStore); nodegraph.Graph alone does not retain per-node
// coordinates once loaded; the loader is expected to keep and pass this
// alongside the Graph.
type CoordinateSource interface {
	NodeCoordinate(n nodegraph.NodeID) geometry.Coordinate
}
