package mergeroad

import (
	"github.com/waygraph/waygraph/names"
	"github.com/waygraph/waygraph/nodegraph"
)

// Detector tolerances. Distances are meters, angles are degrees.
const (
	// MergableAngleDifference bounds how far apart two roads' perceived
	// bearings may be and still be considered for merging.
	MergableAngleDifference = 10.0

	// LaneWidthMeters approximates a single lane, used to build the
	// combined-lane-width tolerance the narrow-triangle/parallel-geometry
	// tests add their own slack to.
	LaneWidthMeters = 3.25

	NarrowTriangleSlack    = 10.0
	NarrowTriangleMaxStart = 80.0

	ParallelGeometrySlack  = 12.0
	ParallelGeometryMaxLen = 100.0
	ParallelGeometryMinLen = 40.0

	TrafficIslandSlackBoth   = 30.0
	TrafficIslandSlackSingle = 15.0

	StraightmostHopLimit = 5

	// OrthogonalAngle and OrthogonalTolerance define "near-orthogonal" for
	// the narrow-triangle test's left/right turn check.
	OrthogonalAngle     = 90.0
	OrthogonalTolerance = 15.0
)

// combinedLaneWidth is the base tolerance both the narrow-triangle and
// parallel-geometry tests add their own slack to.
func combinedLaneWidth() float64 { return 2 * LaneWidthMeters }

// RoadData carries the per-edge attributes CanMerge and its sub-tests need,
// beyond what ConnectedRoad already supplies: the road's name, reversed
// flag, roundabout flag, travel mode and classification rank.
type RoadData struct {
	Edge           nodegraph.EdgeID
	Target         nodegraph.NodeID
	Bearing        float64
	NameID         uint32
	Reversed       bool
	Roundabout     bool
	Mode           nodegraph.TravelMode
	Classification uint8
}

// Classifier resolves the RoadData the detector needs for an edge; callers
// typically source this from the node-based graph's EdgeAttributes plus an
// external road-classification table the extracted edge record does not
// carry.
type Classifier func(nodegraph.EdgeID) RoadData

// NameTable and Suffixes are reused from package names so CanMerge's
// "same name up to suffix-table equivalence" check shares logic with the
// guidance package's distinctness predicate.
type NameTable = names.Table
type Suffixes = names.SuffixTable
