package mergeroad

import (
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/names"
	"github.com/waygraph/waygraph/nodegraph"
)

// Detector answers CanMerge for a pair of outgoing roads at an
// intersection
type Detector struct {
	Graph     *nodegraph.Graph
	Generator *intersection.Generator
	Walker    *intersection.Walker
	RoadData  Classifier
	NameTable NameTable
	Suffixes  Suffixes
}

// NewDetector builds a Detector over a frozen, compressed graph.
func NewDetector(gen *intersection.Generator, roadData Classifier, nameTable NameTable, suffixes Suffixes) *Detector {
	return &Detector{
		Graph:     gen.Graph,
		Generator: gen,
		Walker:    intersection.NewWalker(gen),
		RoadData:  roadData,
		NameTable: nameTable,
		Suffixes:  suffixes,
	}
}

// CanMerge reports whether lhs and rhs, both outgoing edges at
// intersectionNode, should be treated as one logical road's gate
// conjunction OR'd with the narrow-triangle/parallel-geometry/
// traffic-island tests.
func (d *Detector) CanMerge(intersectionNode nodegraph.NodeID, lhs, rhs RoadData) bool {
	if geometry.AngularDeviation(lhs.Bearing, rhs.Bearing) > MergableAngleDifference {
		return false
	}

	if !d.edgeDataSupportsMerge(lhs, rhs) {
		return false
	}

	if lhs.Target == intersectionNode || rhs.Target == intersectionNode {
		return false
	}

	if d.isTrafficLoop(intersectionNode, lhs) || d.isTrafficLoop(intersectionNode, rhs) {
		return false
	}

	if d.trafficIsland(intersectionNode, lhs, rhs) {
		return true
	}

	if d.isLinkRoad(intersectionNode, lhs) || d.isLinkRoad(intersectionNode, rhs) {
		return false
	}

	if d.narrowTriangle(intersectionNode, lhs, rhs) {
		return true
	}

	return d.parallelGeometry(intersectionNode, lhs, rhs)
}

// edgeDataSupportsMerge checks pairwise compatibility: same classification, same
// mode, same name up to suffix equivalence, neither roundabout, and exactly
// one of the pair reversed (they face each other).
func (d *Detector) edgeDataSupportsMerge(lhs, rhs RoadData) bool {
	if lhs.Roundabout || rhs.Roundabout {
		return false
	}

	if lhs.Reversed == rhs.Reversed {
		return false
	}

	if lhs.Mode != rhs.Mode {
		return false
	}

	if lhs.Classification != rhs.Classification {
		return false
	}

	return names.IdenticalNames(lhs.NameID, rhs.NameID, d.NameTable, d.Suffixes)
}

// isTrafficLoop reports whether road, followed straightmost through
// degree-two intersections, loops back to intersectionNode.
func (d *Detector) isTrafficLoop(intersectionNode nodegraph.NodeID, road RoadData) bool {
	end, _, _ := d.skipDegreeTwo(intersectionNode, road.Edge)

	return end == intersectionNode
}

// skipDegreeTwo walks from (atNode, edge) through artificial degree-two
// intersections, returning the node reached, the coordinates sampled along
// the way, and the deviation from straight of every non-u-turn road at each
// intersection the walk reaches, degree-two hops included.
func (d *Detector) skipDegreeTwo(atNode nodegraph.NodeID, edge nodegraph.EdgeID) (nodegraph.NodeID, []geometry.Coordinate, []float64) {
	var points []geometry.Coordinate
	var deviations []float64

	end := d.Graph.Target(edge)

	d.Walker.Walk(atNode, edge, intersection.SkipTrafficSignals, func(step intersection.Step) bool {
		end = step.To
		points = append(points, d.Generator.Coords.NodeCoordinate(step.To))

		roads := d.Generator.Generate(step.From, step.Via)
		for _, r := range roads {
			if r.Angle != intersection.UTurnAngle {
				deviations = append(deviations, geometry.AngularDeviation(r.Angle, intersection.StraightAngle))
			}
		}

		return false
	})

	return end, points, deviations
}

// isLinkRoad reports whether road is a connector/ramp rather than a
// mainline split: its skip-degree-two destination continues nearly
// straight under the same name, while the opposite-bearing neighbor there
// is a distinct edge.
func (d *Detector) isLinkRoad(intersectionNode nodegraph.NodeID, road RoadData) bool {
	end, _, _ := d.skipDegreeTwo(intersectionNode, road.Edge)
	if end == intersectionNode {
		return false
	}

	roads := d.Generator.Generate(intersectionNode, road.Edge)

	straightmost, found := intersection.FindClosestTurn(roads, intersection.StraightAngle, func(r intersection.ConnectedRoad) bool {
		return names.IdenticalNames(d.RoadData(r.Edge).NameID, road.NameID, d.NameTable, d.Suffixes)
	})

	if !found {
		return false
	}

	opposite, found := intersection.FindClosestTurn(roads, 0, func(r intersection.ConnectedRoad) bool {
		return r.Edge != straightmost.Edge && r.Edge != road.Edge
	})

	return found && opposite.Edge != straightmost.Edge
}

// narrowTriangle is the first merge witness: lhs's target must lie within
// NarrowTriangleMaxStart of the intersection, both roads are followed
// through degree-two nodes only (skipDegreeTwo) and must end at the same
// node, and each walk must pass a road deviating near-orthogonally from
// straight. It does not walk straightmost through real intersections,
// does not apply StraightmostHopLimit, and does not check on which side
// the orthogonal road lies; because both walks end at the same node, the
// apex distance it compares is always zero.
func (d *Detector) narrowTriangle(intersectionNode nodegraph.NodeID, lhs, rhs RoadData) bool {
	startDist := geometry.Distance(d.Generator.Coords.NodeCoordinate(intersectionNode), d.Generator.Coords.NodeCoordinate(lhs.Target))
	if startDist > NarrowTriangleMaxStart {
		return false
	}

	leftEnd, leftPoints, leftDevs := d.skipDegreeTwo(intersectionNode, lhs.Edge)
	rightEnd, rightPoints, rightDevs := d.skipDegreeTwo(intersectionNode, rhs.Edge)

	if leftEnd != rightEnd {
		return false
	}

	if !hasNearOrthogonalTurn(leftDevs) || !hasNearOrthogonalTurn(rightDevs) {
		return false
	}

	if len(leftPoints) == 0 || len(rightPoints) == 0 {
		return false
	}

	apexDistance := geometry.Distance(leftPoints[len(leftPoints)-1], rightPoints[len(rightPoints)-1])

	return apexDistance <= combinedLaneWidth()+NarrowTriangleSlack
}

func hasNearOrthogonalTurn(deviations []float64) bool {
	for _, dev := range deviations {
		if dev >= OrthogonalAngle-OrthogonalTolerance && dev <= OrthogonalAngle+OrthogonalTolerance {
			return true
		}
	}

	return false
}

// parallelGeometry is the second merge witness: the sampled coordinates of each road,
// trimmed to ≤100m, must fit parallel lines (via least-squares slope
// comparison after trimming the first third), with one road's midpoint
// within tolerance of the other, rejecting roads shorter than 40m and
// rejecting shapes that rejoin into a near-circular ring.
func (d *Detector) parallelGeometry(intersectionNode nodegraph.NodeID, lhs, rhs RoadData) bool {
	leftPoints := d.sampledPath(intersectionNode, lhs.Edge, ParallelGeometryMaxLen)
	rightPoints := d.sampledPath(intersectionNode, rhs.Edge, ParallelGeometryMaxLen)

	if geometry.PathLength(leftPoints) < ParallelGeometryMinLen || geometry.PathLength(rightPoints) < ParallelGeometryMinLen {
		return false
	}

	leftEnd, _, _ := d.skipDegreeTwo(intersectionNode, lhs.Edge)
	rightEnd, _, _ := d.skipDegreeTwo(intersectionNode, rhs.Edge)

	if leftEnd == rightEnd {
		ring := append(append([]geometry.Coordinate{}, leftPoints...), reversed(rightPoints)...)
		if geometry.PolygonAreaPerimeterRatio(ring) >= geometry.CircularShapeThreshold {
			return false
		}
	}

	leftTrimmed := trimFirstThird(leftPoints)
	rightTrimmed := trimFirstThird(rightPoints)

	leftSlope, leftOK := geometry.LeastSquaresSlope(leftTrimmed)
	rightSlope, rightOK := geometry.LeastSquaresSlope(rightTrimmed)

	if !leftOK || !rightOK {
		return false
	}

	const slopeTolerance = 0.35
	if abs(leftSlope-rightSlope) > slopeTolerance {
		return false
	}

	mid := geometry.Midpoint(leftPoints[0], leftPoints[len(leftPoints)-1])
	nearest := nearestPointOnPath(mid, rightPoints)

	return geometry.Distance(mid, nearest) <= combinedLaneWidth()+ParallelGeometrySlack
}

// trafficIsland is the third merge witness: both roads' skip-degree-two
// destinations converge on the same vertex other than the start, and at
// least one end of the island — the far vertex or the intersection itself —
// has exactly three incident edges sharing a name. The allowed carriageway
// separation widens when both ends qualify, since a split that both forks
// and rejoins on the same named road is unambiguously one island.
func (d *Detector) trafficIsland(intersectionNode nodegraph.NodeID, lhs, rhs RoadData) bool {
	leftEnd, _, _ := d.skipDegreeTwo(intersectionNode, lhs.Edge)
	rightEnd, _, _ := d.skipDegreeTwo(intersectionNode, rhs.Edge)

	if leftEnd != rightEnd || leftEnd == intersectionNode {
		return false
	}

	connectOut := d.threeIncidentSameName(leftEnd)
	connectIn := d.threeIncidentSameName(intersectionNode)

	if !connectOut && !connectIn {
		return false
	}

	allowed := TrafficIslandSlackSingle
	if connectOut && connectIn {
		allowed = TrafficIslandSlackBoth
	}

	lhsTargetCoord := d.Generator.Coords.NodeCoordinate(lhs.Target)
	rhsTargetCoord := d.Generator.Coords.NodeCoordinate(rhs.Target)

	return geometry.Distance(lhsTargetCoord, rhsTargetCoord) <= allowed
}

func (d *Detector) threeIncidentSameName(n nodegraph.NodeID) bool {
	begin, end := d.Graph.AdjacentEdges(n)

	var nameID uint32
	count := 0
	sameName := true

	for e := begin; e < end; e++ {
		if d.Graph.IsDummy(e) {
			continue
		}

		rd := d.RoadData(e)
		if count == 0 {
			nameID = rd.NameID
		} else if !names.IdenticalNames(rd.NameID, nameID, d.NameTable, d.Suffixes) {
			sameName = false
		}

		count++
	}

	return count == 3 && sameName
}

func (d *Detector) sampledPath(atNode nodegraph.NodeID, edge nodegraph.EdgeID, maxMeters float64) []geometry.Coordinate {
	collector := intersection.NewLengthLimitedCollector(d.Generator.Coords, atNode, maxMeters)
	d.Walker.Walk(atNode, edge, intersection.SkipTrafficSignals, collector.Accumulate)

	return collector.Points()
}

func trimFirstThird(points []geometry.Coordinate) []geometry.Coordinate {
	if len(points) < 3 {
		return points
	}

	skip := len(points) / 3

	return points[skip:]
}

func nearestPointOnPath(target geometry.Coordinate, path []geometry.Coordinate) geometry.Coordinate {
	best := path[0]
	bestDist := geometry.Distance(target, best)

	for _, p := range path[1:] {
		dist := geometry.Distance(target, p)
		if dist < bestDist {
			bestDist = dist
			best = p
		}
	}

	return best
}

func reversed(points []geometry.Coordinate) []geometry.Coordinate {
	out := make([]geometry.Coordinate, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}

	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}

	return f
}
