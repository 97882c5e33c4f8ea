package intersection

import (
	"sort"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
)

// Generator produces the connected-road view of an intersection. It
// reads only nodegraph.Graph's query methods plus the node coordinates the
// loader keeps alongside it, so many Generators can run concurrently once
// the graph is frozen.
type Generator struct {
	Graph  *nodegraph.Graph
	Coords CoordinateSource
}

// NewGenerator constructs a Generator over a frozen, compressed graph.
func NewGenerator(g *nodegraph.Graph, coords CoordinateSource) *Generator {
	return &Generator{Graph: g, Coords: coords}
}

// Generate enumerates the connected roads at the intersection reached by
// following viaEdge from atNode The result is sorted by angle,
// and index 0 is the u-turn slot whenever the reverse edge back to atNode
// exists.
func (gen *Generator) Generate(atNode nodegraph.NodeID, viaEdge nodegraph.EdgeID) []ConnectedRoad {
	v := gen.Graph.Target(viaEdge)
	approachBearing := gen.perceivedBearingApproaching(atNode, viaEdge, v)
	uturnEdge := gen.Graph.FindEdge(v, atNode)

	begin, end := gen.Graph.AdjacentEdges(v)

	roads := make([]ConnectedRoad, 0, int(end-begin))

	for e := begin; e < end; e++ {
		if gen.Graph.IsDummy(e) {
			continue
		}

		t := gen.Graph.Target(e)
		data := gen.Graph.EdgeData(e)
		roadBearing := gen.perceivedBearingLeaving(v, e, t)
		angle := geometry.NormalizeAngle(approachBearing, roadBearing)
		entryAllowed := !data.AccessRestricted

		isUTurn := uturnEdge != nodegraph.InvalidEdgeID && e == uturnEdge
		if isUTurn {
			angle = UTurnAngle
			deadEnd := gen.Graph.OutDegree(v) == 1
			entryAllowed = deadEnd || gen.Graph.IsBarrier(v)
		}

		roads = append(roads, ConnectedRoad{
			Edge:         e,
			Target:       t,
			Bearing:      roadBearing,
			Angle:        angle,
			EntryAllowed: entryAllowed,
		})
	}

	sort.Slice(roads, func(i, j int) bool { return roads[i].Angle < roads[j].Angle })

	return roads
}

// FindClosestTurn returns the entry whose angle is nearest targetAngle and
// that satisfies predicate's find_closest_turn helper. predicate
// may be nil to accept every entry.
func FindClosestTurn(roads []ConnectedRoad, targetAngle float64, predicate func(ConnectedRoad) bool) (ConnectedRoad, bool) {
	best := ConnectedRoad{}
	found := false
	bestDelta := 361.0

	for _, r := range roads {
		if predicate != nil && !predicate(r) {
			continue
		}

		delta := geometry.AngularDeviation(r.Angle, targetAngle)
		if delta < bestDelta {
			bestDelta = delta
			best = r
			found = true
		}
	}

	return best, found
}

func (gen *Generator) perceivedBearingApproaching(atNode nodegraph.NodeID, viaEdge nodegraph.EdgeID, v nodegraph.NodeID) float64 {
	sample := gen.Coords.NodeCoordinate(atNode)
	if back := gen.Graph.FindEdge(v, atNode); back != nodegraph.InvalidEdgeID {
		sample = gen.sampleAlong(v, back, atNode)
	}

	return geometry.Bearing(sample, gen.Coords.NodeCoordinate(v))
}

func (gen *Generator) perceivedBearingLeaving(v nodegraph.NodeID, e nodegraph.EdgeID, t nodegraph.NodeID) float64 {
	sample := gen.sampleAlong(v, e, t)

	return geometry.Bearing(gen.Coords.NodeCoordinate(v), sample)
}

// sampleAlong returns the first vertex of edge e's stored geometry that lies
// at least PerceivedBearingSampleDistance meters along it, measured from the
// first stored vertex, or the last vertex when the geometry is shorter. It
// returns the coordinate of "to" when the edge stores fewer than two
// coordinates (or the lookup fails); "from" is not consulted.
func (gen *Generator) sampleAlong(from nodegraph.NodeID, e nodegraph.EdgeID, to nodegraph.NodeID) geometry.Coordinate {
	data := gen.Graph.EdgeData(e)

	coords, err := gen.Graph.Geometry().Get(data.GeometryID)
	if err != nil || len(coords) < 2 {
		return gen.Coords.NodeCoordinate(to)
	}

	accumulated := 0.0
	for i := 1; i < len(coords); i++ {
		segment := geometry.Distance(coords[i-1], coords[i])
		if accumulated+segment >= PerceivedBearingSampleDistance {
			return coords[i]
		}

		accumulated += segment
	}

	return coords[len(coords)-1]
}
