package intersection

import (
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
)

// MaxWalkSteps caps a single walk, guarding against pathological loops in
// malformed input graphs.
const MaxWalkSteps = 1000

// Step describes one hop the walker took, handed to the accumulator.
type Step struct {
	From nodegraph.NodeID
	Via  nodegraph.EdgeID
	To   nodegraph.NodeID
}

// Selector picks the next outgoing road to follow from the connected-road
// list at the intersection the walker just arrived at, or returns found
// false when there is no acceptable continuation.
type Selector func(roads []ConnectedRoad) (choice ConnectedRoad, found bool)

// Accumulator observes each step and reports whether the walk should stop.
type Accumulator func(step Step) (stop bool)

// Walker walks the node-based graph from a starting edge under a
// caller-supplied selector and accumulator.
type Walker struct {
	Graph     *nodegraph.Graph
	Generator *Generator
}

// NewWalker builds a Walker over gen's graph.
func NewWalker(gen *Generator) *Walker {
	return &Walker{Graph: gen.Graph, Generator: gen}
}

// Walk follows the graph from (startNode, startEdge), calling selector at
// each intersection and accumulate for every step taken. The walk stops
// when accumulate signals stop, when selector finds nothing, when the
// current intersection offers no onward choice, when the walk loops back to
// startNode, or after MaxWalkSteps hops.
func (w *Walker) Walk(startNode nodegraph.NodeID, startEdge nodegraph.EdgeID, selector Selector, accumulate Accumulator) {
	from := startNode
	edge := startEdge

	for i := 0; i < MaxWalkSteps; i++ {
		to := w.Graph.Target(edge)

		stop := accumulate(Step{From: from, Via: edge, To: to})
		if stop {
			return
		}

		if to == startNode {
			return
		}

		roads := w.Generator.Generate(from, edge)
		if len(roads) == 0 {
			return
		}

		choice, found := selector(roads)
		if !found {
			return
		}

		from = to
		edge = choice.Edge
	}
}

// StraightmostAlongName selects the outgoing edge whose angle is closest to
// straight ahead, subject to matching nameID and, when requireEntry is
// true, EntryAllowed — the canonical "straightmost on same name"
// selector.
func StraightmostAlongName(nameID func(nodegraph.EdgeID) uint32, wantName uint32, requireEntry bool) Selector {
	return func(roads []ConnectedRoad) (ConnectedRoad, bool) {
		return FindClosestTurn(roads, StraightAngle, func(r ConnectedRoad) bool {
			if requireEntry && !r.EntryAllowed {
				return false
			}

			return nameID(r.Edge) == wantName
		})
	}
}

// SkipTrafficSignals picks the single onward edge at an artificial
// degree-2 intersection (one real entry besides the u-turn slot), the
// canonical selector used to walk through barrier/traffic-signal nodes
// without treating them as real intersections).
func SkipTrafficSignals(roads []ConnectedRoad) (ConnectedRoad, bool) {
	var onward ConnectedRoad

	count := 0

	for _, r := range roads {
		if r.Angle == UTurnAngle {
			continue
		}

		onward = r
		count++
	}

	if count != 1 {
		return ConnectedRoad{}, false
	}

	return onward, true
}

// LengthLimitedCollector accumulates node coordinates along the walk and
// reports stop once the accumulated great-circle distance reaches
// maxMeters, trimming the final segment to land on exactly that length.
type LengthLimitedCollector struct {
	Coords      CoordinateSource
	MaxMeters   float64
	accumulated float64
	points      []geometry.Coordinate
}

// NewLengthLimitedCollector builds a collector seeded with the walk's
// starting coordinate.
func NewLengthLimitedCollector(coords CoordinateSource, start nodegraph.NodeID, maxMeters float64) *LengthLimitedCollector {
	return &LengthLimitedCollector{
		Coords:    coords,
		MaxMeters: maxMeters,
		points:    []geometry.Coordinate{coords.NodeCoordinate(start)},
	}
}

// Accumulate is the Accumulator function to pass to Walker.Walk.
func (c *LengthLimitedCollector) Accumulate(step Step) bool {
	next := c.Coords.NodeCoordinate(step.To)
	segment := geometry.Distance(c.points[len(c.points)-1], next)

	if c.accumulated+segment >= c.MaxMeters {
		c.points = geometry.TrimToLength(append(c.points, next), c.MaxMeters)

		return true
	}

	c.accumulated += segment
	c.points = append(c.points, next)

	return false
}

// Points returns the collected coordinates once the walk has finished.
func (c *LengthLimitedCollector) Points() []geometry.Coordinate { return c.points }

// NextRealIntersectionFinder terminates a walk when it reaches an
// intersection of degree greater than 2 (ignoring the u-turn slot),
// subject to a hop limit.
type NextRealIntersectionFinder struct {
	Generator *Generator
	HopLimit  int

	hops  int
	Found nodegraph.NodeID
	Hit   bool
}

// NewNextRealIntersectionFinder builds a finder bounded by hopLimit hops.
func NewNextRealIntersectionFinder(gen *Generator, hopLimit int) *NextRealIntersectionFinder {
	return &NextRealIntersectionFinder{Generator: gen, HopLimit: hopLimit}
}

// Accumulate is the Accumulator function to pass to Walker.Walk.
func (f *NextRealIntersectionFinder) Accumulate(step Step) bool {
	f.hops++

	roads := f.Generator.Generate(step.From, step.Via)

	realDegree := 0
	for _, r := range roads {
		if r.Angle != UTurnAngle {
			realDegree++
		}
	}

	if realDegree > 1 {
		f.Found = step.To
		f.Hit = true

		return true
	}

	return f.hops >= f.HopLimit
}
