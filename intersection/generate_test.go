package intersection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/nodegraph"
)

// coordMap is a trivial CoordinateSource backed by a map, for tests.
type coordMap map[nodegraph.NodeID]geometry.Coordinate

func (m coordMap) NodeCoordinate(n nodegraph.NodeID) geometry.Coordinate { return m[n] }

// crossIntersection builds a 4-way cross: node 0 is the center, nodes 1-4
// are arranged north/east/south/west, each connected bidirectionally.
func crossIntersection(t *testing.T) (*nodegraph.Graph, coordMap) {
	t.Helper()

	coords := coordMap{
		0: {Lon: 0, Lat: 0},
		1: {Lon: 0, Lat: 1000000},  // north
		2: {Lon: 1000000, Lat: 0},  // east
		3: {Lon: 0, Lat: -1000000}, // south
		4: {Lon: -1000000, Lat: 0}, // west
	}

	var edges []nodegraph.InputEdge
	for _, n := range []nodegraph.NodeID{1, 2, 3, 4} {
		edges = append(edges,
			nodegraph.InputEdge{Source: 0, Target: n, Weight: 1, Distance: 1, Forward: true, Backward: true},
			nodegraph.InputEdge{Source: n, Target: 0, Weight: 1, Distance: 1, Forward: true, Backward: true},
		)
	}

	// Graph requires edges sorted by source.
	sorted := make([]nodegraph.InputEdge, 0, len(edges))
	for _, src := range []nodegraph.NodeID{0, 1, 2, 3, 4} {
		for _, e := range edges {
			if e.Source == src {
				sorted = append(sorted, e)
			}
		}
	}

	g, err := nodegraph.NewGraph(5, sorted, nil)
	require.NoError(t, err)

	return g, coords
}

func TestGenerateSortsByAngleAndMarksUTurn(t *testing.T) {
	g, coords := crossIntersection(t)
	gen := intersection.NewGenerator(g, coords)

	viaEdge := g.FindEdge(1, 0) // arriving from the north, heading south into the center
	require.NotEqual(t, nodegraph.InvalidEdgeID, viaEdge)

	roads := gen.Generate(1, viaEdge)
	require.Len(t, roads, 4)

	assert.InDelta(t, intersection.UTurnAngle, roads[0].Angle, 1e-6)
	assert.Equal(t, nodegraph.NodeID(1), roads[0].Target)
	assert.False(t, roads[0].EntryAllowed) // not a dead end, not a barrier

	straight, found := intersection.FindClosestTurn(roads, intersection.StraightAngle, nil)
	require.True(t, found)
	assert.Equal(t, nodegraph.NodeID(3), straight.Target) // continuing south
}

func TestGenerateDeadEndAllowsUTurn(t *testing.T) {
	coords := coordMap{
		0: {Lon: 0, Lat: 0},
		1: {Lon: 0, Lat: 1000000},
	}
	edges := []nodegraph.InputEdge{
		{Source: 0, Target: 1, Weight: 1, Distance: 1, Forward: true, Backward: true},
		{Source: 1, Target: 0, Weight: 1, Distance: 1, Forward: true, Backward: true},
	}
	g, err := nodegraph.NewGraph(2, edges, nil)
	require.NoError(t, err)

	gen := intersection.NewGenerator(g, coords)
	viaEdge := g.FindEdge(0, 1)
	roads := gen.Generate(0, viaEdge)

	require.Len(t, roads, 1)
	assert.True(t, roads[0].EntryAllowed)
}
