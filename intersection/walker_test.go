package intersection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/nodegraph"
)

// straightLine builds a chain 0-1-2-3-4, each hop ~1km apart, to exercise
// the length-limited collector and the next-real-intersection finder.
func straightLine(t *testing.T) (*nodegraph.Graph, coordMap) {
	t.Helper()

	coords := coordMap{}
	var edges []nodegraph.InputEdge
	for i := 0; i < 5; i++ {
		coords[nodegraph.NodeID(i)] = geometry.Coordinate{Lon: int32(i * 10000), Lat: 0}
	}

	for i := 0; i < 4; i++ {
		edges = append(edges,
			nodegraph.InputEdge{Source: nodegraph.NodeID(i), Target: nodegraph.NodeID(i + 1), Weight: 1, Distance: 1, Forward: true, Backward: true},
			nodegraph.InputEdge{Source: nodegraph.NodeID(i + 1), Target: nodegraph.NodeID(i), Weight: 1, Distance: 1, Forward: true, Backward: true},
		)
	}

	sorted := make([]nodegraph.InputEdge, 0, len(edges))
	for src := 0; src < 5; src++ {
		for _, e := range edges {
			if int(e.Source) == src {
				sorted = append(sorted, e)
			}
		}
	}

	g, err := nodegraph.NewGraph(5, sorted, nil)
	require.NoError(t, err)

	return g, coords
}

func TestWalkStopsAtLoopBackToStart(t *testing.T) {
	g, coords := straightLine(t)
	gen := intersection.NewGenerator(g, coords)
	w := intersection.NewWalker(gen)

	steps := 0
	w.Walk(0, g.FindEdge(0, 1), func(roads []intersection.ConnectedRoad) (intersection.ConnectedRoad, bool) {
		choice, found := intersection.FindClosestTurn(roads, intersection.StraightAngle, nil)

		return choice, found
	}, func(step intersection.Step) bool {
		steps++

		return steps > 10 // generous safety bound; the real stop is loop-back to node 0
	})

	assert.LessOrEqual(t, steps, 10)
}

func TestNextRealIntersectionFinderRespectsHopLimit(t *testing.T) {
	g, coords := straightLine(t)
	gen := intersection.NewGenerator(g, coords)
	w := intersection.NewWalker(gen)

	finder := intersection.NewNextRealIntersectionFinder(gen, 2)
	steps := 0
	w.Walk(0, g.FindEdge(0, 1), func(roads []intersection.ConnectedRoad) (intersection.ConnectedRoad, bool) {
		return intersection.FindClosestTurn(roads, intersection.StraightAngle, nil)
	}, func(step intersection.Step) bool {
		steps++

		return finder.Accumulate(step)
	})

	assert.False(t, finder.Hit) // a straight chain never has degree > 2
	assert.Equal(t, 2, steps)   // the walk stops at the hop limit, not the chain's end
}
