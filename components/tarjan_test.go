package components_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/components"
	"github.com/waygraph/waygraph/nodegraph"
)

func graphFrom(t *testing.T, nodeCount int, pairs [][2]nodegraph.NodeID) *nodegraph.Graph {
	t.Helper()

	var edges []nodegraph.InputEdge
	for _, p := range pairs {
		edges = append(edges, nodegraph.InputEdge{Source: p[0], Target: p[1], Weight: 1, Forward: true})
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Source < edges[j].Source })

	g, err := nodegraph.NewGraph(nodeCount, edges, nil)
	require.NoError(t, err)

	return g
}

func TestFindSingleCycle(t *testing.T) {
	g := graphFrom(t, 3, [][2]nodegraph.NodeID{{0, 1}, {1, 2}, {2, 0}})

	a := components.Find(g)
	require.Equal(t, 1, a.Count())
	assert.Equal(t, uint32(3), a.Size(0))
	assert.Equal(t, a.ComponentOf(0), a.ComponentOf(2))
}

func TestFindOnewaySplitsComponents(t *testing.T) {
	// Two cycles joined by a single oneway: nodes 0-1-2 cycle, 3-4-5
	// cycle, bridge 2->3. Strong connectivity cannot cross the bridge
	// backwards, so there are two components.
	g := graphFrom(t, 6, [][2]nodegraph.NodeID{
		{0, 1}, {1, 2}, {2, 0},
		{2, 3},
		{3, 4}, {4, 5}, {5, 3},
	})

	a := components.Find(g)
	require.Equal(t, 2, a.Count())
	assert.Equal(t, a.ComponentOf(0), a.ComponentOf(1))
	assert.Equal(t, a.ComponentOf(3), a.ComponentOf(5))
	assert.NotEqual(t, a.ComponentOf(0), a.ComponentOf(3))
}

func TestFindIsolatedNodes(t *testing.T) {
	g := graphFrom(t, 4, [][2]nodegraph.NodeID{{0, 1}, {1, 0}})

	a := components.Find(g)
	assert.Equal(t, 3, a.Count())
	assert.Equal(t, 2, a.SizeOneCount())

	for c := uint32(0); c < uint32(a.Count()); c++ {
		assert.True(t, a.IsSmall(c))
	}
}

func TestFindEmptyGraph(t *testing.T) {
	g, err := nodegraph.NewGraph(0, nil, nil)
	require.NoError(t, err)

	a := components.Find(g)
	assert.Equal(t, 0, a.Count())
}
