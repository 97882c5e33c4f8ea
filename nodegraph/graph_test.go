package nodegraph_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/nodegraph"
)

func TestNewGraphEmpty(t *testing.T) {
	g, err := nodegraph.NewGraph(0, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, g.NumNodes())
}

func TestNewGraphRejectsSelfLoop(t *testing.T) {
	edges := []nodegraph.InputEdge{{Source: 0, Target: 0, Forward: true}}
	_, err := nodegraph.NewGraph(1, edges, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nodegraph.ErrSelfLoop))
}

func TestNewGraphRejectsNoDirection(t *testing.T) {
	edges := []nodegraph.InputEdge{{Source: 0, Target: 1}}
	_, err := nodegraph.NewGraph(2, edges, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nodegraph.ErrNoDirection))
}

func TestNewGraphRetainsBothDirections(t *testing.T) {
	edges := []nodegraph.InputEdge{
		{Source: 0, Target: 1, Forward: true, Weight: 10},
		{Source: 1, Target: 0, Forward: true, Weight: 10},
	}
	g, err := nodegraph.NewGraph(2, edges, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, g.OutDegree(0))
	assert.Equal(t, 1, g.OutDegree(1))
	assert.NotEqual(t, nodegraph.InvalidEdgeID, g.FindEdge(0, 1))
	assert.NotEqual(t, nodegraph.InvalidEdgeID, g.FindEdge(1, 0))
}

func TestFindEdgeMissReturnsSentinel(t *testing.T) {
	g, err := nodegraph.NewGraph(3, []nodegraph.InputEdge{{Source: 0, Target: 1, Forward: true}}, nil)
	require.NoError(t, err)
	assert.Equal(t, nodegraph.InvalidEdgeID, g.FindEdge(0, 2))
}
