package restriction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/restriction"
)

func TestWayMapGroupsByTriplet(t *testing.T) {
	wm := restriction.NewWayMap([]restriction.WayRecord{
		{InFrom: 1, InVia: 2, OutVia: 3, OutTo: 4, IsOnly: false},
		{InFrom: 1, InVia: 2, OutVia: 3, OutTo: 5, IsOnly: false},
		{InFrom: 9, InVia: 2, OutVia: 3, OutTo: 4, IsOnly: false},
	})

	assert.True(t, wm.IsViaWay(2, 3))
	assert.False(t, wm.IsViaWay(2, 9))

	dupA, ok := wm.AsDuplicatedNodeID(1, 2, 3)
	require.True(t, ok)

	dupB, ok := wm.AsDuplicatedNodeID(9, 2, 3)
	require.True(t, ok)
	assert.NotEqual(t, dupA, dupB)

	assert.True(t, wm.IsRestricted(dupA, 4))
	assert.True(t, wm.IsRestricted(dupA, 5))
	assert.False(t, wm.IsRestricted(dupB, 9999))
	assert.True(t, wm.IsRestricted(dupB, 4))

	assert.Len(t, wm.DuplicatedNodeIDs(), 2)
}

func TestWayMapOnlyRestrictsToSingleTarget(t *testing.T) {
	wm := restriction.NewWayMap([]restriction.WayRecord{
		{InFrom: 1, InVia: 2, OutVia: 3, OutTo: 4, IsOnly: true},
	})

	dup, ok := wm.AsDuplicatedNodeID(1, 2, 3)
	require.True(t, ok)

	assert.False(t, wm.IsRestricted(dup, 4))
	assert.True(t, wm.IsRestricted(dup, 7))

	rec, err := wm.Restriction(dup, 7)
	require.NoError(t, err)
	assert.Equal(t, restriction.NodeID(4), rec.OutTo)
}

func TestWayMapUnknownTripletHasNoGroup(t *testing.T) {
	wm := restriction.NewWayMap(nil)
	_, ok := wm.AsDuplicatedNodeID(1, 2, 3)
	assert.False(t, ok)
	assert.False(t, wm.IsRestricted(0, 4))
}

func TestWayMapRestrictionUnknownDuplicatedNode(t *testing.T) {
	wm := restriction.NewWayMap(nil)
	_, err := wm.Restriction(42, 4)
	require.ErrorIs(t, err, restriction.ErrUnknownDuplicatedNode)
}
