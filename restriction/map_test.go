package restriction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/restriction"
)

func TestMapNoOnlyAllowsEveryTurnExceptListed(t *testing.T) {
	m := restriction.NewMap([]restriction.Record{
		{From: 1, Via: 2, To: 3, IsOnly: false},
	})

	assert.True(t, m.IsRestrictedTurn(1, 2, 3))
	assert.False(t, m.IsRestrictedTurn(1, 2, 4))
	assert.True(t, m.IsViaNode(2))
	assert.False(t, m.IsViaNode(3))
}

func TestMapOnlyForbidsEveryOtherTarget(t *testing.T) {
	m := restriction.NewMap([]restriction.Record{
		{From: 1, Via: 2, To: 3, IsOnly: true},
	})

	assert.False(t, m.IsRestrictedTurn(1, 2, 3))
	assert.True(t, m.IsRestrictedTurn(1, 2, 4))

	to, err := m.OnlyTargetAt(1, 2)
	require.NoError(t, err)
	assert.Equal(t, restriction.NodeID(3), to)
}

func TestMapOnlyClearsPriorBucket(t *testing.T) {
	m := restriction.NewMap([]restriction.Record{
		{From: 1, Via: 2, To: 3, IsOnly: false},
		{From: 1, Via: 2, To: 5, IsOnly: true},
	})

	assert.True(t, m.IsRestrictedTurn(1, 2, 3))
	assert.True(t, m.IsRestrictedTurn(1, 2, 4))
	assert.False(t, m.IsRestrictedTurn(1, 2, 5))
}

func TestMapSecondOnlyIsIgnored(t *testing.T) {
	m := restriction.NewMap([]restriction.Record{
		{From: 1, Via: 2, To: 3, IsOnly: true},
		{From: 1, Via: 2, To: 9, IsOnly: true},
	})

	to, err := m.OnlyTargetAt(1, 2)
	require.NoError(t, err)
	assert.Equal(t, restriction.NodeID(3), to)
}

func TestMapOnlyTargetAtAbsentReturnsError(t *testing.T) {
	m := restriction.NewMap(nil)
	_, err := m.OnlyTargetAt(1, 2)
	require.ErrorIs(t, err, restriction.ErrNoOnlyRestriction)
}
