package annotation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/annotation"
)

func TestInternDeduplicates(t *testing.T) {
	tbl := annotation.NewTable()
	a := annotation.Annotation{NameID: 1, Mode: 2}
	i1 := tbl.Intern(a)
	i2 := tbl.Intern(a)
	assert.Equal(t, i1, i2)
	assert.Equal(t, 1, tbl.Len())
}

func TestCompactRemovesUnreferenced(t *testing.T) {
	tbl := annotation.NewTable()
	used := tbl.Intern(annotation.Annotation{NameID: 1})
	unused := tbl.Intern(annotation.Annotation{NameID: 2})
	_ = unused
	another := tbl.Intern(annotation.Annotation{NameID: 3})

	edgeIdx := []uint32{used, another}
	err := tbl.Compact(len(edgeIdx), func(e int) uint32 { return edgeIdx[e] },
		func(e int, v uint32) { edgeIdx[e] = v })
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())

	a0, err := tbl.Get(edgeIdx[0])
	require.NoError(t, err)
	assert.Equal(t, uint32(1), a0.NameID)

	a1, err := tbl.Get(edgeIdx[1])
	require.NoError(t, err)
	assert.Equal(t, uint32(3), a1.NameID)
}

func TestCompactOutOfRangeIsFatal(t *testing.T) {
	tbl := annotation.NewTable()
	edgeIdx := []uint32{99}
	err := tbl.Compact(1, func(e int) uint32 { return edgeIdx[e] }, func(int, uint32) {})
	require.Error(t, err)
}
