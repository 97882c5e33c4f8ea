package shp

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/geometry"
)

func TestPolylineWriterTriple(t *testing.T) {
	base := filepath.Join(t.TempDir(), "component")

	w := NewPolylineWriter(base)
	w.Add([]geometry.Coordinate{
		geometry.FromDegrees(13.0, 52.0),
		geometry.FromDegrees(13.1, 52.1),
	})
	w.Add([]geometry.Coordinate{
		geometry.FromDegrees(13.2, 52.2),
		geometry.FromDegrees(13.3, 52.3),
		geometry.FromDegrees(13.4, 52.4),
	})
	w.Add([]geometry.Coordinate{geometry.FromDegrees(1, 1)}) // dropped

	require.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())

	shp, err := os.ReadFile(base + ".shp")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(shp), mainHeaderSize)

	assert.Equal(t, uint32(fileCode), binary.BigEndian.Uint32(shp[0:4]))
	assert.Equal(t, uint32(shapePolyline), binary.LittleEndian.Uint32(shp[32:36]))
	assert.Equal(t, len(shp)/2, int(binary.BigEndian.Uint32(shp[24:28])))

	// First record header: number 1, two points.
	rec := shp[mainHeaderSize:]
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(rec[0:4]))
	assert.Equal(t, uint32(contentWords(2)), binary.BigEndian.Uint32(rec[4:8]))

	shx, err := os.ReadFile(base + ".shx")
	require.NoError(t, err)
	assert.Len(t, shx, mainHeaderSize+8*2)

	dbf, err := os.ReadFile(base + ".dbf")
	require.NoError(t, err)
	require.Greater(t, len(dbf), 65)
	assert.Equal(t, byte(0x03), dbf[0])
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(dbf[4:8]))
}

func TestPolylineWriterEmpty(t *testing.T) {
	base := filepath.Join(t.TempDir(), "empty")

	w := NewPolylineWriter(base)
	require.NoError(t, w.Close())

	shp, err := os.ReadFile(base + ".shp")
	require.NoError(t, err)
	assert.Len(t, shp, mainHeaderSize)
}
