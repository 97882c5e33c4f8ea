package tzindex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/tzindex"
)

func square(name string, lonMin, latMin, lonMax, latMax float64) tzindex.Polygon {
	return tzindex.Polygon{
		Name: name,
		Outer: []geometry.Coordinate{
			geometry.FromDegrees(lonMin, latMin),
			geometry.FromDegrees(lonMax, latMin),
			geometry.FromDegrees(lonMax, latMax),
			geometry.FromDegrees(lonMin, latMax),
			geometry.FromDegrees(lonMin, latMin),
		},
	}
}

func TestLookupPicksContainingPolygon(t *testing.T) {
	ix, err := tzindex.New([]tzindex.Polygon{
		square("Europe/Berlin", 6, 47, 15, 55),
		square("Europe/Warsaw", 15, 49, 24, 55),
	})
	require.NoError(t, err)

	loc, ok := ix.Lookup(geometry.FromDegrees(13.4, 52.5))
	require.True(t, ok)
	assert.Equal(t, "Europe/Berlin", loc.String())

	loc, ok = ix.Lookup(geometry.FromDegrees(21.0, 52.2))
	require.True(t, ok)
	assert.Equal(t, "Europe/Warsaw", loc.String())
}

func TestLookupOutsideAllPolygons(t *testing.T) {
	ix, err := tzindex.New([]tzindex.Polygon{square("Europe/Berlin", 6, 47, 15, 55)})
	require.NoError(t, err)

	_, ok := ix.Lookup(geometry.FromDegrees(-74.0, 40.7))
	assert.False(t, ok)
}

func TestLookupHonorsHoles(t *testing.T) {
	p := square("Europe/Berlin", 6, 47, 15, 55)
	p.Holes = [][]geometry.Coordinate{square("", 12, 51, 14, 53).Outer}

	ix, err := tzindex.New([]tzindex.Polygon{p})
	require.NoError(t, err)

	_, ok := ix.Lookup(geometry.FromDegrees(13.0, 52.0))
	assert.False(t, ok)

	_, ok = ix.Lookup(geometry.FromDegrees(8.0, 50.0))
	assert.True(t, ok)
}

func TestNewRejectsDegeneratePolygon(t *testing.T) {
	_, err := tzindex.New([]tzindex.Polygon{{Name: "Bad/Zone", Outer: []geometry.Coordinate{{}, {}}}})
	assert.Error(t, err)
}

func TestLoadGeoJSON(t *testing.T) {
	const doc = `{
	  "type": "FeatureCollection",
	  "features": [
	    {
	      "type": "Feature",
	      "properties": {"tzid": "Europe/Berlin"},
	      "geometry": {
	        "type": "Polygon",
	        "coordinates": [[[6,47],[15,47],[15,55],[6,55],[6,47]]]
	      }
	    },
	    {
	      "type": "Feature",
	      "properties": {"tzid": "America/New_York"},
	      "geometry": {
	        "type": "MultiPolygon",
	        "coordinates": [[[[-80,38],[-71,38],[-71,45],[-80,45],[-80,38]]]]
	      }
	    }
	  ]
	}`

	polygons, err := tzindex.LoadGeoJSON(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, polygons, 2)

	ix, err := tzindex.New(polygons)
	require.NoError(t, err)

	loc, ok := ix.Lookup(geometry.FromDegrees(13.4, 52.5))
	require.True(t, ok)
	assert.Equal(t, "Europe/Berlin", loc.String())

	loc, ok = ix.Lookup(geometry.FromDegrees(-74.0, 40.7))
	require.True(t, ok)
	assert.Equal(t, "America/New_York", loc.String())
}
