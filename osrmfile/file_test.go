package osrmfile_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/osrmfile"
	"github.com/waygraph/waygraph/pipeline"
	"github.com/waygraph/waygraph/restriction"
)

func sampleContents() *osrmfile.Contents {
	return &osrmfile.Contents{
		Nodes: []nodegraph.InputNode{
			{ID: 0, Coordinate: geometry.FromDegrees(13.388860, 52.517037), OSMID: 240109189},
			{ID: 1, Coordinate: geometry.FromDegrees(13.397634, 52.529407), Barrier: true, OSMID: 240109190},
			{ID: 2, Coordinate: geometry.FromDegrees(13.428555, 52.523219), TrafficLight: true, OSMID: -7},
		},
		Edges: []nodegraph.InputEdge{
			{Source: 0, Target: 1, NameID: 12, Weight: 100, Duration: 100, Distance: 950, Forward: true, Backward: true, Mode: nodegraph.ModeDriving},
			{Source: 1, Target: 2, NameID: 13, Weight: 60, Duration: 60, Distance: 410, Forward: true, Roundabout: true, Access: true, Startpoint: true, IsSplit: true, Mode: nodegraph.ModeCycling},
		},
		Restrictions: []restriction.Record{
			{From: 0, Via: 1, To: 2, IsOnly: true},
			{From: 2, Via: 1, To: 0, Condition: "Mo-Fr 08:30-20:00"},
		},
		WayRestrictions: []restriction.WayRecord{
			{InFrom: 0, InVia: 1, OutVia: 2, OutTo: 0, Condition: "24/7"},
		},
	}
}

func TestContentsRoundTrip(t *testing.T) {
	want := sampleContents()

	var buf bytes.Buffer
	require.NoError(t, osrmfile.Write(&buf, want))

	got, err := osrmfile.Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, want.Nodes, got.Nodes)
	assert.Equal(t, want.Edges, got.Edges)
	assert.Equal(t, want.Restrictions, got.Restrictions)
	assert.Equal(t, want.WayRestrictions, got.WayRestrictions)
}

func TestRestrictionsRoundTrip(t *testing.T) {
	want := sampleContents()

	var buf bytes.Buffer
	require.NoError(t, osrmfile.WriteRestrictions(&buf, want.Restrictions, want.WayRestrictions))

	simple, viaWay, err := osrmfile.ReadRestrictions(&buf)
	require.NoError(t, err)

	assert.Equal(t, want.Restrictions, simple)
	assert.Equal(t, want.WayRestrictions, viaWay)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := osrmfile.Read(bytes.NewReader(bytes.Repeat([]byte{0xAB}, 256)))
	assert.ErrorIs(t, err, pipeline.ErrInputInvalid)
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, osrmfile.Write(&buf, sampleContents()))

	raw := buf.Bytes()

	_, err := osrmfile.Read(bytes.NewReader(raw[:len(raw)-5]))
	assert.ErrorIs(t, err, pipeline.ErrInputInvalid)
}
