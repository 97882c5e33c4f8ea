package ebgraph_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/ebgraph"
	"github.com/waygraph/waygraph/edata"
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/guidance"
	"github.com/waygraph/waygraph/names"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/restriction"
)

type coordMap map[nodegraph.NodeID]geometry.Coordinate

func (m coordMap) NodeCoordinate(n nodegraph.NodeID) geometry.Coordinate { return m[n] }

type nameTable map[uint32]string

func (t nameTable) NameForID(id uint32) string { return t[id] }

// seekBuffer adapts an in-memory byte slice into the io.WriteSeeker the
// original-edge-data writer needs for its header rewrite on Close.
type seekBuffer struct {
	buf []byte
	pos int
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	if s.pos+len(p) > len(s.buf) {
		grown := make([]byte, s.pos+len(p))
		copy(grown, s.buf)
		s.buf = grown
	}
	copy(s.buf[s.pos:], p)
	s.pos += len(p)

	return len(p), nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		s.pos = int(offset)
	case io.SeekCurrent:
		s.pos += int(offset)
	case io.SeekEnd:
		s.pos = len(s.buf) + int(offset)
	default:
		return 0, fmt.Errorf("seekBuffer: bad whence %d", whence)
	}

	return int64(s.pos), nil
}

func sortedBySource(edges []nodegraph.InputEdge) []nodegraph.InputEdge {
	out := append([]nodegraph.InputEdge(nil), edges...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Source < out[j].Source })

	return out
}

// bidi appends both directed halves of an undirected road segment.
func bidi(edges []nodegraph.InputEdge, u, v nodegraph.NodeID, weight int32, nameID uint32) []nodegraph.InputEdge {
	return append(edges,
		nodegraph.InputEdge{Source: u, Target: v, Weight: weight, Distance: weight, NameID: nameID, Forward: true, Backward: true, Mode: nodegraph.ModeDriving},
		nodegraph.InputEdge{Source: v, Target: u, Weight: weight, Distance: weight, NameID: nameID, Forward: true, Backward: true, Mode: nodegraph.ModeDriving},
	)
}

func buildConfig(g *nodegraph.Graph, coords coordMap) (ebgraph.Config, *seekBuffer) {
	out := &seekBuffer{}

	return ebgraph.Config{
		Graph:       g,
		Coords:      coords,
		Names:       nameTable{},
		Suffixes:    names.DefaultSuffixes(),
		Penalties:   guidance.DefaultPenalties(),
		EdgeDataOut: out,
	}, out
}

// findNode locates the edge-based node representing the node-based edge
// (u,v) by its endpoint coordinates. Nodes are sorted by id, so the first
// match is the plain node, not a duplicated shadow sharing its endpoints.
func findNode(t *testing.T, res *ebgraph.Result, coords coordMap, u, v nodegraph.NodeID) ebgraph.NodeID {
	t.Helper()

	for _, n := range res.Nodes {
		if n.From.Equal(coords[u]) && n.To.Equal(coords[v]) {
			return n.ID
		}
	}

	t.Fatalf("no edge-based node for (%d,%d)", u, v)

	return ebgraph.InvalidNodeID
}

func hasEdge(res *ebgraph.Result, source, target ebgraph.NodeID) bool {
	for _, e := range res.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}

	return false
}

func TestBuildEmptyGraph(t *testing.T) {
	g, err := nodegraph.NewGraph(0, nil, nil)
	require.NoError(t, err)

	cfg, _ := buildConfig(g, coordMap{})
	res, err := ebgraph.New(cfg).Build(context.Background())
	require.NoError(t, err)

	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Edges)
}

func TestBuildDeadEndUTurns(t *testing.T) {
	coords := coordMap{
		0: geometry.FromDegrees(13.0, 52.0),
		1: geometry.FromDegrees(13.001, 52.0),
	}
	g, err := nodegraph.NewGraph(2, sortedBySource(bidi(nil, 0, 1, 10, 1)), nil)
	require.NoError(t, err)

	cfg, out := buildConfig(g, coords)
	res, err := ebgraph.New(cfg).Build(context.Background())
	require.NoError(t, err)

	// Both endpoints are dead ends, so each arrival may turn around.
	require.Len(t, res.Nodes, 2)
	require.Len(t, res.Edges, 2)

	for _, e := range res.Edges {
		assert.NotEqual(t, e.Source, e.Target)
	}

	recs, err := edata.ReadAll(bytes.NewReader(out.buf))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	for _, r := range recs {
		assert.Equal(t, guidance.UTurn, r.Instruction.Type)
	}
}

func TestBuildCrossIntersection(t *testing.T) {
	coords := coordMap{
		0: geometry.FromDegrees(13.0, 52.0),
		1: geometry.FromDegrees(13.0, 52.01),  // north
		2: geometry.FromDegrees(13.016, 52.0), // east
		3: geometry.FromDegrees(13.0, 51.99),  // south
		4: geometry.FromDegrees(12.984, 52.0), // west
	}

	var edges []nodegraph.InputEdge
	for i, n := range []nodegraph.NodeID{1, 2, 3, 4} {
		edges = bidi(edges, 0, n, 10, uint32(i+1))
	}

	g, err := nodegraph.NewGraph(5, sortedBySource(edges), nil)
	require.NoError(t, err)

	cfg, _ := buildConfig(g, coords)
	res, err := ebgraph.New(cfg).Build(context.Background())
	require.NoError(t, err)

	// One edge-based node per directed edge.
	assert.Len(t, res.Nodes, 8)

	// Each of the four arrivals at the center may take three onward turns
	// (no u-turn at a degree-four node); each arrival at an outer dead end
	// may only turn around.
	assert.Len(t, res.Edges, 4*3+4)

	seen := map[ebgraph.TurnID]bool{}
	for _, e := range res.Edges {
		assert.NotEqual(t, e.Source, e.Target)
		assert.False(t, seen[e.Data.TurnID], "duplicate turn id %d", e.Data.TurnID)
		seen[e.Data.TurnID] = true
		assert.Less(t, uint32(e.Data.TurnID), uint32(len(res.Edges)))
	}
}

func TestBuildTrafficSignalPenalty(t *testing.T) {
	coords := coordMap{
		0: geometry.FromDegrees(13.0, 52.0),
		1: geometry.FromDegrees(13.001, 52.0),
		2: geometry.FromDegrees(13.002, 52.0),
	}
	edges := bidi(nil, 0, 1, 10, 1)
	edges = bidi(edges, 1, 2, 10, 1)

	nodes := []nodegraph.InputNode{{ID: 1, Coordinate: coords[1], TrafficLight: true}}

	g, err := nodegraph.NewGraph(3, sortedBySource(edges), nodes)
	require.NoError(t, err)

	cfg, _ := buildConfig(g, coords)
	cfg.Penalties = guidance.PenaltyTable{TrafficSignalPenalty: 20}
	res, err := ebgraph.New(cfg).Build(context.Background())
	require.NoError(t, err)

	from := findNode(t, res, coords, 0, 1)
	to := findNode(t, res, coords, 1, 2)

	for _, e := range res.Edges {
		if e.Source == from && e.Target == to {
			assert.Equal(t, int32(10+20), e.Data.Weight)

			return
		}
	}

	t.Fatal("no turn through the signal node")
}

func TestBuildOnlyRestriction(t *testing.T) {
	coords := coordMap{
		0: geometry.FromDegrees(13.0, 52.0),
		1: geometry.FromDegrees(13.0, 52.01),
		2: geometry.FromDegrees(13.016, 52.0),
		3: geometry.FromDegrees(13.0, 51.99),
		4: geometry.FromDegrees(12.984, 52.0),
	}

	var edges []nodegraph.InputEdge
	for i, n := range []nodegraph.NodeID{1, 2, 3, 4} {
		edges = bidi(edges, 0, n, 10, uint32(i+1))
	}

	g, err := nodegraph.NewGraph(5, sortedBySource(edges), nil)
	require.NoError(t, err)

	cfg, _ := buildConfig(g, coords)
	cfg.Restrictions = restriction.NewMap([]restriction.Record{
		{From: 1, Via: 0, To: 3, IsOnly: true},
	})

	res, err := ebgraph.New(cfg).Build(context.Background())
	require.NoError(t, err)

	from := findNode(t, res, coords, 1, 0)
	onlyTarget := findNode(t, res, coords, 0, 3)

	var outgoing []ebgraph.EBEdge
	for _, e := range res.Edges {
		if e.Source == from {
			outgoing = append(outgoing, e)
		}
	}

	require.Len(t, outgoing, 1)
	assert.Equal(t, onlyTarget, outgoing[0].Target)
	assert.GreaterOrEqual(t, res.Stats.TurnsSkipped, int64(2))
}

func TestBuildViaWayRestriction(t *testing.T) {
	// A line a-b-c-d with a spur c-e; forbidding a->b->c->d must leave the
	// spur reachable from the duplicated shadow while the plain (b,c) node
	// keeps its turn onto (c,d).
	coords := coordMap{
		0: geometry.FromDegrees(13.0, 52.0),
		1: geometry.FromDegrees(13.002, 52.0),
		2: geometry.FromDegrees(13.004, 52.0),
		3: geometry.FromDegrees(13.006, 52.0),
		4: geometry.FromDegrees(13.004, 52.002),
	}
	edges := bidi(nil, 0, 1, 10, 1)
	edges = bidi(edges, 1, 2, 10, 1)
	edges = bidi(edges, 2, 3, 10, 1)
	edges = bidi(edges, 2, 4, 10, 2)

	g, err := nodegraph.NewGraph(5, sortedBySource(edges), nil)
	require.NoError(t, err)

	cfg, _ := buildConfig(g, coords)
	cfg.WayRestrictions = restriction.NewWayMap([]restriction.WayRecord{
		{InFrom: 0, InVia: 1, OutVia: 2, OutTo: 3},
	})

	res, err := ebgraph.New(cfg).Build(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, res.Stats.DuplicatedNodesEmitted)

	plainCount := len(res.Nodes) - 1
	dup := res.Nodes[len(res.Nodes)-1].ID
	assert.GreaterOrEqual(t, int(dup), plainCount)

	ab := findNode(t, res, coords, 0, 1)
	bc := findNode(t, res, coords, 1, 2)
	cd := findNode(t, res, coords, 2, 3)
	ce := findNode(t, res, coords, 2, 4)

	// Entering the restricted via-way routes through the shadow node.
	assert.True(t, hasEdge(res, ab, dup))
	assert.False(t, hasEdge(res, ab, bc))

	// The shadow omits the forbidden onward turn but keeps the spur.
	assert.False(t, hasEdge(res, dup, cd))
	assert.True(t, hasEdge(res, dup, ce))

	// The plain (b,c) node, reached by any other history, is unaffected.
	assert.True(t, hasEdge(res, bc, cd))
	assert.True(t, hasEdge(res, bc, ce))
}
