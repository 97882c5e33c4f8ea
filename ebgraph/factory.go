package ebgraph

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/waygraph/waygraph/annotation"
	"github.com/waygraph/waygraph/edata"
	"github.com/waygraph/waygraph/guidance"
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/mergeroad"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/pipeline"
	"github.com/waygraph/waygraph/restriction"
)

// DefaultAccessBoundaryPenalty is added to a turn's weight when it
// crosses from an access-restricted edge onto an unrestricted one or vice
// versa. Not calibrated against a real profile; a conservative
// discouragement in the absence of an external.ProfileHook.
const DefaultAccessBoundaryPenalty int32 = 2000

// pumpQueueCapacity bounds how far pass-2 workers can run ahead of the
// single original-edge-data writer goroutine before Send blocks.
const pumpQueueCapacity = 256

// classRankMask and classLinkBit interpret annotation.ClassificationFlags'
// otherwise-opaque bits for the two things the factory and guidance
// package need: a numeric priority rank and a ramp/connector flag.
const (
	classRankMask annotation.ClassificationFlags = 0x00FF
	classLinkBit  annotation.ClassificationFlags = 1 << 8
)

func classRank(f annotation.ClassificationFlags) uint8 { return uint8(f & classRankMask) }
func classIsLink(f annotation.ClassificationFlags) bool { return f&classLinkBit != 0 }

// Config collects every read-only collaborator the factory consults.
// Restrictions and WayRestrictions may be nil when the input graph carries
// no turn restrictions at all.
type Config struct {
	Graph           *nodegraph.Graph
	Coords          intersection.CoordinateSource
	Annotations     *annotation.Table
	Restrictions    *restriction.Map
	WayRestrictions *restriction.WayMap

	Names     guidance.NameTable
	Suffixes  guidance.Suffixes
	Penalties guidance.PenaltyTable

	AccessBoundaryPenalty int32

	// EdgeDataOut receives the original-edge-data sidecar stream.
	EdgeDataOut io.WriteSeeker

	// Workers configures the fork-join worker pool pass 2 runs under. A
	// nil Workers selects pipeline.New(0) (runtime.GOMAXPROCS workers).
	Workers *pipeline.Pipeline

	// Report accumulates SemanticWarning counts and processed/skipped
	// turn totals. A nil Report gets a fresh one.
	Report *pipeline.Report
}

// Result is the output of one Build: the complete edge-based node and edge
// vectors, plus run statistics.
type Result struct {
	Nodes []EBNode
	Edges []EBEdge
	Stats Stats
}

// pendingTurn pairs an EBEdge awaiting its turn-id with the
// original-edge-data record describing the same turn; both are handed to
// the writer pump together so the two stay in lockstep.
type pendingTurn struct {
	edge *EBEdge
	rec  edata.Record
}

// Factory runs the two-pass edge-based graph construction algorithm over a
// frozen node-based graph.
type Factory struct {
	Config

	nodes    []EBNode
	edgeNode []NodeID // node-based EdgeID -> edge-based NodeID, InvalidNodeID if unassigned

	edgePtrs []*EBEdge
	edgesMu  sync.Mutex

	dupOffset NodeID

	gen   *intersection.Generator
	merge *mergeroad.Detector
	pump  *pipeline.WriterPump[pendingTurn]

	stats Stats
}

// New returns a Factory ready to Build from cfg.
func New(cfg Config) *Factory {
	if cfg.Report == nil {
		cfg.Report = pipeline.NewReport()
	}
	if cfg.Workers == nil {
		cfg.Workers = pipeline.New(0)
	}
	if cfg.AccessBoundaryPenalty == 0 {
		cfg.AccessBoundaryPenalty = DefaultAccessBoundaryPenalty
	}

	return &Factory{Config: cfg}
}

// Build runs pass 1, pass 2 (plain and duplicated), and the end-of-pass
// sort/dedup, returning the completed edge-based graph.
func (f *Factory) Build(ctx context.Context) (*Result, error) {
	f.buildPlainNodes()
	f.buildDuplicatedNodes()

	writer, err := edata.NewWriter(f.EdgeDataOut)
	if err != nil {
		return nil, fmt.Errorf("%w: opening original-edge-data stream: %v", pipeline.ErrResourceExhausted, err)
	}

	f.pump = pipeline.NewWriterPump(pumpQueueCapacity, func(pt pendingTurn) error {
		pt.edge.Data.TurnID = TurnID(writer.Count())

		return writer.Append(pt.rec)
	})

	f.gen = intersection.NewGenerator(f.Graph, f.Coords)
	f.merge = mergeroad.NewDetector(f.gen, f.roadDataFromEdge, f.Names, f.Suffixes)

	rangeErr := f.Workers.ParallelRange(ctx, f.Graph.NumNodes(), func(i int) error {
		return f.processSourceNode(nodegraph.NodeID(i))
	})
	if rangeErr != nil {
		_ = f.pump.Close()

		return nil, rangeErr
	}

	f.processDuplicated()

	if err := f.pump.Close(); err != nil {
		return nil, fmt.Errorf("%w: writing original-edge-data: %v", pipeline.ErrResourceExhausted, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing original-edge-data: %v", pipeline.ErrResourceExhausted, err)
	}

	return f.finalize(), nil
}

// buildPlainNodes is pass 1: single-threaded, since it is a simple
// monotonic counter assignment that a concurrent pass would need to
// synchronize for no benefit — pass 2 cannot start until every node-based
// edge has an id anyway.
func (f *Factory) buildPlainNodes() {
	f.edgeNode = make([]NodeID, f.Graph.EdgeCapacity())
	for i := range f.edgeNode {
		f.edgeNode[i] = InvalidNodeID
	}

	for u := 0; u < f.Graph.NumNodes(); u++ {
		begin, end := f.Graph.AdjacentEdges(nodegraph.NodeID(u))

		for e := begin; e < end; e++ {
			if f.Graph.IsDummy(e) {
				continue
			}

			data := f.Graph.EdgeData(e)
			if data.Mode == nodegraph.ModeInaccessible {
				f.Report.Warn(pipeline.WarnUnknownTravelMode)

				continue
			}

			id := NodeID(len(f.nodes))
			f.edgeNode[e] = id

			f.nodes = append(f.nodes, EBNode{
				ID:           id,
				From:         f.Coords.NodeCoordinate(nodegraph.NodeID(u)),
				To:           f.Coords.NodeCoordinate(data.Target),
				NameID:       data.NameID,
				Weight:       data.Weight,
				IgnoreInGrid: data.AccessRestricted,
				Mode:         data.Mode,
			})
		}
	}
}

// buildDuplicatedNodes materializes one EBNode per duplicated-node group
// the way-restriction map allocated, immediately after the plain nodes so
// duplicated ids are NodeID(len(plain nodes)) and up.
func (f *Factory) buildDuplicatedNodes() {
	if f.WayRestrictions == nil {
		return
	}

	f.dupOffset = NodeID(len(f.nodes))

	for _, id := range f.WayRestrictions.DuplicatedNodeIDs() {
		_, inVia, outVia, ok := f.WayRestrictions.GroupKey(id)
		if !ok {
			continue
		}

		node := EBNode{ID: f.dupOffset + NodeID(id)}

		if e := f.Graph.FindEdge(inVia, outVia); e != nodegraph.InvalidEdgeID {
			data := f.Graph.EdgeData(e)
			node.From = f.Coords.NodeCoordinate(inVia)
			node.To = f.Coords.NodeCoordinate(outVia)
			node.NameID = data.NameID
			node.Weight = data.Weight
			node.Mode = data.Mode
			node.IgnoreInGrid = data.AccessRestricted
		}

		f.nodes = append(f.nodes, node)
		f.stats.DuplicatedNodesEmitted++
	}
}

func (f *Factory) duplicatedNode(id restriction.DuplicatedNodeID) NodeID {
	return f.dupOffset + NodeID(id)
}

// processSourceNode emits the admissible turns for every outgoing edge
// (u,v) of u. Safe to call concurrently for distinct u:
// it only reads the frozen graph and restriction maps, appends to the
// mutex-protected edge slice, and sends to the concurrency-safe pump.
func (f *Factory) processSourceNode(u nodegraph.NodeID) error {
	begin, end := f.Graph.AdjacentEdges(u)

	for e := begin; e < end; e++ {
		if f.Graph.IsDummy(e) {
			continue
		}

		data := f.Graph.EdgeData(e)
		if data.Mode == nodegraph.ModeInaccessible {
			continue
		}

		uvNode := f.edgeNode[e]
		if uvNode == InvalidNodeID {
			continue
		}

		v := data.Target

		roads := f.gen.Generate(u, e)
		arriving, guideRoads := f.toGuidance(v, e, data, roads)
		instructions := guidance.Classify(arriving, guideRoads, f.Names, f.Suffixes)

		barrierAtV := f.Graph.IsBarrier(v)
		signalAtV := f.Graph.IsTrafficSignal(v)

		for i, r := range roads {
			if !r.EntryAllowed {
				continue
			}

			isUTurn := r.Angle == intersection.UTurnAngle
			if barrierAtV && !isUTurn {
				continue
			}

			w := r.Target

			if f.Restrictions != nil && f.Restrictions.IsRestrictedTurn(u, v, w) {
				f.Report.IncSkipped()
				f.Report.Warn(pipeline.WarnSkippedRestrictedTurn)

				continue
			}

			vwEdge := r.Edge
			target := f.edgeNode[vwEdge]
			if target == InvalidNodeID {
				continue
			}

			if f.WayRestrictions != nil {
				if dup, ok := f.WayRestrictions.RemapIfRestricted(u, v, w); ok {
					target = f.duplicatedNode(dup)
				}
			}

			vwData := f.Graph.EdgeData(vwEdge)
			instr := instructions[i]
			weight := data.Weight + f.Penalties.WeightFor(instr, signalAtV)
			if data.AccessRestricted != vwData.AccessRestricted {
				instr.AccessRestricted = true
				weight += f.AccessBoundaryPenalty
			}
			if weight < 1 {
				f.Report.Warn(pipeline.WarnClampedEdgeWeight)
				weight = 1
			}

			edge := &EBEdge{
				Source: uvNode,
				Target: target,
				Data: EdgeData{
					Weight:   weight,
					Duration: weight,
					Distance: vwData.Distance,
					Forward:  true,
				},
			}

			rec := edata.Record{
				Via:             v,
				NameID:          vwData.NameID,
				Instruction:     instr,
				Mode:            vwData.Mode,
				PostTurnBearing: float32(r.Bearing),
			}

			f.appendEdge(edge)
			f.pump.Send(pendingTurn{edge: edge, rec: rec})
			f.Report.IncProcessed()
		}
	}

	return nil
}

// processDuplicated emits the onward turns for every via-way restriction's
// duplicated shadow node: turns leaving the shared (v,w)
// edge that arrived there via this specific restriction history, filtered
// by the way-restriction map instead of (or in addition to) the simple one.
// Runs single-threaded: duplicated-node groups are a small fraction of the
// graph's edges, so splitting this across workers buys little.
func (f *Factory) processDuplicated() {
	if f.WayRestrictions == nil {
		return
	}

	for _, dupID := range f.WayRestrictions.DuplicatedNodeIDs() {
		_, inVia, outVia, ok := f.WayRestrictions.GroupKey(dupID)
		if !ok {
			continue
		}

		vwEdge := f.Graph.FindEdge(inVia, outVia)
		if vwEdge == nodegraph.InvalidEdgeID {
			continue
		}

		vwData := f.Graph.EdgeData(vwEdge)
		w := outVia
		dupNode := f.duplicatedNode(dupID)

		roads := f.gen.Generate(inVia, vwEdge)
		arriving, guideRoads := f.toGuidance(w, vwEdge, vwData, roads)
		instructions := guidance.Classify(arriving, guideRoads, f.Names, f.Suffixes)

		barrierAtW := f.Graph.IsBarrier(w)
		signalAtW := f.Graph.IsTrafficSignal(w)

		for i, r := range roads {
			if !r.EntryAllowed {
				continue
			}

			isUTurn := r.Angle == intersection.UTurnAngle
			if barrierAtW && !isUTurn {
				continue
			}

			x := r.Target

			if f.WayRestrictions.IsRestricted(dupID, x) {
				f.Report.IncSkipped()
				f.Report.Warn(pipeline.WarnSkippedRestrictedTurn)

				continue
			}
			if f.Restrictions != nil && f.Restrictions.IsRestrictedTurn(inVia, w, x) {
				f.Report.IncSkipped()

				continue
			}

			wxEdge := r.Edge
			target := f.edgeNode[wxEdge]
			if target == InvalidNodeID {
				continue
			}

			wxData := f.Graph.EdgeData(wxEdge)
			instr := instructions[i]
			weight := vwData.Weight + f.Penalties.WeightFor(instr, signalAtW)
			if vwData.AccessRestricted != wxData.AccessRestricted {
				instr.AccessRestricted = true
				weight += f.AccessBoundaryPenalty
			}
			if weight < 1 {
				f.Report.Warn(pipeline.WarnClampedEdgeWeight)
				weight = 1
			}

			edge := &EBEdge{
				Source: dupNode,
				Target: target,
				Data: EdgeData{
					Weight:   weight,
					Duration: weight,
					Distance: wxData.Distance,
					Forward:  true,
				},
			}

			rec := edata.Record{
				Via:             w,
				NameID:          wxData.NameID,
				Instruction:     instr,
				Mode:            wxData.Mode,
				PostTurnBearing: float32(r.Bearing),
			}

			f.appendEdge(edge)
			f.pump.Send(pendingTurn{edge: edge, rec: rec})
			f.Report.IncProcessed()
		}
	}
}

func (f *Factory) appendEdge(e *EBEdge) {
	f.edgesMu.Lock()
	f.edgePtrs = append(f.edgePtrs, e)
	f.edgesMu.Unlock()
}

// toGuidance builds the Arriving/Road views guidance.Classify needs from
// the node-based edge (u,v) and v's connected roads, folding mergeable
// carriageway pairs so a dual carriageway classifies as one logical road.
func (f *Factory) toGuidance(v nodegraph.NodeID, uvEdge nodegraph.EdgeID, uvData *nodegraph.EdgeAttributes, roads []intersection.ConnectedRoad) (guidance.Arriving, []guidance.Road) {
	uvAnn := f.annotationFor(uvData)
	arriving := guidance.Arriving{
		Edge:           uvEdge,
		NameID:         uvData.NameID,
		Classification: classRank(uvAnn.Classification),
		Roundabout:     uvData.Roundabout,
		IsLink:         classIsLink(uvAnn.Classification),
		OneWay:         !uvData.Backward,
	}

	out := make([]guidance.Road, len(roads))
	for i, r := range roads {
		data := f.Graph.EdgeData(r.Edge)
		ann := f.annotationFor(data)

		out[i] = guidance.Road{
			ConnectedRoad:  r,
			NameID:         data.NameID,
			Classification: classRank(ann.Classification),
			Roundabout:     data.Roundabout,
			IsLink:         classIsLink(ann.Classification),
			Restricted:     data.AccessRestricted,
		}
	}

	f.foldMergedRoads(v, out)

	return arriving, out
}

// foldMergedRoads runs the mergeable-road detector over neighboring pairs
// of outgoing roads. When a pair merges, the enterable side's angle becomes
// the pair's combined angle, so a dual carriageway's continuation reads as
// straight instead of as a slight turn toward one carriageway.
func (f *Factory) foldMergedRoads(v nodegraph.NodeID, roads []guidance.Road) {
	if f.merge == nil || len(roads) < 3 {
		return
	}

	for i := range roads {
		a := &roads[i]
		b := &roads[(i+1)%len(roads)]

		if a.Angle == intersection.UTurnAngle || b.Angle == intersection.UTurnAngle {
			continue
		}

		lhs := f.roadDataFromEdge(a.Edge)
		lhs.Bearing = a.Bearing
		rhs := f.roadDataFromEdge(b.Edge)
		rhs.Bearing = b.Bearing

		if !f.merge.CanMerge(v, lhs, rhs) {
			continue
		}

		combined := combineAngles(a.Angle, b.Angle)
		if a.EntryAllowed {
			a.Angle = combined
		}
		if b.EntryAllowed {
			b.Angle = combined
		}
	}
}

// combineAngles averages two nearby [0,360) angles across the wrap point.
func combineAngles(a, b float64) float64 {
	diff := b - a
	if diff > 180 {
		diff -= 360
	}
	if diff < -180 {
		diff += 360
	}

	mid := a + diff/2
	if mid < 0 {
		mid += 360
	}
	if mid >= 360 {
		mid -= 360
	}

	return mid
}

// roadDataFromEdge is the mergeroad.Classifier the detector resolves edges
// through; the bearing is left zero because CanMerge receives its pair's
// bearings from the already-generated connected-road view.
func (f *Factory) roadDataFromEdge(e nodegraph.EdgeID) mergeroad.RoadData {
	data := f.Graph.EdgeData(e)
	ann := f.annotationFor(data)

	return mergeroad.RoadData{
		Edge:           e,
		Target:         data.Target,
		NameID:         data.NameID,
		Reversed:       data.Reversed,
		Roundabout:     data.Roundabout,
		Mode:           data.Mode,
		Classification: classRank(ann.Classification),
	}
}

func (f *Factory) annotationFor(data *nodegraph.EdgeAttributes) annotation.Annotation {
	if f.Annotations == nil {
		return annotation.Annotation{}
	}

	ann, err := f.Annotations.Get(data.AnnotationIndex)
	if err != nil {
		return annotation.Annotation{}
	}

	return ann
}

// finalize sorts edge-based nodes by id and drops exact duplicates, sorts
// edge-based edges's ordering, and fills in Stats.
func (f *Factory) finalize() *Result {
	sort.Slice(f.nodes, func(i, j int) bool { return f.nodes[i].ID < f.nodes[j].ID })
	f.nodes = dedupNodes(f.nodes)

	edges := make([]EBEdge, len(f.edgePtrs))
	for i, p := range f.edgePtrs {
		edges[i] = *p
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Less(edges[j]) })

	f.stats.NodesEmitted = len(f.nodes)
	f.stats.EdgesEmitted = len(edges)
	f.stats.TurnsSkipped = f.Report.Skipped()

	return &Result{Nodes: f.nodes, Edges: edges, Stats: f.stats}
}

func dedupNodes(nodes []EBNode) []EBNode {
	if len(nodes) == 0 {
		return nodes
	}

	out := nodes[:1]
	for _, n := range nodes[1:] {
		if n == out[len(out)-1] {
			continue
		}

		out = append(out, n)
	}

	return out
}
