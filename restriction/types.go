package restriction

import "github.com/waygraph/waygraph/nodegraph"

// NodeID aliases the node-based graph's node identifier so restriction.Map
// can be used without every caller importing nodegraph directly.
type NodeID = nodegraph.NodeID

// RestrictionID indexes a single via-way restriction record within a
// WayMap's sorted restriction_data table.
type RestrictionID uint32

// DuplicatedNodeID identifies a group of via-way restrictions that share
// the same (in-via, out-via, in-from) key, and therefore the same
// duplicated edge-based node allocated to represent "arrived here via this
// specific from/via pair".
type DuplicatedNodeID uint32

// Record is a single simple turn-restriction input record: a from/via/to
// node triple, the only-vs-no flag, and an optional time condition.
type Record struct {
	From NodeID
	Via  NodeID
	To   NodeID

	IsOnly bool

	// Condition is the optional opening-hours expression ActiveAt
	// evaluates via package openinghours.
	Condition string
}

// WayRecord is a single via-way restriction input record. The restriction
// spans two consecutive node-based edges: InFrom->InVia (the "in" edge) and
// InVia->OutVia (the "out" edge, since in_restriction.via == out_restriction.from
// in the source grammar); OutTo is the onward target the restriction
// forbids or mandates's (in-from, in-via=out-from, out-via,
// out-to) tuple.
type WayRecord struct {
	InFrom NodeID
	InVia  NodeID
	OutVia NodeID
	OutTo  NodeID

	IsOnly bool

	Condition string
}
