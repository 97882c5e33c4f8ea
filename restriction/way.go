package restriction

import "sort"

// viaWayKey identifies the via-way edge InVia->OutVia that a group of
// via-way restrictions share.
type viaWayKey struct {
	inVia  NodeID
	outVia NodeID
}

// groupKey identifies a duplicated-node group: the via-way edge together
// with the specific predecessor node the restriction's "in" edge arrives
// from
type groupKey struct {
	inFrom NodeID
	inVia  NodeID
	outVia NodeID
}

// group collects every WayRecord sharing a groupKey; they differ only in
// OutTo/IsOnly, and are assigned one DuplicatedNodeID between them.
type group struct {
	key  groupKey
	recs []WayRecord
}

// WayMap indexes via-way turn restrictions and allocates the duplicated
// edge-based node IDs the factory needs to tell apart arrivals at a
// via-way that differ only in restriction history. Records are sorted by
// (in-via, out-via, in-from); each contiguous equal-key run becomes one
// duplicated-node group.
type WayMap struct {
	viaWays map[viaWayKey]bool
	groups  []group
	index   map[groupKey]DuplicatedNodeID
}

// NewWayMap builds a WayMap from the raw via-way restriction records.
func NewWayMap(records []WayRecord) *WayMap {
	sorted := make([]WayRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.InVia != b.InVia {
			return a.InVia < b.InVia
		}
		if a.OutVia != b.OutVia {
			return a.OutVia < b.OutVia
		}

		return a.InFrom < b.InFrom
	})

	m := &WayMap{
		viaWays: make(map[viaWayKey]bool),
		index:   make(map[groupKey]DuplicatedNodeID),
	}

	for _, r := range sorted {
		m.viaWays[viaWayKey{inVia: r.InVia, outVia: r.OutVia}] = true

		k := groupKey{inFrom: r.InFrom, inVia: r.InVia, outVia: r.OutVia}
		if id, ok := m.index[k]; ok {
			m.groups[id].recs = append(m.groups[id].recs, r)

			continue
		}

		id := DuplicatedNodeID(len(m.groups))
		m.index[k] = id
		m.groups = append(m.groups, group{key: k, recs: []WayRecord{r}})
	}

	return m
}

// IsViaWay reports whether the node-based edge inVia->outVia carries any
// via-way restriction, so the compressor must not compress through either
// endpoint and the factory must consult this map when emitting turns
// across it.
func (m *WayMap) IsViaWay(inVia, outVia NodeID) bool {
	return m.viaWays[viaWayKey{inVia: inVia, outVia: outVia}]
}

// IsViaNode reports whether n is an endpoint of any via-way restriction,
// satisfying nodegraph.ViaNodeChecker.
func (m *WayMap) IsViaNode(n NodeID) bool {
	for k := range m.viaWays {
		if k.inVia == n || k.outVia == n {
			return true
		}
	}

	return false
}

// AsDuplicatedNodeID returns the duplicated-node group allocated for an
// arrival at the via-way inVia->outVia coming from inFrom, if any
// restriction was recorded for that triplet.
func (m *WayMap) AsDuplicatedNodeID(inFrom, inVia, outVia NodeID) (DuplicatedNodeID, bool) {
	id, ok := m.index[groupKey{inFrom: inFrom, inVia: inVia, outVia: outVia}]

	return id, ok
}

// GroupKey returns the (in-from, in-via, out-via) triplet that allocated
// duplicated node d, so the factory can locate the node-based edge the
// shadow node sits on without keeping its own copy of the grouping.
func (m *WayMap) GroupKey(d DuplicatedNodeID) (inFrom, inVia, outVia NodeID, ok bool) {
	if int(d) >= len(m.groups) {
		return 0, 0, 0, false
	}

	k := m.groups[d].key

	return k.inFrom, k.inVia, k.outVia, true
}

// DuplicatedNodeIDs enumerates every duplicated-node group this map
// allocated, in ascending ID order, for the factory to materialize as
// additional edge-based nodes.
func (m *WayMap) DuplicatedNodeIDs() []DuplicatedNodeID {
	ids := make([]DuplicatedNodeID, len(m.groups))
	for i := range m.groups {
		ids[i] = DuplicatedNodeID(i)
	}

	return ids
}

// IsRestricted reports whether the turn from the duplicated node dup onward
// to the node to is forbidden, or — if the group holds an is_only entry —
// whether to is anything other than the mandated target.
func (m *WayMap) IsRestricted(dup DuplicatedNodeID, to NodeID) bool {
	if int(dup) >= len(m.groups) {
		return false
	}

	recs := m.groups[dup].recs
	for _, r := range recs {
		if r.IsOnly {
			return r.OutTo != to
		}
	}

	for _, r := range recs {
		if !r.IsOnly && r.OutTo == to {
			return true
		}
	}

	return false
}

// Restriction returns the specific record governing the turn from dup to
// to, for callers that need the original condition/is_only detail after
// confirming IsRestricted.
func (m *WayMap) Restriction(dup DuplicatedNodeID, to NodeID) (WayRecord, error) {
	if int(dup) >= len(m.groups) {
		return WayRecord{}, ErrUnknownDuplicatedNode
	}

	for _, r := range m.groups[dup].recs {
		if r.OutTo == to || r.IsOnly {
			return r, nil
		}
	}

	return WayRecord{}, ErrNoMatchingRestriction
}

// RemapIfRestricted returns the duplicated node arriving at the via-way
// inVia->outVia from inFrom in place of outVia itself, when a restriction
// was recorded for that arrival; ok is false when no remapping applies and
// the factory should use the plain node outVia unchanged.
func (m *WayMap) RemapIfRestricted(inFrom, inVia, outVia NodeID) (DuplicatedNodeID, bool) {
	return m.AsDuplicatedNodeID(inFrom, inVia, outVia)
}
