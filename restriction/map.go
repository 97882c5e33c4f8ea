package restriction

// key identifies a restriction bucket by (from, via)
type key struct {
	from NodeID
	via  NodeID
}

// target is one entry in a bucket: a prohibited or mandated destination.
type target struct {
	to     NodeID
	isOnly bool
}

// Map indexes simple turn restrictions by (from-node, via-node)
// A bucket either holds a single is_only entry or any number of no_*
// entries, never mixed — inserting an is_only entry clears the bucket
// first.
type Map struct {
	buckets map[key][]target
	viaSet  map[NodeID]bool
}

// NewMap builds a Map from a sequence of restriction records, applying
// each in order's insertion rule.
func NewMap(records []Record) *Map {
	m := &Map{
		buckets: make(map[key][]target),
		viaSet:  make(map[NodeID]bool),
	}
	for _, r := range records {
		m.insert(r)
	}

	return m
}

func (m *Map) insert(r Record) {
	k := key{from: r.From, via: r.Via}
	m.viaSet[r.Via] = true

	bucket := m.buckets[k]

	if len(bucket) == 1 && bucket[0].isOnly {
		// Bucket already holds an is_only entry; ignore the new record.
		return
	}

	if r.IsOnly {
		// is_only clears the bucket before insertion.
		m.buckets[k] = []target{{to: r.To, isOnly: true}}

		return
	}

	m.buckets[k] = append(bucket, target{to: r.To, isOnly: false})
}

// OnlyTargetAt returns the unique mandated target for (u,v), if any.
func (m *Map) OnlyTargetAt(u, v NodeID) (NodeID, error) {
	bucket := m.buckets[key{from: u, via: v}]
	if len(bucket) == 1 && bucket[0].isOnly {
		return bucket[0].to, nil
	}

	return 0, ErrNoOnlyRestriction
}

// IsRestrictedTurn reports whether the turn (u,v,w) is forbidden: either an
// explicit no_* entry names w, or an is_only entry names something other
// than w
func (m *Map) IsRestrictedTurn(u, v, w NodeID) bool {
	bucket := m.buckets[key{from: u, via: v}]
	if len(bucket) == 0 {
		return false
	}

	if bucket[0].isOnly {
		return bucket[0].to != w
	}

	for _, t := range bucket {
		if t.to == w {
			return true
		}
	}

	return false
}

// IsViaNode reports whether n is the via-node of any simple restriction,
// satisfying nodegraph.ViaNodeChecker so the compressor can skip it.
func (m *Map) IsViaNode(n NodeID) bool { return m.viaSet[n] }
