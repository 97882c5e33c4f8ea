package annotation

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange indicates an edge referenced an annotation index past
// the end of the table — an IntegrityViolation, since it can only
// happen if the pipeline has a bug upstream.
var ErrIndexOutOfRange = errors.New("annotation: index out of range")

// Mode mirrors nodegraph.TravelMode without importing it, keeping the
// annotation table usable standalone and by tests.
type Mode uint8

// ClassificationFlags is a small closed bitset describing the road's
// functional class (road priority, link-road bit) — kept opaque here since
// only the merge detector and the turn classifier interpret individual
// bits.
type ClassificationFlags uint16

// Annotation is one deduplicated (name, mode, classification) tuple.
type Annotation struct {
	NameID         uint32
	Mode           Mode
	Classification ClassificationFlags
}

// Table interns Annotation values: identical tuples always resolve to the
// same index within a single Table instance.
type Table struct {
	entries []Annotation
	index   map[Annotation]uint32
}

// NewTable returns an empty, ready-to-use Table.
func NewTable() *Table {
	return &Table{index: make(map[Annotation]uint32)}
}

// Intern returns the index for a, allocating a new entry if this exact
// tuple has not been seen before.
//
// Complexity: O(1) amortized.
func (t *Table) Intern(a Annotation) uint32 {
	if idx, ok := t.index[a]; ok {
		return idx
	}

	idx := uint32(len(t.entries))
	t.entries = append(t.entries, a)
	t.index[a] = idx

	return idx
}

// ClassificationFor returns the classification recorded at idx, or the
// zero value when idx is out of range, for callers that need only the
// class bits and treat a dangling index as unclassified.
func (t *Table) ClassificationFor(idx uint32) ClassificationFlags {
	if int(idx) >= len(t.entries) {
		return 0
	}

	return t.entries[idx].Classification
}

// Get returns the annotation stored at idx.
func (t *Table) Get(idx uint32) (Annotation, error) {
	if int(idx) >= len(t.entries) {
		return Annotation{}, fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, len(t.entries))
	}

	return t.entries[idx], nil
}

// Len reports the number of distinct annotations currently interned.
func (t *Table) Len() int { return len(t.entries) }

// Compact walks every edge's current annotation index via indexOf, marks
// which table entries are reachable, computes a prefix-sum remap from old
// to new indices, rewrites each edge's index in place via setIndex, and
// truncates the table to only the reachable entries.
//
// edgeCount is the number of edges to iterate (0..edgeCount). Returns
// ErrIndexOutOfRange (wrapped with the offending edge number) if any edge
// references an index beyond the table — a bug upstream, never a recoverable
// condition
//
// Complexity: O(edgeCount + len(entries)).
func (t *Table) Compact(edgeCount int, indexOf func(edge int) uint32, setIndex func(edge int, newIndex uint32)) error {
	reachable := make([]bool, len(t.entries))
	for e := 0; e < edgeCount; e++ {
		idx := indexOf(e)
		if int(idx) >= len(t.entries) {
			return fmt.Errorf("%w: edge %d references %d", ErrIndexOutOfRange, e, idx)
		}
		reachable[idx] = true
	}

	remap := make([]uint32, len(t.entries))
	var next uint32
	var compacted []Annotation
	for old, isReachable := range reachable {
		if !isReachable {
			continue
		}
		remap[old] = next
		compacted = append(compacted, t.entries[old])
		next++
	}

	for e := 0; e < edgeCount; e++ {
		setIndex(e, remap[indexOf(e)])
	}

	t.entries = compacted
	t.index = make(map[Annotation]uint32, len(compacted))
	for i, a := range compacted {
		t.index[a] = uint32(i)
	}

	return nil
}
