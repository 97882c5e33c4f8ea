package nodegraph

import "github.com/waygraph/waygraph/geometry"

// GeometryID addresses one stored coordinate sequence in a GeometryStore.
// The sign bit selects direction: a non-negative id reads the sequence
// forward, and its bitwise complement (via Reversed) reads it in reverse,
// so a forward edge and its reverse share one stored sequence.
type GeometryID int32

// Reversed returns the GeometryID that reads the same stored sequence in
// the opposite direction.
func (g GeometryID) Reversed() GeometryID { return ^g }

// isReverse reports whether g addresses the reverse traversal.
func (g GeometryID) isReverse() bool { return g < 0 }

// index returns the forward-storage slot this id (in either direction)
// refers to.
func (g GeometryID) index() int32 {
	if g.isReverse() {
		return int32(^g)
	}

	return int32(g)
}

// GeometryStore is an append-only sequence of coordinate arrays, addressed
// by GeometryID. Each stored sequence is its own backing allocation, so
// appending never relocates a previously returned sequence.
type GeometryStore struct {
	chunks [][]geometry.Coordinate // one []Coordinate slice per stored edge
}

// NewGeometryStore returns an empty, ready-to-append store.
func NewGeometryStore() *GeometryStore {
	return &GeometryStore{}
}

// Append stores coords as a new forward sequence and returns its GeometryID.
// Complexity: O(len(coords)).
func (s *GeometryStore) Append(coords []geometry.Coordinate) GeometryID {
	id := GeometryID(len(s.chunks))
	owned := make([]geometry.Coordinate, len(coords))
	copy(owned, coords)
	s.chunks = append(s.chunks, owned)

	return id
}

// Get returns the coordinate sequence for id, reversing it in place (a
// fresh copy) when id addresses the reverse direction. Returns
// ErrGeometryOutOfRange if id was never appended.
func (s *GeometryStore) Get(id GeometryID) ([]geometry.Coordinate, error) {
	idx := id.index()
	if idx < 0 || int(idx) >= len(s.chunks) {
		return nil, ErrGeometryOutOfRange
	}

	seq := s.chunks[idx]
	if !id.isReverse() {
		return seq, nil
	}

	reversed := make([]geometry.Coordinate, len(seq))
	for i, c := range seq {
		reversed[len(seq)-1-i] = c
	}

	return reversed, nil
}

// Len reports how many forward sequences have been appended.
func (s *GeometryStore) Len() int { return len(s.chunks) }
