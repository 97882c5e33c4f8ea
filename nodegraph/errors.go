package nodegraph

import "errors"

// Sentinel errors for the node-based graph loader and compressor. Callers
// branch on these with errors.Is.
var (
	// ErrInputNotSorted indicates the InputEdge slice handed to NewGraph was
	// not sorted by Source, violating the CSR-construction precondition.
	ErrInputNotSorted = errors.New("nodegraph: input edges not sorted by source")

	// ErrSelfLoop indicates an edge with Source == Target, rejected by the
	// loader.
	ErrSelfLoop = errors.New("nodegraph: self-loop rejected")

	// ErrNoDirection indicates an edge with neither Forward nor Backward
	// set, which cannot be reconciled into a travel direction.
	ErrNoDirection = errors.New("nodegraph: edge has no forward/backward direction")

	// ErrNodeOutOfRange indicates a source/target index beyond the
	// declared node count.
	ErrNodeOutOfRange = errors.New("nodegraph: node index out of range")

	// ErrGeometryOutOfRange indicates a GeometryID referencing storage that
	// was never appended; always a bug.
	ErrGeometryOutOfRange = errors.New("nodegraph: geometry id out of range")
)
