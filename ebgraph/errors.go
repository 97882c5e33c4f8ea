package ebgraph

import "errors"

// Sentinel errors for the edge-based factory, wrapped with pipeline's
// error-kind taxonomy at the call site via %w so the top-level runner can
// branch with errors.Is.
var (
	// ErrDanglingEdgeNode indicates a node-based edge that a turn
	// references never received an edge-based node id — either it was
	// never visited in pass 1 or pass 1 skipped it as inaccessible. An
	// IntegrityViolation
	ErrDanglingEdgeNode = errors.New("ebgraph: node-based edge has no assigned edge-based node")

	// ErrUnknownDuplicatedNode indicates a DuplicatedNodeID produced by
	// the way-restriction map that the factory never materialized an
	// EBNode for.
	ErrUnknownDuplicatedNode = errors.New("ebgraph: unknown duplicated node id")
)
