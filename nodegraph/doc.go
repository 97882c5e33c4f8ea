// Package nodegraph implements the node-based graph loader and the
// graph compressor: a compressed-sparse-row adjacency structure over
// directed street-segment edges, the insert/delete operations compression uses to
// collapse degree-2 chains, and the append-only compressed-geometry store
// that holds the interior coordinates produced by compression.
//
// The graph is an arena-plus-indices structure, not a pointer graph: nodes
// own edges only through (first-edge, count) ranges into a single shared
// edge slice, and a "dummy" sentinel target (InvalidNodeID) marks vacated
// slots left behind by the move-to-end insertion policy: arena plus
// indices, no back-pointers.
package nodegraph
