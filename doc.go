// Package waygraph implements the edge-based graph construction pipeline
// for a road-network router: the transformation that turns a node-based
// street graph (intersections as vertices, road segments as edges) into an
// edge-based graph (directed road segments as vertices, admissible turns as
// edges), so that a downstream contraction/partitioning build and
// query-time search — both out of scope here — can operate over turns
// directly instead of re-deriving them at query time.
//
// The pipeline's stages, leaves first:
//
//	nodegraph/   — graph loader (CSR adjacency) + compressor (degree-2 chain collapse)
//	annotation/  — deduplicated (name, mode, classification) table
//	restriction/ — simple turn-restriction map + via-way restriction map
//	intersection/— connected-road enumeration + coordinate walker
//	mergeroad/   — dual-carriageway merge detector
//	guidance/    — turn instruction classifier
//	ebgraph/     — edge-based node/edge factory, the pipeline's driver
//
// geometry, fingerprint, names, openinghours, edata, osrmfile, tzindex,
// components, and external are cross-cutting support packages; pipeline
// hosts the batch runner that schedules the stages under a worker pool with
// per-stage barriers. cmd/ holds the CLI surface (components,
// conditionals).
//
// Out of scope, reached only through the external package's collaborator
// interfaces: OSM ingestion, the extraction scripting hook that assigns
// edge weights, the contraction-hierarchy/partitioning build, query-time
// shortest-path search, the HTTP service layer, the nearest-neighbor
// spatial index, and tile rendering.
package waygraph
