// Package intersection implements the intersection generator and the
// coordinate-extracting graph walker: enumerating the connected roads
// at a node-based intersection with perceived bearings and normalized
// angles, and walking the node-based graph under caller-supplied selector
// and accumulator callables.
//
// Both pieces operate purely on read-only nodegraph.Graph queries, so they
// run concurrently across intersections once compression has finished.
package intersection
