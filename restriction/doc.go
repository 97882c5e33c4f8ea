// Package restriction implements the simple restriction map and the
// via-way restriction map: indexing turn restrictions by (from-node,
// via-node), distinguishing only_* from no_* semantics, and allocating the
// duplicated edge-based node IDs that let the router tell apart arrivals
// that share geometry but differ in via-way history.
//
// Map construction follows a strict bucket-replacement rule: an is_only
// entry clears the bucket first, unless the bucket already holds an is_only
// entry, in which case the new record is ignored; no bucket may ever mix an
// is_only entry with no_* entries. WayMap groups its records by sorting on
// (in-via, out-via, in-from); each contiguous group gets one duplicated
// node id.
package restriction
