// Package annotation implements the annotation deduplicator: a table of
// interned (name-id, mode, classification) tuples, indexed by edges, and
// the mark/prefix-sum compaction pass that removes unreferenced entries
// after compression.
package annotation
