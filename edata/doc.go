// Package edata implements the original-edge-data sidecar: a
// length-prefixed binary stream of per-turn records. The edge-based
// factory (package ebgraph) writes one record per admissible turn, indexed
// by the turn's dense turn-id, and never holds the whole sidecar in memory —
// Writer batches records and flushes every FlushBatchSize, then rewrites the
// leading record-count header once at the end.
package edata
