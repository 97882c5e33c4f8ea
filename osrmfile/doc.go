// Package osrmfile reads and writes the extracted road-network container:
// the node/edge streams handed down from OSM extraction, plus the turn
// restriction records, each behind the shared fingerprint header. The
// pipeline's tools consume these files; the extraction side that produces
// them is an external collaborator.
package osrmfile
