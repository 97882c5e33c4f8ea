// Package external declares the collaborator interfaces the core pipeline
// calls into without owning: OSM ingestion, the extraction scripting hook
// that assigns edge weights and access flags, and timezone lookup for
// conditional-restriction evaluation.
//
// None of these are implemented here — the core module accepts them as
// plain interfaces so cmd/ and callers can supply real adapters (an OSM
// PBF reader, a Lua/JS scripting sandbox, a timezone shapefile index)
// without the core depending on any of that machinery.
package external
