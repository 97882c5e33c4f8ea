// Package pipeline is the batch runner that schedules the build stages
// under a fork-join-per-stage concurrency model: a bounded worker pool for
// data-parallel stages, a single-writer pump for the original-edge-data
// sidecar, atomic stage counters, and a cancellation token checked only at
// stage boundaries.
//
// It also hosts the error-kind taxonomy (InputInvalid,
// InputIncompatible, IntegrityViolation, SemanticWarning, ResourceExhausted,
// CancelRequested) as sentinel errors plus Report, which accumulates
// SemanticWarning counts per stage for the top-level summary.
package pipeline
