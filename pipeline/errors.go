package pipeline

import "errors"

// Sentinel error kinds Stage code wraps these with %w to attach
// file/offset/invariant context; the top-level runner branches on them
// with errors.Is to decide whether a failure is fatal.
var (
	// ErrInputInvalid indicates malformed binary input: wrong magic,
	// impossible sizes, unsortable records. Fatal.
	ErrInputInvalid = errors.New("pipeline: input invalid")

	// ErrInputIncompatible indicates a fingerprint major/minor mismatch.
	// Fatal unless the caller explicitly opts in to tolerance.
	ErrInputIncompatible = errors.New("pipeline: input incompatible")

	// ErrIntegrityViolation indicates a dangling index, non-monotonic
	// counter, duplicate turn-id, or a sentinel id found where a real one
	// is required. Always a bug; always fatal.
	ErrIntegrityViolation = errors.New("pipeline: integrity violation")

	// ErrResourceExhausted indicates an allocation or I/O failure (out of
	// memory during an external-memory sort spill, unable to open an
	// output file). Fatal.
	ErrResourceExhausted = errors.New("pipeline: resource exhausted")

	// ErrCancelRequested indicates the top-level cancellation token was
	// observed at a stage boundary. Partially-written artifacts are not
	// removed.
	ErrCancelRequested = errors.New("pipeline: cancellation requested")
)
