package restriction

import "errors"

// Sentinel errors for the restriction maps.
var (
	// ErrNoOnlyRestriction is returned by OnlyTargetAt when the bucket for
	// (from,via) holds no is_only entry.
	ErrNoOnlyRestriction = errors.New("restriction: no only-restriction at this from/via")

	// ErrUnknownDuplicatedNode indicates a DuplicatedNodeID outside the
	// range WayMap allocated, an IntegrityViolation
	ErrUnknownDuplicatedNode = errors.New("restriction: unknown duplicated node id")

	// ErrNoMatchingRestriction is returned by WayMap.Restriction when the
	// caller did not first confirm IsRestricted for the given target.
	ErrNoMatchingRestriction = errors.New("restriction: no restriction matches this target")
)
