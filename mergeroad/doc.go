// Package mergeroad implements the mergeable-road detector: deciding
// whether two outgoing roads at the same intersection should be treated as
// a single logical road for turn-instruction purposes. CanMerge is a
// conjunction of compatibility gates OR'd over three geometric witnesses,
// each its own method (narrowTriangle, parallelGeometry, trafficIsland).
package mergeroad
