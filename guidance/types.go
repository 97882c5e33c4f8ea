package guidance

import (
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/names"
	"github.com/waygraph/waygraph/nodegraph"
)

// InstructionType is the closed set of turn-instruction kinds.
type InstructionType uint8

const (
	NoTurn InstructionType = iota
	NewNameStraight
	ContinueStraight
	TurnSlight
	TurnRight
	TurnSharp
	TurnLeft
	UTurn
	RampOn
	RampOff
	ForkOn
	ForkOff
	Merge
	EnterRoundabout
	StayOnRoundabout
	LeaveRoundabout
	EndOfRoad
	AccessRestrictedPenalty
)

// Direction is derived from a connected road's angle
type Direction uint8

const (
	DirectionStraight Direction = iota
	DirectionSlightRight
	DirectionRight
	DirectionSharpRight
	DirectionUTurn
	DirectionSharpLeft
	DirectionLeft
	DirectionSlightLeft
)

// Instruction is the tagged-sum-type result of classifying one outgoing
// road at an intersection. AccessRestricted marks turns that cross onto an
// access-restricted edge; it rides alongside the type rather than as its
// own type so the underlying kind survives.
type Instruction struct {
	Type             InstructionType
	Direction        Direction
	AccessRestricted bool
}

// Angle thresholds, in degrees.
const (
	NarrowTurnAngle       = 35.0
	FuzzyAngleDifference  = 15.0
	DistinctionRatio      = 2.0
	SlightTurnAngle       = 60.0
	SharpTurnAngle        = 150.0
)

// Road is one outgoing candidate at an intersection, combining the
// generator's ConnectedRoad with the classification/name/access attributes
// the classifier needs.
type Road struct {
	intersection.ConnectedRoad

	NameID         uint32
	Classification uint8
	Roundabout     bool
	IsLink         bool
	Restricted     bool
}

// NameTable and Suffixes are reused from package names.
type NameTable = names.Table
type Suffixes = names.SuffixTable

// Arriving describes the edge the traveler is entering the intersection
// on, the information obvious-turn selection and roundabout handling
// compare candidates against.
type Arriving struct {
	Edge           nodegraph.EdgeID
	NameID         uint32
	Classification uint8
	Roundabout     bool
	IsLink         bool
	OneWay         bool // true when the arriving road has no Backward direction
}

// directionFromAngle maps a normalized [0,360) angle, straight-ahead = 180,
// into a Direction bucket. Angles below 180 deviate to the right of
// straight-ahead; angles above it deviate left.
func directionFromAngle(angle float64) Direction {
	if angle == intersection.UTurnAngle {
		return DirectionUTurn
	}

	deviation := angle - 180
	right := deviation < 0
	abs := deviation
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs <= NarrowTurnAngle:
		return DirectionStraight
	case abs <= SlightTurnAngle:
		if right {
			return DirectionSlightRight
		}

		return DirectionSlightLeft
	case abs <= SharpTurnAngle:
		if right {
			return DirectionRight
		}

		return DirectionLeft
	default:
		if right {
			return DirectionSharpRight
		}

		return DirectionSharpLeft
	}
}
