package guidance

import (
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/names"
)

// Classify assigns a turn instruction to every admissible outgoing road at
// an intersection, given the arriving edge. The returned slice
// parallels roads. A sequence of classifiers is tried per road, in
// order, the first match winning: classifyUTurn, classifyRoundabout,
// the obvious road found by findObviousRoad (classifyObviousInstruction),
// classifyRamp, classifyEndOfRoad, and finally classifyByAngle.
func Classify(arriving Arriving, roads []Road, nameTable NameTable, suffixes Suffixes) []Instruction {
	obvious, hasObvious := findObviousRoad(arriving, roads, nameTable, suffixes)

	out := make([]Instruction, len(roads))

	for i, r := range roads {
		if instr, ok := classifyUTurn(r); ok {
			out[i] = instr

			continue
		}

		if instr, ok := classifyRoundabout(arriving, r, roads); ok {
			out[i] = instr

			continue
		}

		if hasObvious && r.Edge == obvious.Edge {
			out[i] = classifyObviousInstruction(arriving, r, nameTable, suffixes)

			continue
		}

		if instr, ok := classifyRamp(arriving, r); ok {
			out[i] = instr

			continue
		}

		if instr, ok := classifyEndOfRoad(r, roads); ok {
			out[i] = instr

			continue
		}

		out[i] = classifyByAngle(r)
	}

	return out
}

// classifyRamp matches link-road transitions: leaving a through road onto
// a ramp announces RampOff, continuing from one link onto another RampOn,
// and rejoining a through road from a link Merge. A link that reads as
// nearly straight is still announced at slight strength, since silently
// drifting onto a ramp is the classic navigation failure.
func classifyRamp(arriving Arriving, r Road) (Instruction, bool) {
	dir := directionFromAngle(r.Angle)
	if dir == DirectionStraight && deviation(r.Angle) > FuzzyAngleDifference {
		if r.Angle < 180 {
			dir = DirectionSlightRight
		} else {
			dir = DirectionSlightLeft
		}
	}

	switch {
	case !arriving.IsLink && r.IsLink:
		return Instruction{Type: RampOff, Direction: dir}, true
	case arriving.IsLink && r.IsLink:
		return Instruction{Type: RampOn, Direction: dir}, true
	case arriving.IsLink && !r.IsLink && deviation(r.Angle) <= SlightTurnAngle:
		return Instruction{Type: Merge, Direction: dir}, true
	default:
		return Instruction{}, false
	}
}

// classifyEndOfRoad matches forced turns: when no onward road continues
// anywhere near straight, the arriving street ends and each turn is
// announced as EndOfRoad rather than a plain turn.
func classifyEndOfRoad(r Road, roads []Road) (Instruction, bool) {
	for _, other := range roads {
		if other.Angle != intersection.UTurnAngle && deviation(other.Angle) <= NarrowTurnAngle {
			return Instruction{}, false
		}
	}

	dir := directionFromAngle(r.Angle)
	if dir == DirectionStraight || dir == DirectionUTurn {
		return Instruction{}, false
	}

	return Instruction{Type: EndOfRoad, Direction: dir}, true
}

// classifyUTurn matches the synthetic u-turn slot.
func classifyUTurn(r Road) (Instruction, bool) {
	if r.Angle == intersection.UTurnAngle {
		return Instruction{Type: UTurn, Direction: DirectionUTurn}, true
	}

	return Instruction{}, false
}

// classifyRoundabout handles circulatory junctions: both arriving
// and onward roundabout edges collapse to NoTurn (no other option) or
// StayOnRoundabout; a transition at either end produces Enter/LeaveRoundabout.
func classifyRoundabout(arriving Arriving, r Road, roads []Road) (Instruction, bool) {
	switch {
	case arriving.Roundabout && r.Roundabout:
		if countNonUTurnOptions(roads) <= 1 {
			return Instruction{Type: NoTurn, Direction: DirectionStraight}, true
		}

		return Instruction{Type: StayOnRoundabout, Direction: directionFromAngle(r.Angle)}, true
	case !arriving.Roundabout && r.Roundabout:
		return Instruction{Type: EnterRoundabout, Direction: directionFromAngle(r.Angle)}, true
	case arriving.Roundabout && !r.Roundabout:
		return Instruction{Type: LeaveRoundabout, Direction: directionFromAngle(r.Angle)}, true
	default:
		return Instruction{}, false
	}
}

func countNonUTurnOptions(roads []Road) int {
	count := 0

	for _, r := range roads {
		if r.EntryAllowed && r.Angle != intersection.UTurnAngle {
			count++
		}
	}

	return count
}

// findObviousRoad implements obvious-turn selection: the
// continuation of the current name when no similarly-narrow same-or-higher
// candidate competes, or — absent a continuation — the single straightish
// road of category at least the arriving road's, with every other narrow
// road dominated by the distinctness predicate.
func findObviousRoad(arriving Arriving, roads []Road, nameTable NameTable, suffixes Suffixes) (Road, bool) {
	var sameName []Road

	for _, r := range roads {
		if r.Angle == intersection.UTurnAngle || !r.EntryAllowed {
			continue
		}

		if names.IdenticalNames(r.NameID, arriving.NameID, nameTable, suffixes) {
			sameName = append(sameName, r)
		}
	}

	if len(sameName) == 1 {
		candidate := sameName[0]
		if noCompetitor(arriving, candidate, roads, nameTable, suffixes) {
			return candidate, true
		}
	}

	var narrow []Road

	for _, r := range roads {
		if r.Angle == intersection.UTurnAngle || !r.EntryAllowed {
			continue
		}

		if deviation(r.Angle) <= NarrowTurnAngle && r.Classification >= arriving.Classification {
			narrow = append(narrow, r)
		}
	}

	if len(narrow) != 1 {
		return Road{}, false
	}

	candidate := narrow[0]
	for _, r := range roads {
		if r.Edge == candidate.Edge || r.Angle == intersection.UTurnAngle {
			continue
		}

		if deviation(r.Angle) > NarrowTurnAngle {
			continue
		}

		if !isDistinctFrom(arriving, candidate, r, nameTable, suffixes) {
			return Road{}, false
		}
	}

	if endOfRoadRefusesObvious(arriving, candidate, roads) {
		return Road{}, false
	}

	return candidate, true
}

// noCompetitor reports whether candidate has no other similarly-narrow
// same-or-higher-category road contesting it.
func noCompetitor(arriving Arriving, candidate Road, roads []Road, nameTable NameTable, suffixes Suffixes) bool {
	for _, r := range roads {
		if r.Edge == candidate.Edge || r.Angle == intersection.UTurnAngle {
			continue
		}

		if r.Classification < arriving.Classification {
			continue
		}

		if deviation(r.Angle) <= NarrowTurnAngle && !isDistinctFrom(arriving, candidate, r, nameTable, suffixes) {
			return false
		}
	}

	return true
}

// classifyObviousInstruction picks NoTurn when the name continues unchanged
// (and it's not a new road entirely), or NewNameStraight/ContinueStraight
// otherwise, for the obvious candidate.
func classifyObviousInstruction(arriving Arriving, r Road, nameTable NameTable, suffixes Suffixes) Instruction {
	if names.IdenticalNames(r.NameID, arriving.NameID, nameTable, suffixes) {
		return Instruction{Type: NoTurn, Direction: directionFromAngle(r.Angle)}
	}

	if deviation(r.Angle) <= NarrowTurnAngle {
		return Instruction{Type: NewNameStraight, Direction: directionFromAngle(r.Angle)}
	}

	return Instruction{Type: ContinueStraight, Direction: directionFromAngle(r.Angle)}
}

// classifyByAngle is the fallback: turn type purely from angle bucket.
func classifyByAngle(r Road) Instruction {
	dir := directionFromAngle(r.Angle)

	switch dir {
	case DirectionStraight:
		return Instruction{Type: ContinueStraight, Direction: dir}
	case DirectionSlightLeft, DirectionSlightRight:
		return Instruction{Type: TurnSlight, Direction: dir}
	case DirectionLeft:
		return Instruction{Type: TurnLeft, Direction: dir}
	case DirectionRight:
		return Instruction{Type: TurnRight, Direction: dir}
	default:
		return Instruction{Type: TurnSharp, Direction: dir}
	}
}

// endOfRoadRefusesObvious implements the end-of-road/through-street
// detection: when the arriving road is one-way and another road of the
// candidate's class lies at the candidate's angle mirrored across
// straight-ahead (360 minus its angle, within FuzzyAngleDifference),
// classification refuses the obvious shortcut, so the candidate is
// classified by the later matchers and announced explicitly instead of as
// NoTurn.
func endOfRoadRefusesObvious(arriving Arriving, candidate Road, roads []Road) bool {
	if !arriving.OneWay {
		return false
	}

	oppositeAngle := 360 - candidate.Angle
	if oppositeAngle >= 360 {
		oppositeAngle -= 360
	}

	for _, r := range roads {
		if r.Edge == candidate.Edge {
			continue
		}

		if deviation(r.Angle-oppositeAngle+180) <= FuzzyAngleDifference && r.Classification == candidate.Classification {
			return true
		}
	}

	return false
}
