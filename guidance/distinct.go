package guidance

import "github.com/waygraph/waygraph/names"

// isDistinctFrom implements the narrow-turn distinctness predicate: candidate
// road c is distinct from (i.e. not really competing with) road r when any
// of the listed conditions reject r as a competitor.
func isDistinctFrom(arriving Arriving, c, r Road, nameTable NameTable, suffixes Suffixes) bool {
	// r strictly lower category than both arriving and c.
	if r.Classification < arriving.Classification && r.Classification < c.Classification {
		return true
	}

	// r is a link to arriving's class and a link to c's class.
	if r.IsLink && r.Classification <= arriving.Classification && r.Classification <= c.Classification {
		return true
	}

	// r is a driveway/restricted and c is not, while c's deviation is small.
	if r.Restricted && !c.Restricted && deviation(c.Angle) <= NarrowTurnAngle {
		return true
	}

	// r's bearing deviation from straight exceeds c's by at least the
	// distinction ratio and by at least the fuzzy angle difference.
	rDev, cDev := deviation(r.Angle), deviation(c.Angle)
	if rDev >= cDev*DistinctionRatio && rDev-cDev >= FuzzyAngleDifference {
		return true
	}

	// r crosses compared to arriving (its opposite bearing carries no name
	// change) while c's continuation changes name.
	if crossesStraight(r) && !names.RequiresAnnouncement(arriving.NameID, c.NameID, nameTable, suffixes) {
		return true
	}

	// r and c are in the same road group (identical name) but r is a
	// major classification change from arriving.
	if names.IdenticalNames(r.NameID, c.NameID, nameTable, suffixes) && r.Classification != arriving.Classification {
		return true
	}

	// For wider candidate angles, the distinction ratio alone suffices
	// when r has similar-or-lower priority.
	if cDev > SlightTurnAngle && rDev >= cDev*DistinctionRatio && r.Classification <= c.Classification {
		return true
	}

	return false
}

func deviation(angle float64) float64 {
	d := angle - 180
	if d < 0 {
		return -d
	}

	return d
}

// crossesStraight reports whether road r runs close to the straight-through
// bearing class (i.e. it reads as a crossing street rather than a turn).
func crossesStraight(r Road) bool {
	return deviation(r.Angle) <= NarrowTurnAngle
}
