package guidance

// PenaltyTable carries the per-turn-type weight/duration penalties that the
// extraction scripting environment would otherwise supply
// (external.ProfileHook); the core ships deterministic defaults so the
// pipeline runs without a profile attached.
type PenaltyTable struct {
	// TrafficSignalPenalty is added to a turn's weight/duration when the
	// via-node carries a traffic signal.
	TrafficSignalPenalty int32

	// UTurnPenalty is added on top of TrafficSignalPenalty when the turn
	// instruction classifies as UTurn.
	UTurnPenalty int32

	// SharpTurnPenalty is added for TurnSharp instructions, reflecting the
	// extra time a driver needs to execute a sharp turn. Zero by default;
	// the extraction scripting environment decides whether to charge it.
	SharpTurnPenalty int32
}

// DefaultPenalties returns conservative car-profile defaults: a 2-second
// traffic-signal penalty and a 20-second u-turn penalty, both expressed in
// the same decisecond weight units as edge weights.
func DefaultPenalties() PenaltyTable {
	return PenaltyTable{
		TrafficSignalPenalty: 20,
		UTurnPenalty:          200,
		SharpTurnPenalty:      0,
	}
}

// WeightFor computes the additional weight/duration contribution an
// instruction and via-node state add on top of the base edge weight.
func (p PenaltyTable) WeightFor(instr Instruction, viaIsSignal bool) int32 {
	var total int32

	if viaIsSignal {
		total += p.TrafficSignalPenalty
	}

	switch instr.Type {
	case UTurn:
		total += p.UTurnPenalty
	case TurnSharp:
		total += p.SharpTurnPenalty
	}

	return total
}
