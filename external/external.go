package external

import (
	"time"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/guidance"
	"github.com/waygraph/waygraph/nodegraph"
)

// ProfileHook stands in for the extraction scripting environment: a
// configuration-driven collaborator that decides how a turn's classified
// instruction folds into weight and duration. ebgraph.Factory takes no
// hook: it folds penalties from its Config.Penalties table directly.
type ProfileHook interface {
	// TurnWeight returns the additional weight and duration an admissible
	// turn contributes, given its classified instruction and whether the
	// via-node carries a traffic signal.
	TurnWeight(instr guidance.Instruction, viaIsSignal bool) (weight, duration int32)
}

// DefaultProfileHook adapts a guidance.PenaltyTable into a ProfileHook,
// reporting the same penalty as both weight and duration.
type DefaultProfileHook struct {
	Penalties guidance.PenaltyTable
}

// TurnWeight implements ProfileHook using the fixed penalty table.
func (h DefaultProfileHook) TurnWeight(instr guidance.Instruction, viaIsSignal bool) (int32, int32) {
	w := h.Penalties.WeightFor(instr, viaIsSignal)

	return w, w
}

// TimeZoneLookup resolves a coordinate to the IANA timezone whose boundary
// polygon contains it, the collaborator `conditionals check` uses to turn a
// UTC instant into the local time a restriction's opening-hours condition
// is evaluated against. tzindex.Index implements this.
type TimeZoneLookup interface {
	Lookup(c geometry.Coordinate) (*time.Location, bool)
}

// OSMSource streams the Nodes and Edges of the Input graph format from
// upstream OSM extraction; restrictions are not part of this interface.
// Nothing in this module consumes it: `conditionals dump` reads an
// extracted network container through package osrmfile instead.
type OSMSource interface {
	Nodes() ([]nodegraph.InputNode, error)
	Edges() ([]nodegraph.InputEdge, error)
}
