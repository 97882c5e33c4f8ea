// Package guidance implements the intersection handler: given an
// arriving road and the connected-road list at an intersection, it finds
// the "obvious" onward road (if any) and assigns every admissible outgoing
// road a turn instruction.
//
// The instruction hierarchy is a tagged sum type
// (InstructionType + Direction) rather than a class hierarchy, and
// classification is a sequence of matcher functions (classifyUTurn,
// classifyRoundabout, the obvious-road match, classifyRamp,
// classifyEndOfRoad, classifyByAngle) applied in order, the first match
// winning.
package guidance
