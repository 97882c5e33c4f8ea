package guidance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waygraph/waygraph/guidance"
	"github.com/waygraph/waygraph/intersection"
	"github.com/waygraph/waygraph/names"
	"github.com/waygraph/waygraph/nodegraph"
)

type fakeNameTable map[uint32]string

func (t fakeNameTable) NameForID(id uint32) string { return t[id] }

func road(edge nodegraph.EdgeID, angle float64, nameID uint32, class uint8) guidance.Road {
	return guidance.Road{
		ConnectedRoad: intersection.ConnectedRoad{
			Edge: edge, Angle: angle, EntryAllowed: true,
		},
		NameID:         nameID,
		Classification: class,
	}
}

func TestClassifyUTurnSlot(t *testing.T) {
	arriving := guidance.Arriving{NameID: 1, Classification: 2}
	roads := []guidance.Road{
		{ConnectedRoad: intersection.ConnectedRoad{Edge: 1, Angle: intersection.UTurnAngle, EntryAllowed: false}},
		road(2, 180, 1, 2),
	}

	out := guidance.Classify(arriving, roads, fakeNameTable{1: "Main Street"}, names.DefaultSuffixes())
	require.Len(t, out, 2)
	assert.Equal(t, guidance.UTurn, out[0].Type)
	assert.Equal(t, guidance.DirectionUTurn, out[0].Direction)
}

func TestClassifyObviousContinuationIsNoTurn(t *testing.T) {
	arriving := guidance.Arriving{NameID: 1, Classification: 2}
	roads := []guidance.Road{
		{ConnectedRoad: intersection.ConnectedRoad{Edge: 1, Angle: intersection.UTurnAngle}},
		road(2, 182, 1, 2),  // continuation of the same street, nearly straight
		road(3, 95, 9, 1),   // a clearly distinct side street
	}

	out := guidance.Classify(arriving, roads, fakeNameTable{1: "Main Street", 9: "Side Road"}, names.DefaultSuffixes())
	assert.Equal(t, guidance.NoTurn, out[1].Type)
}

func TestClassifyByAngleFallback(t *testing.T) {
	// A cross intersection: the straight road keeps the side roads out of
	// the end-of-road match, so they fall through to classifyByAngle.
	arriving := guidance.Arriving{NameID: 1, Classification: 2}
	roads := []guidance.Road{
		{ConnectedRoad: intersection.ConnectedRoad{Edge: 1, Angle: intersection.UTurnAngle}},
		road(2, 270, 5, 2),
		road(3, 90, 9, 2),
		road(4, 180, 7, 2),
	}

	out := guidance.Classify(arriving, roads, fakeNameTable{1: "Main Street", 5: "Other Avenue", 7: "Through Road", 9: "Cross Street"}, names.DefaultSuffixes())
	assert.Equal(t, guidance.TurnLeft, out[1].Type)
	assert.Equal(t, guidance.TurnRight, out[2].Type)
}

func TestClassifyMotorwayExit(t *testing.T) {
	arriving := guidance.Arriving{NameID: 1, Classification: 5}

	exit := road(3, 150, 9, 1)
	exit.IsLink = true

	roads := []guidance.Road{
		{ConnectedRoad: intersection.ConnectedRoad{Edge: 1, Angle: intersection.UTurnAngle}},
		road(2, 175, 1, 5), // the motorway continues, nearly straight
		exit,
	}

	out := guidance.Classify(arriving, roads, fakeNameTable{1: "M1", 9: "Exit 12"}, names.DefaultSuffixes())

	assert.Equal(t, guidance.NoTurn, out[1].Type) // obvious continuation
	assert.Equal(t, guidance.RampOff, out[2].Type)
	assert.Equal(t, guidance.DirectionSlightRight, out[2].Direction)
}

func TestClassifyEndOfRoadForcesTurn(t *testing.T) {
	// A T-junction: the arriving street ends, both options are real turns.
	arriving := guidance.Arriving{NameID: 1, Classification: 2}
	roads := []guidance.Road{
		road(2, 92, 5, 2),
		road(3, 268, 5, 2),
	}

	out := guidance.Classify(arriving, roads, fakeNameTable{1: "Dead Street", 5: "Cross Street"}, names.DefaultSuffixes())

	assert.Equal(t, guidance.EndOfRoad, out[0].Type)
	assert.Equal(t, guidance.DirectionRight, out[0].Direction)
	assert.Equal(t, guidance.EndOfRoad, out[1].Type)
	assert.Equal(t, guidance.DirectionLeft, out[1].Direction)
}

func TestClassifyRoundaboutStayOn(t *testing.T) {
	arriving := guidance.Arriving{NameID: 1, Roundabout: true}
	r1 := road(1, intersection.UTurnAngle, 1, 1)
	r1.Roundabout = true
	r2 := road(2, 100, 1, 1)
	r2.Roundabout = true
	r3 := road(3, 260, 1, 1)
	r3.Roundabout = true

	roads := []guidance.Road{r1, r2, r3}
	out := guidance.Classify(arriving, roads, fakeNameTable{1: "Roundabout"}, names.DefaultSuffixes())

	assert.Equal(t, guidance.StayOnRoundabout, out[1].Type)
}
