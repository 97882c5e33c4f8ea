package restriction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/waygraph/waygraph/restriction"
)

func TestRecordActiveAtEmptyConditionAlwaysActive(t *testing.T) {
	r := restriction.Record{From: 1, Via: 2, To: 3}
	assert.True(t, r.ActiveAt(time.Now()))
}

func TestRecordActiveAtRespectsWeekdaySpan(t *testing.T) {
	r := restriction.Record{From: 1, Via: 2, To: 3, Condition: "Mo-Fr 07:00-09:00"}

	weekdayMorning := time.Date(2026, 7, 27, 8, 0, 0, 0, time.UTC) // Monday
	assert.True(t, r.ActiveAt(weekdayMorning))

	weekdayEvening := time.Date(2026, 7, 27, 20, 0, 0, 0, time.UTC)
	assert.False(t, r.ActiveAt(weekdayEvening))
}

func TestWayRecordActiveAtUnparseableIsAlwaysActive(t *testing.T) {
	r := restriction.WayRecord{InFrom: 1, InVia: 2, OutVia: 3, OutTo: 4, Condition: "!!! not a valid grammar"}
	assert.True(t, r.ActiveAt(time.Now()))
}
