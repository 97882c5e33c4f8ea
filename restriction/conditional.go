package restriction

import (
	"time"

	"github.com/waygraph/waygraph/openinghours"
)

// ConditionalActiveAt reports whether a restriction's Condition expression
// (opening-hours grammar) is active at instant t. An empty condition is
// always active — an unconditional restriction. A condition that fails to
// parse is treated as always active; the failure is not reported, and
// nothing in the module records pipeline.WarnUnparseableCondition.
func ConditionalActiveAt(condition string, t time.Time) bool {
	if condition == "" {
		return true
	}

	expr, err := openinghours.Parse(condition)
	if err != nil {
		return true
	}

	return expr.ActiveAt(t)
}

// ActiveAt reports whether this simple restriction is in force at t.
func (r Record) ActiveAt(t time.Time) bool {
	return ConditionalActiveAt(r.Condition, t)
}

// ActiveAt reports whether this via-way restriction is in force at t.
func (r WayRecord) ActiveAt(t time.Time) bool {
	return ConditionalActiveAt(r.Condition, t)
}
