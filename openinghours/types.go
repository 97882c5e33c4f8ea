package openinghours

import "time"

// Modifier is the trailing state word a rule may carry; it overrides the
// default "open" meaning of a rule matching.
type Modifier uint8

const (
	ModifierOpen Modifier = iota
	ModifierClosed
	ModifierOff
	ModifierUnknown
)

// TimeSpan is a half-open interval of minutes-since-midnight. End may
// exceed 1440 to express a span that wraps past midnight (e.g. 22:00-02:00
// is stored as [1320, 1560)), per the extended 24-48h hour notation.
type TimeSpan struct {
	StartMinute int
	EndMinute   int
}

// contains reports whether minute-of-day m falls inside the span on the
// span's own day. The past-midnight tail of a wrapped span belongs to the
// following day and is matched separately by containsWrapped.
func (s TimeSpan) contains(m int) bool {
	return m >= s.StartMinute && m < s.EndMinute
}

// containsWrapped reports whether minute-of-day m falls inside the span's
// past-midnight tail, i.e. the portion beyond 1440 spilling into the day
// after the one the span is declared on.
func (s TimeSpan) containsWrapped(m int) bool {
	return s.EndMinute > 1440 && m+1440 >= s.StartMinute && m+1440 < s.EndMinute
}

// nthWeekday qualifies a weekday selector to a specific occurrence within
// the month, e.g. "Mo[1]" (first Monday) or "Mo[-1]" (last Monday). Zero
// means unqualified — every occurrence matches.
type nthWeekday struct {
	weekday time.Weekday
	nth     int // 1-based from start, negative counts from month end, 0 = any
}

// monthDay is an inclusive month range. A rule without a month selector has
// an empty Months list; the unset field is not consulted.
type monthDay struct {
	start time.Month
	end   time.Month
	unset bool
}

// Rule is one semicolon-separated clause of an opening-hours expression:
// an optional month selector, an optional weekday selector, and the time
// spans within a matching day.
type Rule struct {
	Months     []monthDay
	Weekdays   []nthWeekday
	Spans      []TimeSpan
	AllWeek    bool // true for "24/7" and for rules with no weekday selector at all
	Modifier   Modifier
}

// Expression is a parsed conditional-restriction grammar value: an ordered
// sequence of rules, later rules overriding earlier ones that match the
// same instant, mirroring the OSM opening_hours evaluation order.
type Expression struct {
	Rules []Rule
}
