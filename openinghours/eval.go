package openinghours

import "time"

// ActiveAt reports whether the expression evaluates to open at instant t,
// using t's own location. Later rules override earlier ones that match the
// same instant, per OSM opening_hours evaluation order; a rule with
// Modifier closed/off/unknown is treated as not-open when it matches.
func (e *Expression) ActiveAt(t time.Time) bool {
	active := false

	for _, r := range e.Rules {
		if !r.matches(t) {
			continue
		}

		active = r.Modifier == ModifierOpen
	}

	return active
}

func (r Rule) matches(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()

	if r.monthMatches(t) && r.weekdayMatches(t) {
		for _, span := range r.Spans {
			if span.contains(minute) {
				return true
			}
		}
	}

	// A span wrapping past midnight (e.g. 22:00-26:00) extends a matching
	// day into the early hours of the next one, so t can also match
	// through the day before it.
	prev := t.AddDate(0, 0, -1)
	if r.monthMatches(prev) && r.weekdayMatches(prev) {
		for _, span := range r.Spans {
			if span.containsWrapped(minute) {
				return true
			}
		}
	}

	return false
}

func (r Rule) monthMatches(t time.Time) bool {
	if len(r.Months) == 0 {
		return true
	}

	m := t.Month()
	for _, md := range r.Months {
		if md.start <= md.end {
			if m >= md.start && m <= md.end {
				return true
			}

			continue
		}
		// wrap across year end, e.g. Nov-Feb
		if m >= md.start || m <= md.end {
			return true
		}
	}

	return false
}

func (r Rule) weekdayMatches(t time.Time) bool {
	if r.AllWeek || len(r.Weekdays) == 0 {
		return true
	}

	wd := t.Weekday()

	for _, nw := range r.Weekdays {
		if nw.weekday != wd {
			continue
		}

		if nw.nth == 0 {
			return true
		}

		if occurrenceOfWeekdayInMonth(t) == nw.nth || occurrenceFromMonthEnd(t) == nw.nth {
			return true
		}
	}

	return false
}

// occurrenceOfWeekdayInMonth returns t's 1-based occurrence of its weekday
// within its month (e.g. the second Tuesday returns 2).
func occurrenceOfWeekdayInMonth(t time.Time) int {
	return (t.Day()-1)/7 + 1
}

// occurrenceFromMonthEnd returns a negative count of t's weekday occurrence
// counted from the end of the month: the last occurrence returns -1, the one
// before it -2, and so on.
func occurrenceFromMonthEnd(t time.Time) int {
	lastOfMonth := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
	daysRemaining := lastOfMonth.Day() - t.Day()

	return -(daysRemaining/7 + 1)
}
