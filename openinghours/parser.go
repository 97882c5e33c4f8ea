package openinghours

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyExpression is returned by Parse when the input contains no rules
// after splitting on ';'.
var ErrEmptyExpression = errors.New("openinghours: empty expression")

var weekdayAbbrev = map[string]time.Weekday{
	"Su": time.Sunday,
	"Mo": time.Monday,
	"Tu": time.Tuesday,
	"We": time.Wednesday,
	"Th": time.Thursday,
	"Fr": time.Friday,
	"Sa": time.Saturday,
}

var monthAbbrev = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

var modifierWord = map[string]Modifier{
	"open":    ModifierOpen,
	"closed":  ModifierClosed,
	"off":     ModifierOff,
	"unknown": ModifierUnknown,
}

// Parse parses a conditional-restriction opening-hours value (the portion
// after any `@` condition separator has already been isolated by the
// caller) into an Expression.
func Parse(s string) (*Expression, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyExpression
	}

	clauses := strings.Split(s, ";")
	expr := &Expression{}

	for _, clause := range clauses {
		clause = strings.TrimSpace(strings.Trim(clause, "()"))
		if clause == "" {
			continue
		}

		rule, err := parseRule(clause)
		if err != nil {
			return nil, err
		}

		expr.Rules = append(expr.Rules, rule)
	}

	if len(expr.Rules) == 0 {
		return nil, ErrEmptyExpression
	}

	return expr, nil
}

func parseRule(clause string) (Rule, error) {
	if clause == "24/7" {
		return Rule{AllWeek: true, Spans: []TimeSpan{{StartMinute: 0, EndMinute: 1440}}}, nil
	}

	var rule Rule

	fields := strings.Fields(clause)
	sawSelector := false

	for _, f := range fields {
		switch {
		case isModifierWord(f):
			rule.Modifier = modifierWord[strings.ToLower(f)]
		case looksLikeTimeSpanList(f):
			spans, err := parseTimeSpans(f)
			if err != nil {
				return Rule{}, err
			}

			rule.Spans = append(rule.Spans, spans...)
		case looksLikeWeekdayList(f):
			wds, err := parseWeekdays(f)
			if err != nil {
				return Rule{}, err
			}

			rule.Weekdays = append(rule.Weekdays, wds...)
			sawSelector = true
		case looksLikeMonthList(f):
			months, err := parseMonths(f)
			if err != nil {
				return Rule{}, err
			}

			rule.Months = append(rule.Months, months...)
			sawSelector = true
		default:
			return Rule{}, fmt.Errorf("openinghours: unrecognized token %q in %q", f, clause)
		}
	}

	if len(rule.Spans) == 0 {
		rule.Spans = []TimeSpan{{StartMinute: 0, EndMinute: 1440}}
	}

	if !sawSelector {
		rule.AllWeek = true
	}

	return rule, nil
}

func isModifierWord(f string) bool {
	_, ok := modifierWord[strings.ToLower(f)]

	return ok
}

func looksLikeTimeSpanList(f string) bool {
	return strings.Contains(f, ":")
}

func looksLikeWeekdayList(f string) bool {
	prefix := f
	if i := strings.IndexByte(prefix, '['); i >= 0 {
		prefix = prefix[:i]
	}

	for _, part := range strings.FieldsFunc(prefix, func(r rune) bool { return r == ',' || r == '-' }) {
		if _, ok := weekdayAbbrev[part]; !ok {
			return false
		}
	}

	return true
}

func looksLikeMonthList(f string) bool {
	for _, part := range strings.FieldsFunc(f, func(r rune) bool { return r == ',' || r == '-' }) {
		if _, ok := monthAbbrev[part]; !ok {
			return false
		}
	}

	return true
}

// parseTimeSpans parses a comma-separated list of HH:MM-HH:MM spans, where
// the hour component may exceed 23 to express a span wrapping past
// midnight (e.g. 22:00-26:00 == 22:00-02:00 the next day).
func parseTimeSpans(f string) ([]TimeSpan, error) {
	var spans []TimeSpan

	for _, part := range strings.Split(f, ",") {
		bounds := strings.SplitN(part, "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("openinghours: malformed time span %q", part)
		}

		start, err := parseClock(bounds[0])
		if err != nil {
			return nil, err
		}

		end, err := parseClock(bounds[1])
		if err != nil {
			return nil, err
		}

		if end <= start {
			end += 1440
		}

		spans = append(spans, TimeSpan{StartMinute: start, EndMinute: end})
	}

	return spans, nil
}

func parseClock(s string) (int, error) {
	hm := strings.SplitN(s, ":", 2)
	if len(hm) != 2 {
		return 0, fmt.Errorf("openinghours: malformed clock value %q", s)
	}

	h, err := strconv.Atoi(hm[0])
	if err != nil {
		return 0, fmt.Errorf("openinghours: bad hour in %q: %w", s, err)
	}

	m, err := strconv.Atoi(hm[1])
	if err != nil {
		return 0, fmt.Errorf("openinghours: bad minute in %q: %w", s, err)
	}

	return h*60 + m, nil
}

// parseWeekdays parses a comma-separated list of weekday ranges, each
// optionally qualified with an [n] nth-of-month suffix, e.g.
// "Mo-Fr", "Sa,Su", "Mo[1]", "Fr[-1]".
func parseWeekdays(f string) ([]nthWeekday, error) {
	var out []nthWeekday

	for _, part := range strings.Split(f, ",") {
		nth := 0

		if i := strings.IndexByte(part, '['); i >= 0 {
			end := strings.IndexByte(part, ']')
			if end < 0 || end < i {
				return nil, fmt.Errorf("openinghours: malformed nth-of-month %q", part)
			}

			n, err := strconv.Atoi(part[i+1 : end])
			if err != nil {
				return nil, fmt.Errorf("openinghours: bad nth-of-month in %q: %w", part, err)
			}

			nth = n
			part = part[:i]
		}

		if r := strings.SplitN(part, "-", 2); len(r) == 2 {
			startWd, ok1 := weekdayAbbrev[r[0]]
			endWd, ok2 := weekdayAbbrev[r[1]]
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("openinghours: unknown weekday in range %q", part)
			}

			for wd := startWd; ; wd = (wd + 1) % 7 {
				out = append(out, nthWeekday{weekday: wd, nth: nth})
				if wd == endWd {
					break
				}
			}

			continue
		}

		wd, ok := weekdayAbbrev[part]
		if !ok {
			return nil, fmt.Errorf("openinghours: unknown weekday %q", part)
		}

		out = append(out, nthWeekday{weekday: wd, nth: nth})
	}

	return out, nil
}

// parseMonths parses a comma-separated list of month ranges, e.g.
// "Jun-Aug", "Dec".
func parseMonths(f string) ([]monthDay, error) {
	var out []monthDay

	for _, part := range strings.Split(f, ",") {
		if r := strings.SplitN(part, "-", 2); len(r) == 2 {
			start, ok1 := monthAbbrev[r[0]]
			end, ok2 := monthAbbrev[r[1]]
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("openinghours: unknown month in range %q", part)
			}

			out = append(out, monthDay{start: start, end: end})

			continue
		}

		m, ok := monthAbbrev[part]
		if !ok {
			return nil, fmt.Errorf("openinghours: unknown month %q", part)
		}

		out = append(out, monthDay{start: m, end: m})
	}

	return out, nil
}
