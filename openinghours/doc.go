// Package openinghours parses the conditional-restriction grammar: a
// sequence of semicolon-separated rules, each a weekday/month selector
// followed by one or more time spans, optionally ending in a modifier
// ({open, closed, off, unknown}). It supports `24/7`, weekday ranges with an
// optional nth-of-month qualifier, month ranges, and time spans that
// wrap past midnight via the extended 24-48h hour notation. Day-of-month
// selectors (e.g. "Dec 25") are not recognized; Parse returns an error for
// them.
//
// This is a pragmatic subset of the OSM opening_hours grammar: enough to
// decide whether a restriction is active at a given instant, not a
// general-purpose opening_hours evaluator.
package openinghours
