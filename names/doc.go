// Package names implements street-name equivalence for the mergeable-road
// detector and the intersection handler: two name IDs are identical up to
// suffix-table equivalence when they are the same ID, or when stripping a
// recognized suffix token (e.g. "street", "road") from the longer name's
// trailing word leaves the shorter name. The suffix set is a small,
// conservative default.
package names
