// Package components identifies strongly connected components of the
// node-based graph, the analysis behind the components tool's
// disconnected-network report: a road segment whose containing component
// is tiny is almost always an extraction artifact (a gated yard, a
// mis-tagged oneway pair) rather than a reachable part of the network.
package components
