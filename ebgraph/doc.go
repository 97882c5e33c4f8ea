// Package ebgraph implements the edge-based factory, the pipeline's
// driver: it turns a frozen, compressed node-based graph into the
// edge-based graph a contraction/search build consumes, where vertices are
// directed node-based edges and arcs are admissible turns.
//
// Pass 1 walks every node's outgoing edges once, sequentially, assigning
// each a dense edge-based node id. Pass 2 walks every (u,v) pair again, this
// time in parallel over source node u, enumerating v's connected roads via
// package intersection, classifying each with package guidance, consulting
// the simple and via-way restriction maps, and appending one edge-based
// edge plus one original-edge-data record per admissible turn. A separate,
// sequential sub-pass emits the onward turns for every via-way restriction's
// duplicated shadow node. Turn-id assignment and the original-edge-data
// write are serialized through a single pipeline.WriterPump so turn-ids
// stay dense and unique despite concurrent producers.
package ebgraph
