package components

import "github.com/waygraph/waygraph/nodegraph"

// SmallComponentThreshold is the node count under which a component is
// reported as disconnected debris worth flagging.
const SmallComponentThreshold = 1000

// unassigned marks a node Tarjan has not yet given a component.
const unassigned = ^uint32(0)

// Assignment is the result of one SCC run: a component id per node plus
// per-component sizes.
type Assignment struct {
	componentOf []uint32
	sizes       []uint32
}

// ComponentOf returns the component id assigned to n.
func (a *Assignment) ComponentOf(n nodegraph.NodeID) uint32 { return a.componentOf[n] }

// Size returns the node count of component c.
func (a *Assignment) Size(c uint32) uint32 { return a.sizes[c] }

// Count returns the number of components found.
func (a *Assignment) Count() int { return len(a.sizes) }

// SizeOneCount returns how many components consist of a single node.
func (a *Assignment) SizeOneCount() int {
	count := 0
	for _, s := range a.sizes {
		if s == 1 {
			count++
		}
	}

	return count
}

// IsSmall reports whether component c falls under SmallComponentThreshold.
func (a *Assignment) IsSmall(c uint32) bool { return a.sizes[c] < SmallComponentThreshold }

// frame is one entry of the explicit DFS stack the iterative Tarjan runs
// on; edge tracks how far into v's adjacency the frame has progressed.
type frame struct {
	v    nodegraph.NodeID
	edge nodegraph.EdgeID
}

// Find runs Tarjan's strongly-connected-components algorithm over g with
// an explicit stack, so graphs with million-node chains cannot overflow
// the goroutine stack the way a recursive formulation would.
func Find(g *nodegraph.Graph) *Assignment {
	n := g.NumNodes()

	index := make([]uint32, n)
	lowlink := make([]uint32, n)
	onStack := make([]bool, n)
	componentOf := make([]uint32, n)

	for i := range index {
		index[i] = unassigned
		componentOf[i] = unassigned
	}

	var (
		counter  uint32
		sizes    []uint32
		sccStack []nodegraph.NodeID
		dfsStack []frame
	)

	for root := 0; root < n; root++ {
		if index[root] != unassigned {
			continue
		}

		dfsStack = append(dfsStack[:0], frame{v: nodegraph.NodeID(root), edge: g.BeginEdges(nodegraph.NodeID(root))})
		index[root] = counter
		lowlink[root] = counter
		counter++
		sccStack = append(sccStack, nodegraph.NodeID(root))
		onStack[root] = true

		for len(dfsStack) > 0 {
			top := &dfsStack[len(dfsStack)-1]
			v := top.v

			advanced := false
			for end := g.EndEdges(v); top.edge < end; top.edge++ {
				if g.IsDummy(top.edge) {
					continue
				}

				w := g.Target(top.edge)
				if index[w] == unassigned {
					index[w] = counter
					lowlink[w] = counter
					counter++
					sccStack = append(sccStack, w)
					onStack[w] = true

					top.edge++
					dfsStack = append(dfsStack, frame{v: w, edge: g.BeginEdges(w)})
					advanced = true

					break
				}

				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}

			if advanced {
				continue
			}

			dfsStack = dfsStack[:len(dfsStack)-1]

			if len(dfsStack) > 0 {
				parent := dfsStack[len(dfsStack)-1].v
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}

			if lowlink[v] != index[v] {
				continue
			}

			// v is the root of a component; pop it off the SCC stack.
			id := uint32(len(sizes))
			size := uint32(0)
			for {
				w := sccStack[len(sccStack)-1]
				sccStack = sccStack[:len(sccStack)-1]
				onStack[w] = false
				componentOf[w] = id
				size++

				if w == v {
					break
				}
			}
			sizes = append(sizes, size)
		}
	}

	return &Assignment{componentOf: componentOf, sizes: sizes}
}
