// Command components reports the disconnected pieces of an extracted road
// network: it loads the network container and its restrictions file, runs
// a strongly-connected-components analysis, and writes every edge whose
// containing component is tiny as a line into component.{shp,shx,dbf} for
// inspection in a GIS viewer.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/waygraph/waygraph/components"
	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/internal/shp"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/osrmfile"
)

func main() {
	cmd := &cobra.Command{
		Use:           "components <osrm-file> <restrictions-file>",
		Short:         "Find and export tiny disconnected road-network components",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], args[1])
		},
	}

	if err := cmd.Execute(); err != nil {
		log.Printf("components: %v", err)
		os.Exit(1)
	}
}

func run(graphPath, restrictionsPath string) error {
	graphFile, err := os.Open(graphPath)
	if err != nil {
		return err
	}
	defer graphFile.Close()

	contents, err := osrmfile.Read(graphFile)
	if err != nil {
		return fmt.Errorf("%s: %w", graphPath, err)
	}

	restrictionsFile, err := os.Open(restrictionsPath)
	if err != nil {
		return err
	}
	defer restrictionsFile.Close()

	simple, viaWay, err := osrmfile.ReadRestrictions(restrictionsFile)
	if err != nil {
		return fmt.Errorf("%s: %w", restrictionsPath, err)
	}
	log.Printf("loaded %d simple and %d via-way restrictions", len(simple), len(viaWay))

	g, coords, err := buildGraph(contents)
	if err != nil {
		return err
	}

	assignment := components.Find(g)
	log.Printf("identified %d components, %d of size one", assignment.Count(), assignment.SizeOneCount())

	writer := shp.NewPolylineWriter("component")

	for u := 0; u < g.NumNodes(); u++ {
		source := nodegraph.NodeID(u)

		begin, end := g.AdjacentEdges(source)
		for e := begin; e < end; e++ {
			if g.IsDummy(e) {
				continue
			}

			target := g.Target(e)

			// Emit each undirected segment once.
			if source > target && g.FindEdge(target, source) != nodegraph.InvalidEdgeID {
				continue
			}

			size := assignment.Size(assignment.ComponentOf(source))
			if s := assignment.Size(assignment.ComponentOf(target)); s < size {
				size = s
			}

			if size < components.SmallComponentThreshold {
				writer.Add([]geometry.Coordinate{coords[source], coords[target]})
			}
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing component shapefile: %w", err)
	}
	log.Printf("wrote %d tiny-component segments to component.shp", writer.Count())

	return nil
}

// buildGraph expands the container's edge stream into the directed edges a
// traversal needs: one per asserted direction, self-loops dropped, weights
// clamped to at least one.
func buildGraph(contents *osrmfile.Contents) (*nodegraph.Graph, map[nodegraph.NodeID]geometry.Coordinate, error) {
	coords := make(map[nodegraph.NodeID]geometry.Coordinate, len(contents.Nodes))

	nodeCount := 0
	for _, n := range contents.Nodes {
		coords[n.ID] = n.Coordinate
		if int(n.ID)+1 > nodeCount {
			nodeCount = int(n.ID) + 1
		}
	}

	var edges []nodegraph.InputEdge
	for _, e := range contents.Edges {
		if e.Source == e.Target {
			continue
		}

		weight := e.Weight
		if weight < 1 {
			weight = 1
		}

		if e.Forward {
			directed := e
			directed.Weight = weight
			directed.Backward = false
			edges = append(edges, directed)
		}
		if e.Backward {
			directed := e
			directed.Source, directed.Target = e.Target, e.Source
			directed.Weight = weight
			directed.Forward = true
			directed.Backward = false
			edges = append(edges, directed)
		}
	}

	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Source < edges[j].Source })

	g, err := nodegraph.NewGraph(nodeCount, edges, contents.Nodes)
	if err != nil {
		return nil, nil, err
	}

	return g, coords, nil
}
