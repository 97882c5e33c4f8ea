// Command conditionals works with time-conditional turn restrictions:
// "dump" extracts them from a network container into CSV, and "check"
// filters a dumped CSV down to the restrictions active at a given UTC
// moment, resolving each restriction's local time through timezone
// boundary shapes.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/nodegraph"
	"github.com/waygraph/waygraph/osrmfile"
	"github.com/waygraph/waygraph/restriction"
	"github.com/waygraph/waygraph/tzindex"
)

func main() {
	root := &cobra.Command{
		Use:           "conditionals",
		Short:         "Dump and evaluate time-conditional turn restrictions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	dump := &cobra.Command{
		Use:   "dump <osrm-file> <csv>",
		Short: "Extract conditional restrictions into CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDump(args[0], args[1])
		},
	}

	var (
		tzShapes string
		utcTime  int64
		value    int
	)

	check := &cobra.Command{
		Use:   "check <csv-in> <csv-out>",
		Short: "Write the restrictions active at a given UTC moment",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCheck(args[0], args[1], tzShapes, utcTime, value)
		},
	}
	check.Flags().StringVar(&tzShapes, "tz-shapes", "", "GeoJSON timezone boundary shapes for local-time resolution")
	check.Flags().Int64Var(&utcTime, "utc-time", 0, "UTC moment to evaluate, seconds since epoch (default: now)")
	check.Flags().IntVar(&value, "value", 0, "value column written for each active restriction")

	root.AddCommand(dump, check)

	if err := root.Execute(); err != nil {
		log.Printf("conditionals: %v", err)
		os.Exit(1)
	}
}

func runDump(graphPath, csvPath string) error {
	graphFile, err := os.Open(graphPath)
	if err != nil {
		return err
	}
	defer graphFile.Close()

	contents, err := osrmfile.Read(graphFile)
	if err != nil {
		return fmt.Errorf("%s: %w", graphPath, err)
	}

	coords := make(map[nodegraph.NodeID]geometry.Coordinate, len(contents.Nodes))
	for _, n := range contents.Nodes {
		coords[n.ID] = n.Coordinate
	}

	out, err := os.Create(csvPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)

	dumped := 0
	for _, r := range contents.Restrictions {
		if r.Condition == "" {
			continue
		}

		value := "no_turn"
		if r.IsOnly {
			value = "only_turn"
		}

		via := coords[r.Via]
		record := []string{
			formatID(r.From),
			formatID(r.Via),
			formatID(r.To),
			"restriction:conditional",
			value,
			r.Condition,
			strconv.FormatFloat(via.Lond(), 'f', 6, 64),
			strconv.FormatFloat(via.Latd(), 'f', 6, 64),
		}
		if err = w.Write(record); err != nil {
			return err
		}
		dumped++
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	log.Printf("dumped %d conditional restrictions to %s", dumped, csvPath)

	return out.Close()
}

func runCheck(inPath, outPath, tzShapes string, utcSeconds int64, value int) error {
	var zones *tzindex.Index

	if tzShapes != "" {
		shapes, err := os.Open(tzShapes)
		if err != nil {
			return err
		}
		defer shapes.Close()

		polygons, err := tzindex.LoadGeoJSON(shapes)
		if err != nil {
			return fmt.Errorf("%s: %w", tzShapes, err)
		}

		zones, err = tzindex.New(polygons)
		if err != nil {
			return err
		}
	}

	utc := time.Now().UTC()
	if utcSeconds != 0 {
		utc = time.Unix(utcSeconds, 0).UTC()
	}

	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	rows, err := csv.NewReader(in).ReadAll()
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)

	active := 0
	for i, row := range rows {
		if len(row) < 8 {
			return fmt.Errorf("%s: row %d has %d columns, want 8", inPath, i+1, len(row))
		}

		condition := row[5]

		local := utc
		if zones != nil {
			lon, lonErr := strconv.ParseFloat(row[6], 64)
			lat, latErr := strconv.ParseFloat(row[7], 64)
			if lonErr != nil || latErr != nil {
				return fmt.Errorf("%s: row %d has an unparseable coordinate", inPath, i+1)
			}

			if loc, ok := zones.Lookup(geometry.FromDegrees(lon, lat)); ok {
				local = utc.In(loc)
			}
		}

		if !restriction.ConditionalActiveAt(condition, local) {
			continue
		}

		if err = w.Write([]string{row[0], row[1], row[2], strconv.Itoa(value)}); err != nil {
			return err
		}
		active++
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	log.Printf("%d of %d restrictions active at %s", active, len(rows), utc.Format(time.RFC3339))

	return out.Close()
}

func formatID(n nodegraph.NodeID) string {
	return strconv.FormatUint(uint64(n), 10)
}
