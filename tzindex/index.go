package tzindex

import (
	"fmt"
	"sync"
	"time"

	"github.com/tidwall/rtree"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/pipeline"
)

// Polygon is one timezone boundary: a named outer ring, optionally with
// holes (inner rings whose containment excludes a point).
type Polygon struct {
	Name  string
	Outer []geometry.Coordinate
	Holes [][]geometry.Coordinate
}

// Index answers which timezone polygon contains a coordinate.
type Index struct {
	polygons []Polygon
	tree     rtree.RTreeG[int]

	mu        sync.Mutex
	locations map[string]*time.Location
}

// New builds an Index over the given boundary polygons. Polygons with
// fewer than three outer-ring points are rejected.
func New(polygons []Polygon) (*Index, error) {
	ix := &Index{
		polygons:  polygons,
		locations: make(map[string]*time.Location),
	}

	for i, p := range polygons {
		if len(p.Outer) < 3 {
			return nil, fmt.Errorf("%w: timezone polygon %q has %d points", pipeline.ErrInputInvalid, p.Name, len(p.Outer))
		}

		min, max := boundingBox(p.Outer)
		ix.tree.Insert(min, max, i)
	}

	return ix, nil
}

// Lookup returns the time.Location of the timezone polygon containing c.
// The second return is false when no polygon contains c or the polygon's
// name is not a loadable IANA zone.
func (ix *Index) Lookup(c geometry.Coordinate) (*time.Location, bool) {
	point := [2]float64{c.Lond(), c.Latd()}

	found := -1
	ix.tree.Search(point, point, func(_, _ [2]float64, i int) bool {
		if ix.polygons[i].contains(c) {
			found = i

			return false
		}

		return true
	})

	if found < 0 {
		return nil, false
	}

	loc, err := ix.location(ix.polygons[found].Name)
	if err != nil {
		return nil, false
	}

	return loc, true
}

// location caches time.LoadLocation results; tzdata lookups hit the disk.
func (ix *Index) location(name string) (*time.Location, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if loc, ok := ix.locations[name]; ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	ix.locations[name] = loc

	return loc, nil
}

func (p Polygon) contains(c geometry.Coordinate) bool {
	if !ringContains(p.Outer, c) {
		return false
	}

	for _, hole := range p.Holes {
		if ringContains(hole, c) {
			return false
		}
	}

	return true
}

// ringContains is the even-odd ray-casting test, run in microdegree
// integer space converted to float64 so antimeridian-free zone shapes
// resolve exactly.
func ringContains(ring []geometry.Coordinate, c geometry.Coordinate) bool {
	x, y := float64(c.Lon), float64(c.Lat)

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		xi, yi := float64(ring[i].Lon), float64(ring[i].Lat)
		xj, yj := float64(ring[j].Lon), float64(ring[j].Lat)

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}

func boundingBox(ring []geometry.Coordinate) (min, max [2]float64) {
	min = [2]float64{ring[0].Lond(), ring[0].Latd()}
	max = min

	for _, p := range ring[1:] {
		lon, lat := p.Lond(), p.Latd()
		if lon < min[0] {
			min[0] = lon
		}
		if lat < min[1] {
			min[1] = lat
		}
		if lon > max[0] {
			max[0] = lon
		}
		if lat > max[1] {
			max[1] = lat
		}
	}

	return min, max
}
