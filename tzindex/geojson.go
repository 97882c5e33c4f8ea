package tzindex

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/waygraph/waygraph/geometry"
	"github.com/waygraph/waygraph/pipeline"
)

// featureCollection mirrors the subset of GeoJSON the timezone boundary
// distributions use: a FeatureCollection of Polygon/MultiPolygon features
// whose tzid property names the IANA zone.
type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any  `json:"properties"`
	Geometry   geojsonGeometry `json:"geometry"`
}

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// LoadGeoJSON parses timezone boundary polygons from a GeoJSON
// FeatureCollection. The zone name is taken from the tzid property (with
// TZID and name accepted as fallbacks); features without one are skipped.
func LoadGeoJSON(r io.Reader) ([]Polygon, error) {
	var fc featureCollection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("%w: parsing timezone shapes: %v", pipeline.ErrInputInvalid, err)
	}

	var polygons []Polygon

	for _, f := range fc.Features {
		name := zoneName(f.Properties)
		if name == "" {
			continue
		}

		switch f.Geometry.Type {
		case "Polygon":
			var rings [][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &rings); err != nil {
				return nil, fmt.Errorf("%w: polygon coordinates for %q: %v", pipeline.ErrInputInvalid, name, err)
			}

			polygons = append(polygons, polygonFromRings(name, rings))
		case "MultiPolygon":
			var multi [][][][2]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &multi); err != nil {
				return nil, fmt.Errorf("%w: multipolygon coordinates for %q: %v", pipeline.ErrInputInvalid, name, err)
			}

			for _, rings := range multi {
				polygons = append(polygons, polygonFromRings(name, rings))
			}
		default:
			return nil, fmt.Errorf("%w: unsupported geometry %q for %q", pipeline.ErrInputInvalid, f.Geometry.Type, name)
		}
	}

	return polygons, nil
}

func zoneName(properties map[string]any) string {
	for _, key := range []string{"tzid", "TZID", "name"} {
		if v, ok := properties[key].(string); ok && v != "" {
			return v
		}
	}

	return ""
}

func polygonFromRings(name string, rings [][][2]float64) Polygon {
	p := Polygon{Name: name}

	for i, ring := range rings {
		coords := make([]geometry.Coordinate, len(ring))
		for j, pt := range ring {
			coords[j] = geometry.FromDegrees(pt[0], pt[1])
		}

		if i == 0 {
			p.Outer = coords
		} else {
			p.Holes = append(p.Holes, coords)
		}
	}

	return p
}
