package geometry

import "math"

// microdegree is the fixed-point scale used by the Input graph format:
// longitude/latitude are signed 32-bit integers at 1e-6 degree precision.
const microdegree = 1e-6

// Coordinate is a single point in the road network, stored at the same
// fixed-point precision as the upstream OSM extraction.
type Coordinate struct {
	Lon int32 // microdegrees, signed
	Lat int32 // microdegrees, signed
}

// Lond returns the longitude in floating-point degrees.
func (c Coordinate) Lond() float64 { return float64(c.Lon) * microdegree }

// Latd returns the latitude in floating-point degrees.
func (c Coordinate) Latd() float64 { return float64(c.Lat) * microdegree }

// FromDegrees builds a Coordinate from floating-point degrees, rounding to
// the nearest microdegree.
func FromDegrees(lon, lat float64) Coordinate {
	return Coordinate{
		Lon: int32(math.Round(lon / microdegree)),
		Lat: int32(math.Round(lat / microdegree)),
	}
}

// Equal reports whether two coordinates are bit-identical.
func (c Coordinate) Equal(o Coordinate) bool {
	return c.Lon == o.Lon && c.Lat == o.Lat
}

// Valid reports whether c lies within the representable lon/lat range.
func (c Coordinate) Valid() bool {
	return c.Lond() >= -180 && c.Lond() <= 180 && c.Latd() >= -90 && c.Latd() <= 90
}
