package geometry

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distance,
// matching the equivalent-sphere radius golang-geo's earth package documents
// (6371.01 km).
const EarthRadiusMeters = 6371010.0

// Bearing computes the initial bearing from a to b in degrees clockwise from
// north (0..360), following the same haversine-based formula as
// golang-geo's earth.InitialBearingFromLatLngs, expressed directly against
// s2.LatLng/s1.Angle so the dependency is exercised rather than re-derived.
func Bearing(a, b Coordinate) float64 {
	ll1 := s2.LatLngFromDegrees(a.Latd(), a.Lond())
	ll2 := s2.LatLngFromDegrees(b.Latd(), b.Lond())

	lat1 := ll1.Lat.Radians()
	cosLat2 := math.Cos(ll2.Lat.Radians())
	latDiff := ll2.Lat.Radians() - ll1.Lat.Radians()
	lngDiff := ll2.Lng.Radians() - ll1.Lng.Radians()

	x := math.Sin(latDiff) + math.Sin(lat1)*cosLat2*2*haversine(lngDiff)
	y := math.Sin(lngDiff) * cosLat2
	bearing := s1.Angle(math.Atan2(y, x)) * s1.Radian

	deg := bearing.Normalized().Degrees()
	if deg < 0 {
		deg += 360
	}

	return deg
}

func haversine(radians float64) float64 {
	sinHalf := math.Sin(radians / 2)
	return sinHalf * sinHalf
}

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Coordinate) float64 {
	ll1 := s2.LatLngFromDegrees(a.Latd(), a.Lond())
	ll2 := s2.LatLngFromDegrees(b.Latd(), b.Lond())
	angle := ll1.Distance(ll2)

	return angle.Radians() * EarthRadiusMeters
}

// AngularDeviation returns the absolute difference between two bearings,
// normalized into [0,180].
func AngularDeviation(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}

	return d
}

// NormalizeAngle maps a raw bearing difference into [0,360) with
// straight-ahead represented as 180 degrees: the angle of a connected road
// is the via-edge's outgoing bearing minus the road's bearing, rotated so
// that continuing straight lands on 180°. Angles below 180 deviate to the
// right of straight-ahead, angles above it to the left.
func NormalizeAngle(viaOutBearing, roadBearing float64) float64 {
	angle := viaOutBearing - roadBearing + 180
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}

	return angle
}
