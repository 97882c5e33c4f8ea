package geometry

import "math"

// Midpoint returns the planar midpoint between two coordinates. A planar
// (rather than great-circle) midpoint is adequate at the short distances
// (tens of meters) the mergeable-road tests operate over.
func Midpoint(a, b Coordinate) Coordinate {
	return Coordinate{
		Lon: a.Lon/2 + b.Lon/2,
		Lat: a.Lat/2 + b.Lat/2,
	}
}

// PointDistance returns the distance in meters between two coordinates; an
// alias of Distance kept for readability at call sites that think in terms
// of point-to-point rather than bearing-from-a-to-b.
func PointDistance(a, b Coordinate) float64 { return Distance(a, b) }

// LeastSquaresSlope fits a line through the given points (projected to a
// local planar approximation in meters, relative to the first point) and
// returns the slope (rise/run) together with whether the fit is well
// defined (false when all points share the same local x, i.e. a vertical
// line under this projection).
func LeastSquaresSlope(points []Coordinate) (slope float64, ok bool) {
	if len(points) < 2 {
		return 0, false
	}

	origin := points[0]
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = planarXY(origin, p)
	}

	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(points))
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	denom := n*sumXX - sumX*sumX
	if math.Abs(denom) < 1e-9 {
		return 0, false
	}

	slope = (n*sumXY - sumX*sumY) / denom

	return slope, true
}

// planarXY projects p into a local tangent-plane meter offset from origin,
// using an equirectangular approximation (valid over the short distances
// the guidance heuristics operate at).
func planarXY(origin, p Coordinate) (x, y float64) {
	const degToRad = math.Pi / 180
	latRad := origin.Latd() * degToRad
	x = (p.Lond() - origin.Lond()) * degToRad * EarthRadiusMeters * math.Cos(latRad)
	y = (p.Latd() - origin.Latd()) * degToRad * EarthRadiusMeters

	return x, y
}

// PathLength sums the great-circle distance between consecutive points.
func PathLength(points []Coordinate) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}

	return total
}

// TrimToLength returns the prefix of points whose accumulated length does
// not exceed maxMeters, inserting an interpolated final point so the result
// measures exactly maxMeters when the input is longer. Used by the
// length-limited coordinate collector accumulator.
func TrimToLength(points []Coordinate, maxMeters float64) []Coordinate {
	if len(points) == 0 {
		return points
	}

	result := []Coordinate{points[0]}
	accumulated := 0.0
	for i := 1; i < len(points); i++ {
		segment := Distance(points[i-1], points[i])
		if accumulated+segment >= maxMeters {
			remaining := maxMeters - accumulated
			fraction := 0.0
			if segment > 0 {
				fraction = remaining / segment
			}
			result = append(result, interpolate(points[i-1], points[i], fraction))

			return result
		}
		accumulated += segment
		result = append(result, points[i])
	}

	return result
}

func interpolate(a, b Coordinate, fraction float64) Coordinate {
	return Coordinate{
		Lon: a.Lon + int32(float64(b.Lon-a.Lon)*fraction),
		Lat: a.Lat + int32(float64(b.Lat-a.Lat)*fraction),
	}
}

// PolygonAreaPerimeterRatio computes area/perimeter² for a closed ring of
// points (shoelace formula over the planar projection), used by the
// circular-shape rejection in the parallel-geometry test: a ratio
// at or above 0.85/(4π) indicates the shape is a ring (e.g. a throughabout)
// rather than two parallel carriageways.
func PolygonAreaPerimeterRatio(ring []Coordinate) float64 {
	if len(ring) < 3 {
		return 0
	}

	origin := ring[0]
	xs := make([]float64, len(ring))
	ys := make([]float64, len(ring))
	for i, p := range ring {
		xs[i], ys[i] = planarXY(origin, p)
	}

	var area float64
	var perimeter float64
	n := len(ring)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += xs[i]*ys[j] - xs[j]*ys[i]
		dx := xs[j] - xs[i]
		dy := ys[j] - ys[i]
		perimeter += math.Hypot(dx, dy)
	}
	area = math.Abs(area) / 2

	if perimeter == 0 {
		return 0
	}

	return area / (perimeter * perimeter)
}

// CircularShapeThreshold is the area/perimeter² ratio at or above which a
// closed ring is considered circular (0.85/(4π)B).
var CircularShapeThreshold = 0.85 / (4 * math.Pi)
