// Package geometry provides the coordinate type, path helpers (length,
// trimming, slope, ring shape), and the spherical bearing/distance
// primitives shared by the intersection generator, the graph walker, and
// the mergeable-road detector. The compressed-geometry store lives in
// package nodegraph.
//
// Coordinates are fixed-point at 1e-6 degree precision, matching the
// extracted network's signed 32-bit microdegree longitude/latitude. Angle
// and bearing arithmetic delegates unit handling to
// github.com/golang/geo/s1.Angle and uses github.com/golang/geo/s2.LatLng
// for the spherical bearing formula.
//
// Great-circle distance and bearing are approximations sufficient for angle
// and parallelism judgments; no geodesic (ellipsoidal) calculation is
// performed, per the module's non-goals.
package geometry
