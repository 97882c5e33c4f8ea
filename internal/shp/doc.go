// Package shp writes the ESRI Shapefile triple (.shp, .shx, .dbf) for
// polyline output. It covers exactly what the components tool emits —
// single-part 2D polylines with a numeric id attribute — not the full
// shapefile format.
package shp
