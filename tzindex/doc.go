// Package tzindex resolves coordinates to IANA timezones by
// point-in-polygon lookup over timezone boundary shapes, accelerated by an
// R-tree over the polygons' bounding boxes. The conditionals tool uses it
// to turn a UTC instant into the local wall clock a restriction's
// opening-hours condition is written against.
package tzindex
