// Package facet computes the geometry of a kaleidoscope cell: a regular
// polygon cut into triangular facets around its center, tiled across a
// viewport in a brick-laid pattern.
//
// Everything here is pure. A Cell is built once from its radius and facet
// count and never changes; the tiling Plan and the facet fan are derived
// from it on demand.
//
// The tiling arithmetic assumes six facets. Other counts produce valid
// fans, but their tilings will overlap or leave gaps.
package facet
