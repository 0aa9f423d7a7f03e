package facet

import "math"

// A Vertex is one point of a facet fan: X, Y relative to the cell center,
// U, V in texture space, each in [0, 1].
type Vertex struct {
	X, Y float64
	U, V float64
}

// Vertices returns the triangle fan for a cell: the center first, then
// one rim vertex per facet going around. The center samples the middle of
// the texture's bottom edge and the rim samples its top corners, swapping
// corners on every vertex; each facet therefore shows the texture mirrored
// relative to its neighbors, which is what makes a single image read as
// radially symmetric. This only closes cleanly for even facet counts.
func Vertices(radius float64, facets int) []Vertex {
	if facets < 1 {
		return nil
	}
	angle := 2 * math.Pi / float64(facets)
	vs := make([]Vertex, 0, facets+1)
	vs = append(vs, Vertex{X: 0, Y: 0, U: 0.5, V: 1})
	for i := 0; i < facets; i++ {
		s, c := math.Sincos(angle * float64(i))
		vs = append(vs, Vertex{X: c * radius, Y: s * radius, U: float64(i % 2), V: 0})
	}
	return vs
}

// Indices returns the triangle list for the fan from Vertices, offset by
// base: (center, i, i+1) for every facet, with the last facet closing back
// to the first rim vertex.
func Indices(facets int, base uint16) []uint16 {
	ix := make([]uint16, 0, facets*3)
	for i := 1; i <= facets; i++ {
		next := i%facets + 1
		ix = append(ix, base, base+uint16(i), base+uint16(next))
	}
	return ix
}
