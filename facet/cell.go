package facet

import (
	"math"

	"seebs.net/kaleido/errors"
)

// DefaultFacets is the facet count every sketch uses, and the only count
// for which the tiling closes without gaps.
const DefaultFacets = 6

// Metrics holds the derived sizes of a cell.
type Metrics struct {
	// FacetHeight is the distance from the cell's center to the middle
	// of one rim edge, which is also the height of the facet texture.
	FacetHeight float64
	// CellHeight is the vertical repeat distance between cells in a column.
	CellHeight float64
	// HorizontalOffset is how far the outer rim vertex sits past the
	// flat edge, horizontally.
	HorizontalOffset float64
	// CellWidth is the horizontal repeat distance between columns.
	CellWidth float64
}

// A Cell is one hexagonal kaleidoscope unit. Radius is measured from
// the center to a rim vertex.
type Cell struct {
	Radius     float64
	Facets     int
	FacetAngle float64
	Metrics
}

// CellMetrics computes the derived sizes for a cell of the given radius
// and facet count. The radius must exceed 1; the geometry shaves one pixel
// off the radius so that neighbors overlap instead of leaving a seam.
func CellMetrics(radius float64, facets int) (Metrics, error) {
	if !(radius > 1) || math.IsInf(radius, 0) {
		return Metrics{}, errors.Configuration("cell radius %v must be greater than 1", radius)
	}
	if facets < 3 {
		return Metrics{}, errors.Configuration("a cell needs at least 3 facets, got %d", facets)
	}
	angle := 2 * math.Pi / float64(facets)
	r := radius - 1
	h := r * math.Cos(angle/2)
	a := math.Sqrt(r*r - h*h)
	return Metrics{
		FacetHeight:      h,
		CellHeight:       2 * h,
		HorizontalOffset: a,
		CellWidth:        r + a,
	}, nil
}

// NewCell builds a Cell, computing its metrics once.
func NewCell(radius float64, facets int) (Cell, error) {
	m, err := CellMetrics(radius, facets)
	if err != nil {
		return Cell{}, err
	}
	return Cell{
		Radius:     radius,
		Facets:     facets,
		FacetAngle: 2 * math.Pi / float64(facets),
		Metrics:    m,
	}, nil
}

// TextureSize is the size of the image one facet samples from: the
// radius across, the facet height down.
func (c Cell) TextureSize() (w, h float64) {
	return c.Radius, c.FacetHeight
}

// Plan returns the tiling plan for this cell over a viewport.
func (c Cell) Plan(width, height float64) Plan {
	return NewPlan(width, height, c.CellWidth, c.CellHeight)
}

// Vertices returns this cell's facet fan.
func (c Cell) Vertices() []Vertex {
	return Vertices(c.Radius, c.Facets)
}
