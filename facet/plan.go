package facet

import "math"

// seamOverlap is the extra pixel added per column and per row when laying
// out cells, so antialiased edges overlap rather than showing the
// background through a hairline gap.
const seamOverlap = 1

// A Plan describes how many cells cover a viewport. Columns and Rows are
// floor(size/cellSize)+1; Each visits one more of each, so that the
// half-cells hanging off the right and bottom edges are drawn too.
type Plan struct {
	Columns, Rows         int
	CellWidth, CellHeight float64
}

// NewPlan computes the tiling plan for a viewport. Non-positive cell
// sizes yield an empty plan.
func NewPlan(viewportWidth, viewportHeight, cellWidth, cellHeight float64) Plan {
	p := Plan{CellWidth: cellWidth, CellHeight: cellHeight}
	if !(cellWidth > 0) || !(cellHeight > 0) {
		return p
	}
	p.Columns = int(math.Floor(math.Max(viewportWidth, 0)/cellWidth)) + 1
	p.Rows = int(math.Floor(math.Max(viewportHeight, 0)/cellHeight)) + 1
	return p
}

// PlacementFor returns the offset of the cell at (col, row) from the
// tiling origin. Odd columns drop by half a cell, which is what makes
// hexagons interlock.
func PlacementFor(col, row int, cellWidth, cellHeight float64) (x, y float64) {
	x = float64(col) * cellWidth
	y = float64(row) * cellHeight
	if col%2 != 0 {
		y += cellHeight / 2
	}
	return x, y
}

// Cells reports how many cells Each visits.
func (p Plan) Cells() int {
	if p.Columns == 0 || p.Rows == 0 {
		return 0
	}
	return (p.Columns + 1) * (p.Rows + 1)
}

// Each calls fn with the center of every cell in the plan, in viewport
// coordinates with the origin at the top-left corner, row by row.
func (p Plan) Each(fn func(col, row int, x, y float64)) {
	if p.Columns == 0 || p.Rows == 0 {
		return
	}
	for row := 0; row <= p.Rows; row++ {
		for col := 0; col <= p.Columns; col++ {
			x, y := PlacementFor(col, row, p.CellWidth, p.CellHeight)
			fn(col, row, x+float64(col*seamOverlap), y+float64(row*seamOverlap))
		}
	}
}
