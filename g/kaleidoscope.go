package g

import (
	"github.com/hajimehoshi/ebiten/v2"

	"seebs.net/kaleido/facet"
)

// maxBatchVertices keeps a batch addressable by uint16 indices.
const maxBatchVertices = 1 << 16

// A Kaleidoscope draws facet fans for one cell geometry: either a single
// cell or enough of them to tile the whole target. Cells are batched into
// as few DrawTriangles calls as the index width allows.
type Kaleidoscope struct {
	Cell     facet.Cell
	fan      []facet.Vertex
	fanIx    []uint16
	vertices []ebiten.Vertex
	indices  []uint16
	op       ebiten.DrawTrianglesOptions
}

// NewKaleidoscope prepares the fan for cell.
func NewKaleidoscope(cell facet.Cell) *Kaleidoscope {
	return &Kaleidoscope{
		Cell:  cell,
		fan:   cell.Vertices(),
		fanIx: facet.Indices(cell.Facets, 0),
		op:    ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear},
	}
}

// appendFan adds one cell centered at cx, cy to the batch. scale maps
// canvas pixels to target pixels; srcW and srcH are the size of the source
// region the fan's texture coordinates span.
func (k *Kaleidoscope) appendFan(cx, cy, scale, srcW, srcH float32) {
	base := uint16(len(k.vertices))
	for _, v := range k.fan {
		k.vertices = append(k.vertices, ebiten.Vertex{
			DstX:   (cx + float32(v.X)) * scale,
			DstY:   (cy + float32(v.Y)) * scale,
			SrcX:   float32(v.U) * srcW,
			SrcY:   float32(v.V) * srcH,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		})
	}
	for _, i := range k.fanIx {
		k.indices = append(k.indices, base+i)
	}
}

func (k *Kaleidoscope) flush(target, src *ebiten.Image) {
	if len(k.indices) > 0 && target != nil {
		target.DrawTriangles(k.vertices, k.indices, src, &k.op)
	}
	k.vertices = k.vertices[:0]
	k.indices = k.indices[:0]
}

// DrawCell draws one cell centered at cx, cy in canvas pixels.
func (k *Kaleidoscope) DrawCell(target, src *ebiten.Image, srcW, srcH float32, cx, cy, scale float32) {
	k.appendFan(cx, cy, scale, srcW, srcH)
	k.flush(target, src)
}

// DrawTiled covers a canvas of size w by h with cells, odd columns
// dropped by half a cell.
func (k *Kaleidoscope) DrawTiled(target, src *ebiten.Image, srcW, srcH float32, w, h int, scale float32) {
	k.batchTiled(srcW, srcH, w, h, scale, func() { k.flush(target, src) })
	k.flush(target, src)
}

// batchTiled fills the batch for a tiled draw, calling flush whenever
// another fan would overflow the index range.
func (k *Kaleidoscope) batchTiled(srcW, srcH float32, w, h int, scale float32, flush func()) {
	plan := k.Cell.Plan(float64(w), float64(h))
	plan.Each(func(col, row int, x, y float64) {
		if len(k.vertices)+len(k.fan) > maxBatchVertices {
			flush()
		}
		k.appendFan(float32(x), float32(y), scale, srcW, srcH)
	})
}
