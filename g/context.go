package g

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Context represents a graphics context, basically providing a cache of
// screen size for now.
type Context struct {
	w, h        int
	fsaa        *ebiten.Image
	fsaaOp      *ebiten.DrawImageOptions
	multisample bool
}

// NewContext creates a new context, corresponding to a window with
// the specified width and height. If multisample is set, it renders
// everything at 2x internally and scales down.
func NewContext(w, h int, multisample bool) *Context {
	ctx := &Context{w: w, h: h, multisample: multisample}
	if multisample {
		ctx.fsaaOp = &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		ctx.fsaaOp.GeoM.Scale(0.5, 0.5)
	}
	return ctx
}

// Size returns the logical size of the canvas.
func (c *Context) Size() (int, int) {
	return c.w, c.h
}

// Render calls fn with the surface to draw on and the scale from logical
// canvas pixels to that surface's pixels.
func (c *Context) Render(screen *ebiten.Image, fn func(target *ebiten.Image, scale float32)) {
	if !c.multisample {
		fn(screen, 1)
		return
	}
	if c.fsaa == nil {
		c.fsaa = ebiten.NewImage(c.w*2, c.h*2)
	}
	c.fsaa.Fill(color.RGBA{0, 0, 0, 0})
	fn(c.fsaa, 2)
	screen.DrawImage(c.fsaa, c.fsaaOp)
}

// Dispose releases the multisample buffer.
func (c *Context) Dispose() {
	if c.fsaa != nil {
		c.fsaa.Deallocate()
		c.fsaa = nil
	}
}
