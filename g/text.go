package g

import (
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// A Label is a short overlay message that stays up for a number of
// ticks and then fades out over the last quarter of them.
type Label struct {
	face  font.Face
	size  int
	Text  string
	X, Y  int
	ticks int
	left  int
	col   color.RGBA
}

// NewLabel creates a label using the arcade font at the given size.
func NewLabel(size int, x, y int) (*Label, error) {
	f, err := truetype.Parse(fonts.PressStart2P_ttf)
	if err != nil {
		return nil, err
	}
	l := &Label{size: size, X: x, Y: y, col: color.RGBA{255, 255, 255, 255}}
	l.face = truetype.NewFace(f, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return l, nil
}

// Show displays msg for ticks updates.
func (l *Label) Show(msg string, ticks int) {
	l.Text = msg
	l.ticks = ticks
	l.left = ticks
}

// Tick counts down the display time.
func (l *Label) Tick() {
	if l.left > 0 {
		l.left--
	}
}

// Visible reports whether the label still shows.
func (l *Label) Visible() bool {
	return l.left > 0 && l.Text != ""
}

// Alpha is the label's current opacity.
func (l *Label) Alpha() float32 {
	if !l.Visible() {
		return 0
	}
	fade := l.ticks / 4
	if fade == 0 || l.left > fade {
		return 1
	}
	return float32(l.left) / float32(fade)
}

// Draw renders the label with a drop shadow. scale maps canvas pixels to
// target pixels.
func (l *Label) Draw(target *ebiten.Image, scale float32) {
	if target == nil || !l.Visible() {
		return
	}
	a := l.Alpha()
	x, y := int(float32(l.X)*scale), int(float32(l.Y)*scale)
	shadow := color.RGBA{0, 0, 0, uint8(160 * a)}
	fg := color.RGBA{uint8(float32(l.col.R) * a), uint8(float32(l.col.G) * a), uint8(float32(l.col.B) * a), uint8(255 * a)}
	text.Draw(target, l.Text, l.face, x+2, y+2, shadow)
	text.Draw(target, l.Text, l.face, x, y, fg)
}
