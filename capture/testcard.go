package capture

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// TestCard is a synthetic camera: vertical hue bars that drift sideways
// one column per tick, with a brightness ramp from top to bottom.
type TestCard struct {
	Lock
	Bars int
}

// NewTestCard returns a test card with eight bars.
func NewTestCard() *TestCard {
	return &TestCard{Bars: 8}
}

func (tc *TestCard) Name() string { return "testcard" }

func (tc *TestCard) open(w, h int) (Source, error) {
	bars := tc.Bars
	if bars < 1 {
		bars = 1
	}
	return &testCardSource{img: image.NewRGBA(image.Rect(0, 0, w, h)), bars: bars}, nil
}

type testCardSource struct {
	img  *image.RGBA
	bars int
}

func (s *testCardSource) Frame(tick int) (image.Image, error) {
	b := s.img.Bounds()
	w, h := b.Dx(), b.Dy()
	barWidth := (w + s.bars - 1) / s.bars
	for x := 0; x < w; x++ {
		bar := ((x + tick) / barWidth) % s.bars
		hue := 360 * float64(bar) / float64(s.bars)
		for y := 0; y < h; y++ {
			v := 0.35 + 0.65*float64(h-y)/float64(h)
			r, g, bl := colorful.Hsv(hue, 0.8, v).Clamped().RGB255()
			s.img.SetRGBA(x, y, color.RGBA{r, g, bl, 255})
		}
	}
	return s.img, nil
}

func (s *testCardSource) Close() error {
	s.img = nil
	return nil
}
