package g

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"math/rand/v2"
	"path/filepath"
	"strings"

	math "github.com/chewxy/math32"
	"github.com/disintegration/imaging"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"

	"seebs.net/kaleido/errors"
)

// BuiltinPrefix marks texture names that are generated rather than loaded.
const BuiltinPrefix = "builtin:"

// builtinSize is the size generated textures are rendered at.
const builtinSize = 512

// A Texture is a named source image. The GPU copy is made the first time
// Image is called, which must happen while ebiten is running.
type Texture struct {
	Name string
	Src  image.Image
	img  *ebiten.Image
}

// NewTexture wraps an already decoded image.
func NewTexture(name string, src image.Image) *Texture {
	return &Texture{Name: name, Src: src}
}

// Size returns the source image's size.
func (t *Texture) Size() (int, int) {
	b := t.Src.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the ebiten image for the texture.
func (t *Texture) Image() *ebiten.Image {
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.Src)
	}
	return t.img
}

// Dispose releases the GPU copy; the source image stays.
func (t *Texture) Dispose() {
	if t != nil && t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// LoadTexture loads a texture by name. Names with BuiltinPrefix are
// generated; anything else is an image file, relative to dir unless
// absolute.
func LoadTexture(dir, name string) (*Texture, error) {
	if strings.HasPrefix(name, BuiltinPrefix) {
		return BuiltinTexture(strings.TrimPrefix(name, BuiltinPrefix))
	}
	path := name
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, name)
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTextureLoad, err, "loading texture %s", path)
	}
	return NewTexture(name, img), nil
}

// builtinTextures are the generated patterns, keyed by name.
var builtinTextures = map[string]func(*image.RGBA){
	"stones": drawStones,
	"rings":  drawRings,
	"bars":   drawBars,
	"checks": drawChecks,
}

// BuiltinNames lists the generated textures.
func BuiltinNames() []string {
	return []string{"stones", "rings", "bars", "checks"}
}

// BuiltinTexture renders one of the generated patterns.
func BuiltinTexture(name string) (*Texture, error) {
	fn, ok := builtinTextures[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeTextureLoad, "no builtin texture %q", name)
	}
	img := image.NewRGBA(image.Rect(0, 0, builtinSize, builtinSize))
	fn(img)
	return NewTexture(BuiltinPrefix+name, img), nil
}

// drawStones scatters overlapping discs, like the colored glass chips in
// a real kaleidoscope. The seed is fixed so the texture never changes.
func drawStones(img *image.RGBA) {
	p := Palettes["dogs"]
	draw.Draw(img, img.Bounds(), &image.Uniform{p.Color(4)}, image.Point{}, draw.Src)
	rng := rand.New(rand.NewPCG(6, 60))
	w := float32(img.Bounds().Dx())
	for i := 0; i < 90; i++ {
		cx, cy := rng.Float32()*w, rng.Float32()*w
		r := 12 + rng.Float32()*w/8
		col := p.Blend(p.Paint(i), rng.Float64())
		fillDisc(img, cx, cy, r, col)
	}
}

func fillDisc(img *image.RGBA, cx, cy, r float32, col color.Color) {
	b := img.Bounds()
	x0, x1 := int(math.Max(cx-r, 0)), int(math.Min(cx+r, float32(b.Max.X-1)))
	y0, y1 := int(math.Max(cy-r, 0)), int(math.Min(cy+r, float32(b.Max.Y-1)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float32(x)-cx, float32(y)-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, col)
			}
		}
	}
}

// ringValues are the brightness steps of drawRings, outermost first.
var ringValues = []float64{64, 96, 128, 160, 192, 224, 255}

func drawRings(img *image.RGBA) {
	p := Palettes["berry"]
	b := img.Bounds()
	c := float32(b.Dx()) / 2
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dx, dy := float32(x)-c, float32(y)-c
			d := math.Sqrt(dx*dx+dy*dy) / c
			ring := int(d * float32(len(ringValues)))
			if ring >= len(ringValues) {
				ring = len(ringValues) - 1
			}
			v := ringValues[len(ringValues)-1-ring] / 255
			col := p.Blend(p.Paint(ring), float64(d))
			r, g, bl, _ := col.RGBA()
			img.SetRGBA(x, y, color.RGBA{
				uint8(float64(r>>8) * v), uint8(float64(g>>8) * v), uint8(float64(bl>>8) * v), 255,
			})
		}
	}
}

func drawBars(img *image.RGBA) {
	p := Palettes["rainbow"]
	b := img.Bounds()
	bar := b.Dx() / p.Length
	for x := 0; x < b.Dx(); x++ {
		col := p.Color(p.Paint(x / bar))
		for y := 0; y < b.Dy(); y++ {
			img.Set(x, y, col)
		}
	}
}

// checkSize is the edge of one drawChecks square.
const checkSize = 32

func drawChecks(img *image.RGBA) {
	p := Palettes["berry"]
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			cell := (x+y)/checkSize + (x-y+b.Dx())/checkSize
			t := float64(y) / float64(b.Dy())
			img.Set(x, y, p.Blend(p.Paint(cell), t))
		}
	}
}

// A TextureSet is the images a kaleidoscope can show: the default, which
// it starts with, and the alternates the texture-cycle command picks
// from.
type TextureSet struct {
	Default    *Texture
	Alternates []*Texture
	current    *Texture
}

// NewTextureSet builds a set showing def.
func NewTextureSet(def *Texture, alternates ...*Texture) *TextureSet {
	return &TextureSet{Default: def, Alternates: alternates, current: def}
}

// Current returns the texture being shown.
func (ts *TextureSet) Current() *Texture {
	return ts.current
}

// CanCycle reports whether there are alternates to pick from.
func (ts *TextureSet) CanCycle() bool {
	return len(ts.Alternates) > 0
}

// Cycle picks one of the alternates uniformly at random, which may be the
// one already showing, and makes it current.
func (ts *TextureSet) Cycle(rng *rand.Rand) *Texture {
	if !ts.CanCycle() {
		return ts.current
	}
	ts.current = ts.Alternates[rng.IntN(len(ts.Alternates))]
	return ts.current
}

// Dispose releases the GPU copies of every texture.
func (ts *TextureSet) Dispose() {
	ts.Default.Dispose()
	for _, t := range ts.Alternates {
		t.Dispose()
	}
}
