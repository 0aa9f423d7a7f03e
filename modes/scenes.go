package modes

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hajimehoshi/ebiten/v2"

	"seebs.net/kaleido/capture"
	"seebs.net/kaleido/errors"
	"seebs.net/kaleido/g"
)

// A Stage is what the scenes of one kaleidoscope share: the canvas, the
// cell renderer, the animated facet texture and the images it wraps, and
// the camera to use for the live feed.
type Stage struct {
	Ctx        *g.Context
	Kal        *g.Kaleidoscope
	Stones     *g.StoneCluster
	Textures   *g.TextureSet
	Background color.Color
	Camera     capture.Device
	CameraW    int
	CameraH    int
}

// NewScene returns the scene for a mode. Every mode in All has one; an
// unknown mode is an INVALID_MODE error.
func NewScene(m DisplayMode, st *Stage) (Scene, error) {
	switch m {
	case TileAll:
		return &tileScene{stoneScene{st}}, nil
	case SingleCell:
		return &singleScene{stoneScene{st}}, nil
	case TextureOnly:
		return &textureScene{stoneScene{st}}, nil
	case LiveCameraFeed:
		return &cameraScene{stage: st}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidMode, "no scene for display mode %d", int(m))
}

// stoneScene is the common part of the modes that animate the stone
// cluster texture.
type stoneScene struct {
	*Stage
}

func (s stoneScene) Display() error { return nil }
func (s stoneScene) Hide() error    { return nil }

func (s stoneScene) Tick() error {
	s.Stones.Update()
	return nil
}

// facetTexture renders this frame's stone texture.
func (s stoneScene) facetTexture() *ebiten.Image {
	return s.Stones.Graphics(s.Textures.Current())
}

type tileScene struct{ stoneScene }

func (s *tileScene) Mode() DisplayMode { return TileAll }

func (s *tileScene) Draw(screen *ebiten.Image) error {
	screen.Fill(s.Background)
	tex := s.facetTexture()
	w, h := s.Ctx.Size()
	s.Ctx.Render(screen, func(t *ebiten.Image, scale float32) {
		s.Kal.DrawTiled(t, tex, s.Stones.W, s.Stones.H, w, h, scale)
	})
	return nil
}

type singleScene struct{ stoneScene }

func (s *singleScene) Mode() DisplayMode { return SingleCell }

func (s *singleScene) Draw(screen *ebiten.Image) error {
	screen.Fill(s.Background)
	tex := s.facetTexture()
	w, h := s.Ctx.Size()
	s.Ctx.Render(screen, func(t *ebiten.Image, scale float32) {
		s.Kal.DrawCell(t, tex, s.Stones.W, s.Stones.H, float32(w)/2, float32(h)/2, scale)
	})
	return nil
}

type textureScene struct{ stoneScene }

func (s *textureScene) Mode() DisplayMode { return TextureOnly }

func (s *textureScene) Draw(screen *ebiten.Image) error {
	screen.Fill(s.Background)
	tex := s.facetTexture()
	w, h := s.Ctx.Size()
	s.Ctx.Render(screen, func(t *ebiten.Image, scale float32) {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(w)/2-float64(s.Stones.W)/2, float64(h)/2-float64(s.Stones.H)/2)
		op.GeoM.Scale(float64(scale), float64(scale))
		t.DrawImage(tex, op)
	})
	return nil
}

// cameraScene tiles the canvas with live camera frames. The stream is
// owned by the scene from Display until Hide.
type cameraScene struct {
	stage  *Stage
	stream *capture.Stream
	frame  image.Image
	buf    *image.RGBA
	img    *ebiten.Image
}

func (s *cameraScene) Mode() DisplayMode { return LiveCameraFeed }

func (s *cameraScene) Display() error {
	if s.stream.Active() {
		return nil
	}
	stream, err := capture.Start(s.stage.Camera, s.stage.CameraW, s.stage.CameraH)
	if err != nil {
		return err
	}
	s.stream = stream
	return nil
}

func (s *cameraScene) Hide() error {
	if s.stream == nil {
		return nil
	}
	err := s.stream.Stop()
	s.stream = nil
	s.frame = nil
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	return err
}

func (s *cameraScene) Tick() error {
	if !s.stream.Active() {
		return errors.New(errors.ErrCodeCaptureStopped, "camera scene ticked without a stream")
	}
	frame, err := s.stream.Frame()
	if err != nil {
		return err
	}
	s.frame = frame
	return nil
}

// upload copies the latest frame into the GPU image.
func (s *cameraScene) upload() {
	b := s.frame.Bounds()
	if s.buf == nil || s.buf.Rect.Dx() != b.Dx() || s.buf.Rect.Dy() != b.Dy() {
		s.buf = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(s.buf, s.buf.Rect, s.frame, b.Min, draw.Src)
	if s.img != nil {
		if w, h := s.img.Bounds().Dx(), s.img.Bounds().Dy(); w != b.Dx() || h != b.Dy() {
			s.img.Deallocate()
			s.img = nil
		}
	}
	if s.img == nil {
		s.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	s.img.WritePixels(s.buf.Pix)
}

func (s *cameraScene) Draw(screen *ebiten.Image) error {
	screen.Fill(s.stage.Background)
	if s.frame == nil {
		return nil
	}
	s.upload()
	b := s.frame.Bounds()
	w, h := s.stage.Ctx.Size()
	s.stage.Ctx.Render(screen, func(t *ebiten.Image, scale float32) {
		s.stage.Kal.DrawTiled(t, s.img, float32(b.Dx()), float32(b.Dy()), w, h, scale)
	})
	return nil
}
