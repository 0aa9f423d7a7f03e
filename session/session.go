// Package session runs one kaleidoscope: it owns the rendering stage, the
// current display mode, the camera, the recorder and the sound, and turns
// user commands into changes to them.
package session

import (
	"fmt"
	"image"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"

	"seebs.net/kaleido/capture"
	"seebs.net/kaleido/config"
	"seebs.net/kaleido/errors"
	"seebs.net/kaleido/facet"
	"seebs.net/kaleido/g"
	"seebs.net/kaleido/keys"
	"seebs.net/kaleido/logging"
	"seebs.net/kaleido/modes"
	"seebs.net/kaleido/record"
	"seebs.net/kaleido/sound"
)

// fallbackTexture replaces texture files that cannot be loaded.
const fallbackTexture = "stones"

// labelTicks is how long mode and texture announcements stay up.
const labelTicks = 90

// An Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used to pick textures.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithVoice sets the voice used for chimes, overriding the variant's
// sound settings.
func WithVoice(v *sound.Voice) Option {
	return func(s *Session) { s.fixedVoice = v }
}

// A Session is one running kaleidoscope.
type Session struct {
	ID  uuid.UUID
	log *log.Logger

	variant  config.Variant
	cell     facet.Cell
	stage    *modes.Stage
	enabled  []modes.DisplayMode
	scenes   map[modes.DisplayMode]modes.Scene
	scene    modes.Scene
	recorder *record.Recorder
	clips    int
	voice    *sound.Voice
	rng      *rand.Rand
	label    *g.Label
	recLabel *g.Label

	fixedVoice *sound.Voice
	frame      *image.RGBA
	paused     bool
	quit       bool
}

// New creates an unconfigured session.
func New(logger *log.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{ID: uuid.New()}
	for _, o := range opts {
		o(s)
	}
	s.voice = s.fixedVoice
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.log = logger.With("session", s.ID.String()[:8])
	return s
}

// Configure sets the session up for a variant and displays its first
// enabled mode. Configuring again replaces the previous setup, but only
// once the new one is showing; if it cannot be shown the old setup stays.
func (s *Session) Configure(v config.Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	progress := logging.NewProgress(s.log)
	cell, err := v.Cell()
	if err != nil {
		return err
	}
	enabled, err := v.EnabledModes()
	if err != nil {
		return err
	}

	textures := g.NewTextureSet(s.loadTexture(v.Textures.Dir, v.Textures.Default))
	for _, name := range v.Textures.Alternates {
		textures.Alternates = append(textures.Alternates, s.loadTexture(v.Textures.Dir, name))
	}
	tw, th := cell.TextureSize()
	stage := &modes.Stage{
		Ctx:        g.NewContext(v.Width, v.Height, v.Multisample),
		Kal:        g.NewKaleidoscope(cell),
		Stones:     g.NewStoneCluster(tw, th, v.ShapeKind()),
		Textures:   textures,
		Background: g.HSB(0, 0, 100),
		CameraW:    v.Camera.Width,
		CameraH:    v.Camera.Height,
	}
	scenes := make(map[modes.DisplayMode]modes.Scene, len(enabled))
	for _, m := range enabled {
		if m == modes.LiveCameraFeed {
			// validated already
			stage.Camera, _ = capture.Lookup(v.Camera.Device)
		}
		sc, err := modes.NewScene(m, stage)
		if err != nil {
			disposeStage(stage)
			return err
		}
		scenes[m] = sc
	}

	first := scenes[enabled[0]]
	prev := s.scene
	if prev != nil {
		if err := prev.Hide(); err != nil {
			s.log.Warn("hiding scene", "mode", prev.Mode(), "err", err)
		}
	}
	if err := first.Display(); err != nil {
		if herr := first.Hide(); herr != nil {
			s.log.Debug("hiding failed scene", "mode", first.Mode(), "err", herr)
		}
		disposeStage(stage)
		if prev != nil {
			if perr := prev.Display(); perr != nil {
				s.log.Error("restoring scene", "mode", prev.Mode(), "err", perr)
			}
		}
		return err
	}
	s.scene = nil
	if s.stage != nil {
		s.release()
	}
	s.variant, s.cell, s.enabled = v, cell, enabled
	s.stage, s.scenes, s.scene = stage, scenes, first

	if v.HUD {
		if s.label, err = g.NewLabel(16, 12, 28); err != nil {
			s.log.Warn("no HUD font", "err", err)
		}
		if s.recLabel, err = g.NewLabel(12, 12, v.Height-16); err != nil {
			s.log.Warn("no HUD font", "err", err)
		}
	}
	if v.Sound.Enabled && s.voice == nil {
		if s.voice, err = sound.NewVoice(v.Sound.Dir, v.Sound.Voice); err != nil {
			s.log.Warn("sound disabled", "voice", v.Sound.Voice, "err", err)
		}
	}
	if v.Record.Enabled {
		s.recorder = record.New(record.FPS(v.Record.FPS), record.Scale(v.Record.Scale), record.Quality(v.Record.Quality))
		if v.Record.Autostart {
			s.startRecording()
		}
	}
	s.announce(first.Mode().Description())
	progress.Done("configured",
		"variant", v.Name,
		"canvas", fmt.Sprintf("%dx%d", v.Width, v.Height),
		"cells", cell.Plan(float64(v.Width), float64(v.Height)).Cells(),
		"modes", fmt.Sprint(enabled))
	return nil
}

func disposeStage(st *modes.Stage) {
	st.Textures.Dispose()
	st.Stones.Dispose()
	st.Ctx.Dispose()
}

// loadTexture loads a texture, falling back to a builtin one.
func (s *Session) loadTexture(dir, name string) *g.Texture {
	tex, err := g.LoadTexture(dir, name)
	if err == nil {
		return tex
	}
	s.log.Warn("texture unavailable, using builtin", "texture", name, "err", errors.UserMessage(err))
	tex, _ = g.BuiltinTexture(fallbackTexture)
	return tex
}

// Variant returns the configured variant.
func (s *Session) Variant() config.Variant {
	return s.variant
}

// Cell returns the configured cell geometry.
func (s *Session) Cell() facet.Cell {
	return s.cell
}

// Device returns the camera device, nil if the variant has no camera.
func (s *Session) Device() capture.Device {
	if s.stage == nil {
		return nil
	}
	return s.stage.Camera
}

// Texture returns the texture being shown.
func (s *Session) Texture() *g.Texture {
	if s.stage == nil {
		return nil
	}
	return s.stage.Textures.Current()
}

// Enabled reports whether the variant allows a mode.
func (s *Session) Enabled(m modes.DisplayMode) bool {
	for _, e := range s.enabled {
		if e == m {
			return true
		}
	}
	return false
}

// Mode returns the current display mode.
func (s *Session) Mode() modes.DisplayMode {
	if s.scene == nil {
		return modes.TileAll
	}
	return s.scene.Mode()
}

// Paused reports whether animation is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Quitting reports whether the user asked to quit.
func (s *Session) Quitting() bool {
	return s.quit
}

// Recording reports whether frames are being recorded.
func (s *Session) Recording() bool {
	return s.recorder != nil && s.recorder.Recording()
}

// show makes m the current mode. The old scene is always hidden before
// the new one is displayed; if the new one cannot be displayed, the old
// one comes back.
func (s *Session) show(m modes.DisplayMode) error {
	next, ok := s.scenes[m]
	if !ok {
		return errors.New(errors.ErrCodeInvalidMode, "mode %s is not enabled", m)
	}
	prev := s.scene
	if prev == next {
		return nil
	}
	if prev != nil {
		if err := prev.Hide(); err != nil {
			s.log.Warn("hiding scene", "mode", prev.Mode(), "err", err)
		}
	}
	if err := next.Display(); err != nil {
		if herr := next.Hide(); herr != nil {
			s.log.Debug("hiding failed scene", "mode", m, "err", herr)
		}
		if prev != nil {
			if perr := prev.Display(); perr != nil {
				s.log.Error("restoring scene", "mode", prev.Mode(), "err", perr)
			}
		}
		return err
	}
	s.scene = next
	s.log.Debug("mode", "mode", m)
	s.announce(m.Description())
	return nil
}

// SetMode switches display modes. Modes the variant does not enable are
// ignored. If the new mode fails to start the previous mode stays.
func (s *Session) SetMode(m modes.DisplayMode) error {
	if !s.Enabled(m) {
		s.log.Debug("mode not enabled", "mode", m)
		return nil
	}
	if err := s.show(m); err != nil {
		return err
	}
	s.voice.Play(int(m), 70)
	return nil
}

// CycleTexture picks one of the alternate textures at random.
func (s *Session) CycleTexture() {
	if s.stage == nil || !s.stage.Textures.CanCycle() {
		s.log.Debug("no alternate textures")
		return
	}
	tex := s.stage.Textures.Cycle(s.rng)
	s.log.Debug("texture", "texture", tex.Name)
	s.announce(tex.Name)
	s.voice.Play(len(modes.All)+s.rng.IntN(4), 60)
}

func (s *Session) announce(msg string) {
	if s.label != nil {
		s.label.Show(msg, labelTicks)
	}
}

var commandModes = map[keys.Command]modes.DisplayMode{
	keys.ShowTiles:   modes.TileAll,
	keys.ShowSingle:  modes.SingleCell,
	keys.ShowTexture: modes.TextureOnly,
	keys.ShowCamera:  modes.LiveCameraFeed,
}

// Apply carries out commands in order. Failures are logged; they never
// stop the session.
func (s *Session) Apply(cmds []keys.Command) {
	for _, c := range cmds {
		if m, ok := commandModes[c]; ok {
			if err := s.SetMode(m); err != nil {
				s.log.Warn("mode unavailable, staying", "mode", m, "current", s.Mode(), "code", errors.GetCode(err), "err", errors.UserMessage(err))
			}
			continue
		}
		switch c {
		case keys.CycleTexture:
			s.CycleTexture()
		case keys.ToggleRecording:
			s.ToggleRecording()
		case keys.TogglePause:
			s.paused = !s.paused
			s.log.Debug("pause", "paused", s.paused)
		case keys.Quit:
			s.quit = true
		}
	}
}

// Update advances the current scene by one tick.
func (s *Session) Update() {
	if s.scene == nil {
		return
	}
	if s.label != nil {
		s.label.Tick()
	}
	if s.recLabel != nil {
		s.recLabel.Tick()
		if s.Recording() {
			s.recLabel.Show(recordingClock(s.recorder.Since()), 1)
		}
	}
	if s.paused {
		return
	}
	if err := s.scene.Tick(); err != nil {
		s.log.Warn("tick", "mode", s.Mode(), "err", err)
	}
}

// Draw renders the current scene and, while recording, captures the
// result.
func (s *Session) Draw(screen *ebiten.Image) {
	if s.scene == nil {
		return
	}
	if err := s.scene.Draw(screen); err != nil {
		s.log.Warn("draw", "mode", s.Mode(), "err", err)
	}
	if s.label != nil && s.label.Visible() {
		s.label.Draw(screen, 1)
	}
	if s.recLabel != nil && s.recLabel.Visible() {
		s.recLabel.Draw(screen, 1)
	}
	if !s.Recording() || s.paused {
		return
	}
	b := screen.Bounds()
	if s.frame == nil || s.frame.Rect != b {
		s.frame = image.NewRGBA(b)
	}
	screen.ReadPixels(s.frame.Pix)
	s.CaptureFrame(s.frame)
}

// recordingClock formats the running time of a recording as "rec mm:ss".
func recordingClock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("rec %02d:%02d", secs/60, secs%60)
}

// CaptureFrame adds a frame to the recording, if there is one.
func (s *Session) CaptureFrame(img image.Image) {
	if !s.Recording() {
		return
	}
	if err := s.recorder.Capture(img); err != nil {
		s.log.Warn("capture", "err", err)
	}
}

// ToggleRecording starts a recording, or finishes the current one.
func (s *Session) ToggleRecording() {
	if s.recorder == nil {
		s.log.Debug("recording not enabled")
		return
	}
	if s.recorder.Recording() {
		s.finishRecording()
		return
	}
	s.startRecording()
}

func (s *Session) startRecording() {
	if err := s.recorder.Start(); err != nil {
		s.log.Warn("recording", "err", err)
		return
	}
	s.log.Info("recording started")
	s.announce("recording")
}

// finishRecording stops the recorder and writes the clip. It returns the
// file written.
func (s *Session) finishRecording() (string, error) {
	progress := logging.NewProgress(s.log)
	clip, err := s.recorder.Stop()
	if err != nil {
		if errors.Is(err, errors.ErrCodeRecordingEmpty) {
			s.log.Warn("recording stopped with nothing in it")
		} else {
			s.log.Error("stopping recording", "err", err)
		}
		return "", err
	}
	path := filepath.Join(s.variant.Record.Dir, fmt.Sprintf("kaleido-%s-%d.avi", s.ID, s.clips))
	s.clips++
	if err := clip.WriteAVI(path); err != nil {
		s.log.Error("saving recording", "path", path, "err", err)
		return "", err
	}
	progress.Done("recording saved", "path", path, "frames", clip.Frames(), "length", clip.Duration(), "bytes", clip.Size())
	s.announce("saved")
	return path, nil
}

// release hides the scene and frees the stage.
func (s *Session) release() error {
	var err error
	if s.scene != nil {
		err = s.scene.Hide()
		s.scene = nil
	}
	if s.Recording() {
		if _, rerr := s.finishRecording(); err == nil && !errors.Is(rerr, errors.ErrCodeRecordingEmpty) {
			err = rerr
		}
	}
	s.recorder = nil
	if s.stage != nil {
		disposeStage(s.stage)
		s.stage = nil
	}
	s.scenes = nil
	s.label, s.recLabel = nil, nil
	s.voice = s.fixedVoice
	return err
}

// Dispose releases the camera, finishes any recording and frees images.
func (s *Session) Dispose() error {
	err := s.release()
	s.log.Debug("disposed")
	return err
}
