// Package record captures rendered frames and writes them out as a video.
// Frames are JPEG-encoded as they arrive and kept in order; stopping the
// recorder yields a Clip that can be written as an MJPEG AVI.
package record

import (
	"bytes"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/icza/mjpeg"

	"seebs.net/kaleido/errors"
)

// An Option configures a Recorder.
type Option func(*Recorder)

// FPS sets the playback frame rate of clips.
func FPS(n int) Option {
	return func(r *Recorder) {
		if n > 0 {
			r.fps = n
		}
	}
}

// Scale sets the factor frames are shrunk by before encoding.
func Scale(f float64) Option {
	return func(r *Recorder) {
		if f > 0 && f <= 1 {
			r.scale = f
		}
	}
}

// Quality sets the JPEG quality, 1 to 100.
func Quality(q int) Option {
	return func(r *Recorder) {
		if q >= 1 && q <= 100 {
			r.quality = q
		}
	}
}

// A Recorder accumulates encoded frames between Start and Stop.
type Recorder struct {
	fps       int
	scale     float64
	quality   int
	recording bool
	started   time.Time
	w, h      int
	chunks    [][]byte
	buf       bytes.Buffer
}

// New creates an idle recorder.
func New(opts ...Option) *Recorder {
	r := &Recorder{fps: 30, scale: 1, quality: jpeg.DefaultQuality}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start begins a new recording.
func (r *Recorder) Start() error {
	if r.recording {
		return errors.New(errors.ErrCodeRecordingState, "already recording")
	}
	r.recording = true
	r.started = time.Now()
	r.chunks = nil
	r.w, r.h = 0, 0
	return nil
}

// Recording reports whether the recorder is between Start and Stop.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Frames is the number of frames captured so far.
func (r *Recorder) Frames() int {
	return len(r.chunks)
}

// Since reports how long the current recording has been running.
func (r *Recorder) Since() time.Duration {
	if !r.recording {
		return 0
	}
	return time.Since(r.started)
}

// Capture encodes one frame and appends it. Every frame of a recording is
// stored at the size of the first one.
func (r *Recorder) Capture(img image.Image) error {
	if !r.recording {
		return errors.New(errors.ErrCodeRecordingState, "capture while not recording")
	}
	b := img.Bounds()
	if b.Empty() {
		return errors.New(errors.ErrCodeRecordingWrite, "empty frame")
	}
	if r.w == 0 {
		r.w = max(1, int(float64(b.Dx())*r.scale))
		r.h = max(1, int(float64(b.Dy())*r.scale))
	}
	if b.Dx() != r.w || b.Dy() != r.h {
		img = imaging.Resize(img, r.w, r.h, imaging.Linear)
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &jpeg.Options{Quality: r.quality}); err != nil {
		return errors.Wrap(errors.ErrCodeRecordingWrite, err, "encoding frame %d", len(r.chunks))
	}
	r.chunks = append(r.chunks, bytes.Clone(r.buf.Bytes()))
	return nil
}

// Stop ends the recording and returns what it captured. A recording with
// no frames is RECORDING_EMPTY; the recorder is idle afterwards either way.
func (r *Recorder) Stop() (*Clip, error) {
	if !r.recording {
		return nil, errors.New(errors.ErrCodeRecordingState, "stop while not recording")
	}
	r.recording = false
	chunks := r.chunks
	r.chunks = nil
	if len(chunks) == 0 {
		return nil, errors.RecordingEmpty()
	}
	return &Clip{Width: r.w, Height: r.h, FPS: r.fps, Chunks: chunks}, nil
}

// A Clip is a finished recording: JPEG frames in capture order.
type Clip struct {
	Width, Height int
	FPS           int
	Chunks        [][]byte
}

// Frames is the number of frames in the clip.
func (c *Clip) Frames() int {
	return len(c.Chunks)
}

// Duration is the clip's playback length.
func (c *Clip) Duration() time.Duration {
	return time.Duration(len(c.Chunks)) * time.Second / time.Duration(c.FPS)
}

// Size is the total size of the encoded frames.
func (c *Clip) Size() int {
	n := 0
	for _, ch := range c.Chunks {
		n += len(ch)
	}
	return n
}

// WriteAVI writes the clip to path as an MJPEG AVI, creating the
// directory if needed. A partial file is removed on failure.
func (c *Clip) WriteAVI(path string) (err error) {
	if len(c.Chunks) == 0 {
		return errors.RecordingEmpty()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeRecordingWrite, err, "creating %s", dir)
		}
	}
	aw, err := mjpeg.New(path, int32(c.Width), int32(c.Height), int32(c.FPS))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRecordingWrite, err, "creating %s", path)
	}
	defer func() {
		if cerr := aw.Close(); err == nil && cerr != nil {
			err = errors.Wrap(errors.ErrCodeRecordingWrite, cerr, "closing %s", path)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	for i, ch := range c.Chunks {
		if err := aw.AddFrame(ch); err != nil {
			return errors.Wrap(errors.ErrCodeRecordingWrite, err, "writing frame %d to %s", i, path)
		}
	}
	return nil
}
