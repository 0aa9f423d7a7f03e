// Package capture provides live video sources for the camera display mode.
//
// A Device is opened by Start, which returns the Stream that owns it. A
// device may be owned by one stream at a time; stopping the stream stops
// all of its tracks and frees the device for the next owner.
package capture

import (
	"image"
	"strings"
	"sync"

	"seebs.net/kaleido/errors"
)

// DefaultWidth and DefaultHeight are the capture size the sketches ask for.
const (
	DefaultWidth  = 320
	DefaultHeight = 240
)

// A Source produces frames for an open device.
type Source interface {
	// Frame returns the frame for the given tick. The image may be
	// reused by the next call.
	Frame(tick int) (image.Image, error)
	Close() error
}

// A Device can be opened into a Source. Implementations embed a Lock to
// get exclusive ownership and track accounting.
type Device interface {
	Name() string
	open(w, h int) (Source, error)
	lock() *Lock
}

// Lock records whether a device is owned, and how many of its tracks
// are live.
type Lock struct {
	mu     sync.Mutex
	owned  bool
	active int
}

func (l *Lock) lock() *Lock { return l }

// ActiveTracks reports how many tracks of the device are still running.
func (l *Lock) ActiveTracks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// ActiveTracks reports how many tracks of dev are running; zero for a nil
// device.
func ActiveTracks(dev Device) int {
	if dev == nil {
		return 0
	}
	return dev.lock().ActiveTracks()
}

// A Track is one media track of a stream; cameras have a single video track.
type Track struct {
	Kind string
	lock *Lock
	live bool
}

// Live reports whether the track is still running.
func (t *Track) Live() bool {
	t.lock.mu.Lock()
	defer t.lock.mu.Unlock()
	return t.live
}

func (t *Track) stop() {
	t.lock.mu.Lock()
	defer t.lock.mu.Unlock()
	if t.live {
		t.live = false
		t.lock.active--
	}
}

// Stream is the handle for an open device.
type Stream struct {
	dev     Device
	src     Source
	tracks  []*Track
	w, h    int
	tick    int
	stopped bool
}

// Start opens dev at the requested size and returns the stream that owns
// it. It fails with CAPTURE_BUSY if another stream holds the device.
func Start(dev Device, w, h int) (*Stream, error) {
	if dev == nil {
		return nil, errors.New(errors.ErrCodeCaptureUnavailable, "no capture device configured")
	}
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	l := dev.lock()
	l.mu.Lock()
	if l.owned {
		l.mu.Unlock()
		return nil, errors.New(errors.ErrCodeCaptureBusy, "device %q is already capturing", dev.Name())
	}
	l.owned = true
	l.mu.Unlock()

	src, err := dev.open(w, h)
	if err != nil {
		l.mu.Lock()
		l.owned = false
		l.mu.Unlock()
		return nil, errors.Wrap(errors.ErrCodeCaptureUnavailable, err, "opening %q", dev.Name())
	}
	t := &Track{Kind: "video", lock: l, live: true}
	l.mu.Lock()
	l.active++
	l.mu.Unlock()
	return &Stream{dev: dev, src: src, tracks: []*Track{t}, w: w, h: h}, nil
}

// Size reports the frame size.
func (s *Stream) Size() (int, int) {
	return s.w, s.h
}

// Tracks returns the stream's tracks.
func (s *Stream) Tracks() []*Track {
	return s.tracks
}

// Active reports whether the stream has not been stopped.
func (s *Stream) Active() bool {
	return s != nil && !s.stopped
}

// Frame advances the stream by one tick and returns the new frame.
func (s *Stream) Frame() (image.Image, error) {
	if !s.Active() {
		return nil, errors.New(errors.ErrCodeCaptureStopped, "frame requested from a stopped stream")
	}
	img, err := s.src.Frame(s.tick)
	s.tick++
	return img, err
}

// Stop stops every track and releases the device. Stopping twice is a no-op.
func (s *Stream) Stop() error {
	if !s.Active() {
		return nil
	}
	s.stopped = true
	for _, t := range s.tracks {
		t.stop()
	}
	err := s.src.Close()
	l := s.dev.lock()
	l.mu.Lock()
	l.owned = false
	l.mu.Unlock()
	return err
}

// Lookup resolves a device name: "testcard" or "dir:<path>".
func Lookup(name string) (Device, error) {
	switch {
	case name == "" || name == "testcard":
		return NewTestCard(), nil
	case strings.HasPrefix(name, "dir:"):
		dir := strings.TrimPrefix(name, "dir:")
		if dir == "" {
			return nil, errors.Configuration("capture device %q needs a directory", name)
		}
		return NewSequence(dir), nil
	}
	return nil, errors.Configuration("unknown capture device %q", name)
}
