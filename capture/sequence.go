package capture

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"seebs.net/kaleido/errors"
)

// Sequence replays the images in a directory as if they were camera
// frames, looping forever. Frames are cropped to fill the capture size.
type Sequence struct {
	Lock
	Dir string
}

// NewSequence returns a device reading frames from dir.
func NewSequence(dir string) *Sequence {
	return &Sequence{Dir: dir}
}

func (sq *Sequence) Name() string { return "dir:" + sq.Dir }

var frameExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true,
}

func (sq *Sequence) open(w, h int) (Source, error) {
	entries, err := os.ReadDir(sq.Dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !frameExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeCaptureUnavailable, "no frames in %s", sq.Dir)
	}
	sort.Strings(names)
	frames := make([]image.Image, 0, len(names))
	for _, name := range names {
		img, err := imaging.Open(filepath.Join(sq.Dir, name))
		if err != nil {
			return nil, err
		}
		frames = append(frames, imaging.Fill(img, w, h, imaging.Center, imaging.Linear))
	}
	return &sequenceSource{frames: frames}, nil
}

type sequenceSource struct {
	frames []image.Image
}

func (s *sequenceSource) Frame(tick int) (image.Image, error) {
	if len(s.frames) == 0 {
		return nil, errors.New(errors.ErrCodeCaptureStopped, "sequence closed")
	}
	return s.frames[tick%len(s.frames)], nil
}

func (s *sequenceSource) Close() error {
	s.frames = nil
	return nil
}
