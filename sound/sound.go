// Package sound plays short chimes when the kaleidoscope changes. A voice
// is either synthesized or loaded from numbered wav files.
package sound

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	math "github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"seebs.net/kaleido/errors"
)

// SampleRate is the rate of every tone, 16-bit stereo.
const SampleRate = 48000

// pentatonic steps, in semitones above the base note.
var pentatonic = []int{0, 2, 4, 7, 9, 12, 14, 16}

const (
	baseFreq     = 523.25 // C5
	toneSeconds  = 0.8
	decayPerSec  = 6
	bytesPerTick = 4
)

// A Voice is a set of tones, played by index.
type Voice struct {
	Name  string
	tones [][]byte
}

// Synth builds a voice of n bell-like tones climbing a pentatonic scale.
func Synth(name string, n int) *Voice {
	v := &Voice{Name: name, tones: make([][]byte, n)}
	for i := range v.tones {
		step := pentatonic[i%len(pentatonic)] + 12*(i/len(pentatonic))
		v.tones[i] = chime(baseFreq * math.Pow(2, float32(step)/12))
	}
	return v
}

// chime renders a decaying sine with a quieter octave overtone.
func chime(freq float32) []byte {
	n := int(SampleRate * toneSeconds)
	out := make([]byte, n*bytesPerTick)
	for i := 0; i < n; i++ {
		t := float32(i) / SampleRate
		env := math.Exp(-decayPerSec * t)
		s := math.Sin(2*math.Pi*freq*t)*0.7 + math.Sin(4*math.Pi*freq*t)*0.3
		sample := uint16(int16(s * env * 0.5 * 32767))
		binary.LittleEndian.PutUint16(out[i*4:], sample)
		binary.LittleEndian.PutUint16(out[i*4+2:], sample)
	}
	return out
}

// Load reads the tones <name>1.wav, <name>2.wav, ... from dir. Tones are
// numbered from 1 and must not have gaps.
func Load(dir, name string) (*Voice, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading sound directory")
	}
	files := map[int]string{}
	highest := 0
	for _, e := range entries {
		file := e.Name()
		if e.IsDir() || !strings.HasPrefix(file, name) || filepath.Ext(file) != ".wav" {
			continue
		}
		idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(file, name), ".wav"))
		if err != nil || idx < 1 {
			continue
		}
		files[idx] = filepath.Join(dir, file)
		highest = max(highest, idx)
	}
	if highest == 0 {
		return nil, errors.Configuration("no %s tones in %s", name, dir)
	}
	v := &Voice{Name: name, tones: make([][]byte, highest)}
	for i := range v.tones {
		path, ok := files[i+1]
		if !ok {
			return nil, errors.Configuration("missing tone %s%d.wav", name, i+1)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
		}
		v.tones[i], err = decode(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decoding %s", path)
		}
	}
	return v, nil
}

// decode converts a wav file to PCM at SampleRate.
func decode(raw []byte) ([]byte, error) {
	s, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(s)
}

// NewVoice loads name from dir, or synthesizes it if dir is empty.
func NewVoice(dir, name string) (*Voice, error) {
	if dir == "" {
		return Synth(name, len(pentatonic)), nil
	}
	return Load(dir, name)
}

// Tones is the number of tones in the voice.
func (v *Voice) Tones() int {
	if v == nil {
		return 0
	}
	return len(v.tones)
}

func audioContext() *audio.Context {
	if c := audio.CurrentContext(); c != nil {
		return c
	}
	return audio.NewContext(SampleRate)
}

// Play starts a tone at a volume from 0 to 100. Tone indexes wrap. A nil
// voice is silent.
func (v *Voice) Play(tone, volume int) {
	if v.Tones() == 0 {
		return
	}
	tone %= len(v.tones)
	if tone < 0 {
		tone += len(v.tones)
	}
	p := audioContext().NewPlayerFromBytes(v.tones[tone])
	p.SetVolume(float64(volume) / 100)
	p.Play()
}
