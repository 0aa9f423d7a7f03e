package keys

import (
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
)

// A Command is something the user asked the kaleidoscope to do.
type Command int

const (
	None Command = iota
	ShowTiles
	ShowSingle
	ShowTexture
	ShowCamera
	CycleTexture
	ToggleRecording
	TogglePause
	Quit
)

var commandNames = [...]string{
	None:            "none",
	ShowTiles:       "tiles",
	ShowSingle:      "single",
	ShowTexture:     "texture",
	ShowCamera:      "camera",
	CycleTexture:    "cycle-texture",
	ToggleRecording: "record",
	TogglePause:     "pause",
	Quit:            "quit",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// FromRune maps a typed character to a command, ignoring case.
func FromRune(r rune) Command {
	switch unicode.ToLower(r) {
	case 'f':
		return ShowTiles
	case 'k':
		return ShowSingle
	case 't':
		return ShowTexture
	case 'c':
		return ShowCamera
	case 'm':
		return CycleTexture
	case 'r':
		return ToggleRecording
	case ' ':
		return TogglePause
	}
	return None
}

// Parse turns typed characters into commands, in order, dropping the
// ones that mean nothing.
func Parse(chars []rune) []Command {
	var cmds []Command
	for _, r := range chars {
		if c := FromRune(r); c != None {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

// A Reader collects one tick's worth of commands from ebiten's input.
type Reader struct {
	keys  Map
	chars []rune
}

// NewReader creates a reader watching the quit keys.
func NewReader() *Reader {
	return &Reader{keys: NewMap(ebiten.KeyQ, ebiten.KeyEscape)}
}

// Read returns the commands typed since the last tick. Quit comes from
// releasing Q or Escape rather than from typed text.
func (r *Reader) Read() []Command {
	r.keys.Update()
	r.chars = ebiten.AppendInputChars(r.chars[:0])
	cmds := Parse(r.chars)
	if r.keys.Released(ebiten.KeyQ) || r.keys.Released(ebiten.KeyEscape) {
		cmds = append(cmds, Quit)
	}
	return cmds
}
