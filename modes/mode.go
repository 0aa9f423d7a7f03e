// Package modes implements the kaleidoscope's display modes. Exactly one
// mode is active at a time; each is a Scene that acquires what it needs in
// Display and gives it back in Hide.
package modes

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"seebs.net/kaleido/errors"
)

// DisplayMode is one of the mutually exclusive ways the kaleidoscope
// is drawn.
type DisplayMode int

const (
	// TileAll fills the canvas with cells.
	TileAll DisplayMode = iota
	// SingleCell draws one cell in the middle of the canvas.
	SingleCell
	// TextureOnly shows the facet texture itself.
	TextureOnly
	// LiveCameraFeed tiles the canvas using camera frames as the texture.
	LiveCameraFeed
)

// All lists every display mode, in key order.
var All = []DisplayMode{TileAll, SingleCell, TextureOnly, LiveCameraFeed}

var modeNames = map[DisplayMode]string{
	TileAll:        "tile",
	SingleCell:     "single",
	TextureOnly:    "texture",
	LiveCameraFeed: "camera",
}

var modeDescriptions = map[DisplayMode]string{
	TileAll:        "canvas filled with kaleidoscopes",
	SingleCell:     "a single kaleidoscope",
	TextureOnly:    "the texture for one facet",
	LiveCameraFeed: "you, inside the kaleidoscope",
}

// Name is the mode's short name, as used in mode lists.
func (m DisplayMode) Name() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return "unknown"
}

func (m DisplayMode) String() string {
	return m.Name()
}

// Description is a human-readable line about the mode.
func (m DisplayMode) Description() string {
	return modeDescriptions[m]
}

// ParseMode maps a short name to a mode.
func ParseMode(name string) (DisplayMode, error) {
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidMode, "unknown display mode %q", name)
}

// Scene represents one display mode in use.
type Scene interface {
	// Mode indicates what mode this scene is for.
	Mode() DisplayMode
	// Display acquires anything the scene needs to render.
	Display() error
	// Hide releases whatever Display acquired. It must be safe to call
	// on a scene that was never displayed.
	Hide() error
	// Tick updates the scene's state by one frame.
	Tick() error
	// Draw renders the scene onto the screen.
	Draw(screen *ebiten.Image) error
}

// Filter defines the set of enabled modes: the whitelist (or all modes
// if no whitelist is present) minus the blacklist.
type Filter struct {
	whitelist map[DisplayMode]struct{}
	blacklist map[DisplayMode]struct{}
}

// Whitelist whitelists the given mode.
func (f *Filter) Whitelist(add DisplayMode) {
	if f.whitelist == nil {
		f.whitelist = map[DisplayMode]struct{}{}
	}
	f.whitelist[add] = struct{}{}
}

// Blacklist blacklists the given mode.
func (f *Filter) Blacklist(remove DisplayMode) {
	if f.blacklist == nil {
		f.blacklist = map[DisplayMode]struct{}{}
	}
	f.blacklist[remove] = struct{}{}
}

// Allows reports whether a mode passes the filter.
func (f *Filter) Allows(m DisplayMode) bool {
	if _, ok := f.blacklist[m]; ok {
		return false
	}
	if len(f.whitelist) == 0 {
		return true
	}
	_, ok := f.whitelist[m]
	return ok
}

// Apply returns the allowed modes, in key order.
func (f *Filter) Apply() (results []DisplayMode) {
	for _, m := range All {
		if f.Allows(m) {
			results = append(results, m)
		}
	}
	return results
}

// ApplyList applies a list in the form +mode,-mode,... Bare modes and
// +mode are whitelisted, -mode is blacklisted.
func (f *Filter) ApplyList(list string) error {
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		black := false
		switch item[0] {
		case '-':
			black, item = true, item[1:]
		case '+':
			item = item[1:]
		}
		m, err := ParseMode(item)
		if err != nil {
			return err
		}
		if black {
			f.Blacklist(m)
		} else {
			f.Whitelist(m)
		}
	}
	return nil
}

// ParseList builds a filter from a mode list.
func ParseList(list string) (*Filter, error) {
	f := &Filter{}
	if err := f.ApplyList(list); err != nil {
		return nil, err
	}
	return f, nil
}
