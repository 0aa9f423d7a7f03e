// Package keys tracks keyboard state across ticks and turns typed
// characters into kaleidoscope commands.
package keys

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// handle keypresses
const (
	PRESS   = 0x01
	RELEASE = 0x02
	HOLD    = 0x03
)

// A Map holds, for each watched key, whether it was down on the last two
// ticks.
type Map map[ebiten.Key]byte

func NewMap(keys ...ebiten.Key) Map {
	m := make(Map, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}

// State returns the current state of a key
func (km Map) State(k ebiten.Key) byte {
	if _, ok := km[k]; !ok {
		km[k] = 0
	}
	return km[k] & HOLD
}

func (km Map) Released(k ebiten.Key) bool {
	return km.State(k) == RELEASE
}

// Set records one tick of a key's state.
func (km Map) Set(k ebiten.Key, down bool) {
	state := byte(0)
	if down {
		state = 1
	}
	km[k] = ((km[k] & 0x1) << 1) | state
}

// Update polls every watched key.
func (km Map) Update() {
	for k := range km {
		km.Set(k, ebiten.IsKeyPressed(k))
	}
}
