package keys

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestFromRune(t *testing.T) {
	tests := []struct {
		in   rune
		want Command
	}{
		{'f', ShowTiles},
		{'F', ShowTiles},
		{'k', ShowSingle},
		{'K', ShowSingle},
		{'t', ShowTexture},
		{'c', ShowCamera},
		{'C', ShowCamera},
		{'m', CycleTexture},
		{'M', CycleTexture},
		{'r', ToggleRecording},
		{' ', TogglePause},
		{'q', None},
		{'x', None},
		{'7', None},
	}
	for _, tt := range tests {
		if got := FromRune(tt.in); got != tt.want {
			t.Errorf("FromRune(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseKeepsOrder(t *testing.T) {
	got := Parse([]rune("xcFmz t"))
	want := []Command{ShowCamera, ShowTiles, CycleTexture, TogglePause, ShowTexture}
	if len(got) != len(want) {
		t.Fatalf("Parse = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Parse[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMapEdges(t *testing.T) {
	m := NewMap(ebiten.KeyQ)
	steps := []struct {
		down     bool
		want     byte
		released bool
	}{
		{true, PRESS, false},
		{true, HOLD, false},
		{false, RELEASE, true},
		{false, 0, false},
	}
	for i, s := range steps {
		m.Set(ebiten.KeyQ, s.down)
		if got := m.State(ebiten.KeyQ); got != s.want {
			t.Errorf("step %d: State = %#x, want %#x", i, got, s.want)
		}
		if m.Released(ebiten.KeyQ) != s.released {
			t.Errorf("step %d: Released = %v", i, m.Released(ebiten.KeyQ))
		}
	}
	if m.State(ebiten.KeyEscape) != 0 {
		t.Errorf("unwatched key has state")
	}
}

func TestCommandNames(t *testing.T) {
	for c := None; c <= Quit; c++ {
		if c.String() == "unknown" {
			t.Errorf("command %d has no name", int(c))
		}
	}
	if Command(99).String() != "unknown" {
		t.Errorf("out of range command has a name")
	}
}
