package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seebs.net/kaleido/errors"
	"seebs.net/kaleido/modes"
)

func TestBuiltinsValidate(t *testing.T) {
	s := Builtin()
	want := map[string][2]int{"dogs": {768, 768}, "trio": {900, 800}, "six": {1600, 1200}}
	for name, size := range want {
		v, err := s.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%s): %v", name, err)
		}
		if err := v.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		if v.Width != size[0] || v.Height != size[1] {
			t.Errorf("%s: canvas %dx%d, want %dx%d", name, v.Width, v.Height, size[0], size[1])
		}
		if v.Facets != 6 {
			t.Errorf("%s: %d facets", name, v.Facets)
		}
	}
	if _, err := s.Lookup("seven"); !errors.Is(err, errors.ErrCodeUnknownVariant) {
		t.Errorf("Lookup(seven) error = %v", err)
	}
}

func TestBuiltinModes(t *testing.T) {
	s := Builtin()
	dogs, _ := s.Lookup("dogs")
	ms, _ := dogs.EnabledModes()
	if len(ms) != len(modes.All) {
		t.Errorf("dogs modes = %v, want all", ms)
	}
	six, _ := s.Lookup("six")
	ms, _ = six.EnabledModes()
	for _, m := range ms {
		if m == modes.LiveCameraFeed {
			t.Errorf("six should not have the camera")
		}
	}
	if len(six.Textures.Alternates) != 3 || !six.Record.Autostart {
		t.Errorf("six: alternates %v, autostart %v", six.Textures.Alternates, six.Record.Autostart)
	}
}

func TestValidate(t *testing.T) {
	base, _ := Builtin().Lookup("dogs")
	tests := []struct {
		name string
		edit func(*Variant)
	}{
		{"radius one", func(v *Variant) { v.Radius = 1 }},
		{"radius zero", func(v *Variant) { v.Radius = 0 }},
		{"odd facets", func(v *Variant) { v.Facets = 5 }},
		{"no width", func(v *Variant) { v.Width = 0 }},
		{"no tps", func(v *Variant) { v.TPS = -1 }},
		{"bad shape", func(v *Variant) { v.Shape = "torus" }},
		{"bad modes", func(v *Variant) { v.Modes = "+mirror" }},
		{"no modes", func(v *Variant) { v.Modes = "-tile,-single,-texture,-camera" }},
		{"bad camera", func(v *Variant) { v.Camera.Device = "usb0" }},
		{"big scale", func(v *Variant) { v.Record.Scale = 1.5 }},
		{"bad quality", func(v *Variant) { v.Record.Quality = 101 }},
		{"no name", func(v *Variant) { v.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base
			tt.edit(&v)
			if err := v.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

const sample = `
[[variant]]
name = "tiny"
width = 200
height = 100
radius = 40
modes = "+tile,+single"

[variant.textures]
default = "builtin:bars"

[[variant]]
name = "dogs"
width = 640
height = 480
radius = 120
`

func TestDecode(t *testing.T) {
	vs, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(vs) != 2 {
		t.Fatalf("got %d variants", len(vs))
	}
	tiny := vs[0]
	if tiny.Title != "tiny" || tiny.TPS != defaultTPS || tiny.Facets != 6 || tiny.Record.FPS != defaultTPS {
		t.Errorf("defaults not applied: %+v", tiny)
	}
	ms, _ := tiny.EnabledModes()
	if len(ms) != 2 {
		t.Errorf("tiny modes = %v", ms)
	}
	if _, err := Decode(strings.NewReader("[[variant]]\nname = \"x\"\nwidth = 10\nheight = 10\nradius = 5\ncolour = 3\n")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown key error = %v", err)
	}
	if _, err := Decode(strings.NewReader("[[variant]]\nname = \"x\"\nwidth = 10\nheight = 10\nradius = 1\n")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("radius 1 error = %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kaleido.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dogs, _ := s.Lookup("dogs")
	if dogs.Width != 640 || dogs.Radius != 120 {
		t.Errorf("dogs not overridden: %dx%d r%g", dogs.Width, dogs.Height, dogs.Radius)
	}
	if _, err := s.Lookup("tiny"); err != nil {
		t.Errorf("tiny missing: %v", err)
	}
	if got := strings.Join(s.Names(), ","); got != "dogs,six,tiny,trio" {
		t.Errorf("Names() = %s", got)
	}
	bad := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(bad, []byte(sample+"colour = 3\n"), 0o644)
	_, err = Load(bad)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), "unknown keys: variant.colour") || !strings.Contains(err.Error(), bad) {
		t.Errorf("Load(unknown key) error = %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("missing file error = %v", err)
	}
}
