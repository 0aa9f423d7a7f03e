// Package config describes kaleidoscope variants: the canvas, the cell,
// the textures and which display modes and extras are available.
package config

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"seebs.net/kaleido/capture"
	"seebs.net/kaleido/errors"
	"seebs.net/kaleido/facet"
	"seebs.net/kaleido/g"
	"seebs.net/kaleido/modes"
)

// Textures names the images a variant draws with.
type Textures struct {
	Dir        string   `toml:"dir"`
	Default    string   `toml:"default"`
	Alternates []string `toml:"alternates"`
}

// Camera selects the capture device for the live feed.
type Camera struct {
	Device string `toml:"device"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Record controls the frame recorder.
type Record struct {
	Enabled   bool    `toml:"enabled"`
	Autostart bool    `toml:"autostart"`
	FPS       int     `toml:"fps"`
	Scale     float64 `toml:"scale"`
	Quality   int     `toml:"quality"`
	Dir       string  `toml:"dir"`
}

// Sound controls the chimes played on mode and texture changes.
type Sound struct {
	Enabled bool   `toml:"enabled"`
	Voice   string `toml:"voice"`
	Dir     string `toml:"dir"`
}

// Variant is one kaleidoscope setup.
type Variant struct {
	Name        string   `toml:"name"`
	Title       string   `toml:"title"`
	Width       int      `toml:"width"`
	Height      int      `toml:"height"`
	Radius      float64  `toml:"radius"`
	Facets      int      `toml:"facets"`
	TPS         int      `toml:"tps"`
	Multisample bool     `toml:"multisample"`
	Shape       string   `toml:"shape"`
	Modes       string   `toml:"modes"`
	HUD         bool     `toml:"hud"`
	Textures    Textures `toml:"textures"`
	Camera      Camera   `toml:"camera"`
	Record      Record   `toml:"record"`
	Sound       Sound    `toml:"sound"`
}

// file is the layout of a TOML variants file.
type file struct {
	Variants []Variant `toml:"variant"`
}

const (
	defaultTPS     = 30
	defaultQuality = 90
)

// withDefaults fills in zero fields.
func (v Variant) withDefaults() Variant {
	if v.Title == "" {
		v.Title = v.Name
	}
	if v.Facets == 0 {
		v.Facets = facet.DefaultFacets
	}
	if v.TPS == 0 {
		v.TPS = defaultTPS
	}
	if v.Shape == "" {
		v.Shape = g.Sphere.String()
	}
	if v.Textures.Default == "" {
		v.Textures.Default = g.BuiltinPrefix + "stones"
	}
	if v.Camera.Width == 0 && v.Camera.Height == 0 {
		v.Camera.Width, v.Camera.Height = capture.DefaultWidth, capture.DefaultHeight
	}
	if v.Record.FPS == 0 {
		v.Record.FPS = v.TPS
	}
	if v.Record.Scale == 0 {
		v.Record.Scale = 1
	}
	if v.Record.Quality == 0 {
		v.Record.Quality = defaultQuality
	}
	if v.Record.Dir == "" {
		v.Record.Dir = "."
	}
	if v.Sound.Voice == "" {
		v.Sound.Voice = "chime"
	}
	return v
}

// Validate reports the first problem with a variant as an INVALID_CONFIG
// error.
func (v Variant) Validate() error {
	if v.Name == "" {
		return errors.Configuration("variant has no name")
	}
	if v.Width <= 0 || v.Height <= 0 {
		return errors.Configuration("variant %s: canvas size %dx%d must be positive", v.Name, v.Width, v.Height)
	}
	if v.Facets < 4 || v.Facets%2 != 0 {
		return errors.Configuration("variant %s: facets must be even and at least 4, got %d", v.Name, v.Facets)
	}
	if _, err := v.Cell(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "variant %s", v.Name)
	}
	if v.TPS <= 0 {
		return errors.Configuration("variant %s: tps must be positive, got %d", v.Name, v.TPS)
	}
	if _, ok := g.ParseShape(v.Shape); !ok {
		return errors.Configuration("variant %s: unknown shape %q", v.Name, v.Shape)
	}
	if _, err := v.EnabledModes(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "variant %s", v.Name)
	}
	if _, err := capture.Lookup(v.Camera.Device); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "variant %s", v.Name)
	}
	if v.Camera.Width <= 0 || v.Camera.Height <= 0 {
		return errors.Configuration("variant %s: camera size %dx%d must be positive", v.Name, v.Camera.Width, v.Camera.Height)
	}
	if v.Record.FPS <= 0 {
		return errors.Configuration("variant %s: record fps must be positive", v.Name)
	}
	if v.Record.Scale <= 0 || v.Record.Scale > 1 {
		return errors.Configuration("variant %s: record scale %g outside (0, 1]", v.Name, v.Record.Scale)
	}
	if v.Record.Quality < 1 || v.Record.Quality > 100 {
		return errors.Configuration("variant %s: record quality %d outside 1..100", v.Name, v.Record.Quality)
	}
	return nil
}

// Cell computes the variant's cell geometry.
func (v Variant) Cell() (facet.Cell, error) {
	return facet.NewCell(v.Radius, v.Facets)
}

// ShapeKind returns the parsed shape, Sphere if it does not parse.
func (v Variant) ShapeKind() g.Shape {
	s, _ := g.ParseShape(v.Shape)
	return s
}

// EnabledModes returns the modes the variant's mode list allows, in key
// order. An empty list allows every mode.
func (v Variant) EnabledModes() ([]modes.DisplayMode, error) {
	f, err := modes.ParseList(v.Modes)
	if err != nil {
		return nil, err
	}
	enabled := f.Apply()
	if len(enabled) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMode, "mode list %q enables no modes", v.Modes)
	}
	return enabled, nil
}

// A Set is a collection of variants, looked up by name.
type Set struct {
	byName map[string]Variant
}

// NewSet builds a set from variants; later variants replace earlier ones
// with the same name.
func NewSet(vs ...Variant) *Set {
	s := &Set{byName: make(map[string]Variant, len(vs))}
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Add adds v, replacing any variant of the same name.
func (s *Set) Add(v Variant) {
	s.byName[v.Name] = v
}

// Lookup finds a variant. An unknown name is UNKNOWN_VARIANT.
func (s *Set) Lookup(name string) (Variant, error) {
	v, ok := s.byName[name]
	if !ok {
		return Variant{}, errors.New(errors.ErrCodeUnknownVariant, "no variant named %q (have %s)", name, strings.Join(s.Names(), ", "))
	}
	return v, nil
}

// Names returns the variant names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Variants returns the variants sorted by name.
func (s *Set) Variants() []Variant {
	vs := make([]Variant, 0, len(s.byName))
	for _, n := range s.Names() {
		vs = append(vs, s.byName[n])
	}
	return vs
}

// Decode reads variants from TOML, fills in defaults and validates them.
// Unknown keys are rejected.
func Decode(r io.Reader) ([]Variant, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing variants")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Configuration("unknown keys: %s", strings.Join(keys, ", "))
	}
	vs := make([]Variant, len(f.Variants))
	for i, v := range f.Variants {
		vs[i] = v.withDefaults()
		if err := vs[i].Validate(); err != nil {
			return nil, err
		}
	}
	return vs, nil
}

// Load returns the built-in variants, plus or overridden by the ones in
// path if path is not empty.
func Load(path string) (*Set, error) {
	s := Builtin()
	if path == "" {
		return s, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
	}
	defer f.Close()
	vs, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	for _, v := range vs {
		s.Add(v)
	}
	return s, nil
}
