package config

// builtins are the three stock kaleidoscopes: dogs, trio and six.
var builtins = []Variant{
	{
		Name:   "dogs",
		Title:  "Kaleidoscope",
		Width:  768,
		Height: 768,
		Radius: 300,
		Shape:  "sphere",
		HUD:    true,
		Textures: Textures{
			Default: "builtin:stones",
		},
		Camera: Camera{Device: "testcard"},
	},
	{
		Name:   "trio",
		Title:  "Kaleidoscope: box",
		Width:  900,
		Height: 800,
		Radius: 300,
		Shape:  "box",
		Modes:  "-camera",
		HUD:    true,
		Textures: Textures{
			Default: "builtin:rings",
		},
	},
	{
		Name:   "six",
		Title:  "Kaleidoscope: six",
		Width:  1600,
		Height: 1200,
		Radius: 300,
		Shape:  "box",
		Modes:  "-camera",
		HUD:    true,
		Textures: Textures{
			Default:    "builtin:stones",
			Alternates: []string{"builtin:rings", "builtin:bars", "builtin:checks"},
		},
		Record: Record{Enabled: true, Autostart: true, FPS: 30, Scale: 0.5},
	},
}

// Builtin returns a set holding the built-in variants.
func Builtin() *Set {
	s := NewSet()
	for _, v := range builtins {
		s.Add(v.withDefaults())
	}
	return s
}
