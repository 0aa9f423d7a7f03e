package g

import (
	"math"
	"math/rand/v2"
	"testing"

	"seebs.net/kaleido/facet"
)

func TestPingPongStartsUpward(t *testing.T) {
	p := PingPong{Step: OffsetStep, Max: 150}
	if p.Update() {
		t.Fatalf("bounced on the first step from zero")
	}
	if p.Pos != 0.75 {
		t.Errorf("Pos = %v, want 0.75", p.Pos)
	}
}

func TestPingPongFlipsOncePerCrossing(t *testing.T) {
	const max = 150.0
	p := PingPong{Step: OffsetStep, Max: max}
	flips := 0
	var flipAt []float64
	for i := 0; i < 1200; i++ {
		before := p.Step
		bounced := p.Update()
		if bounced != (p.Step != before) {
			t.Fatalf("update %d: bounced=%v but step went %v -> %v", i, bounced, before, p.Step)
		}
		if bounced {
			flips++
			flipAt = append(flipAt, p.Pos)
			if p.Pos < max && p.Pos > 0 {
				t.Fatalf("flipped inside the range at %v", p.Pos)
			}
		}
	}
	// 200 steps up to 150, 200 back down to 0: one flip per 200 updates.
	if flips != 6 {
		t.Errorf("flips = %d, want 6 (at %v)", flips, flipAt)
	}
	for i := 1; i < len(flipAt); i++ {
		if (flipAt[i] >= max) == (flipAt[i-1] >= max) {
			t.Errorf("consecutive flips at the same boundary: %v then %v", flipAt[i-1], flipAt[i])
		}
	}
}

func TestPingPongLowerBoundIsNotClamped(t *testing.T) {
	p := PingPong{Pos: 0.5, Step: -OffsetStep, Max: 10}
	if !p.Update() {
		t.Fatalf("expected a bounce below zero")
	}
	if p.Pos != -0.25 {
		t.Errorf("Pos = %v, want -0.25 (unclamped)", p.Pos)
	}
	if p.Step != OffsetStep {
		t.Errorf("Step = %v, want %v", p.Step, OffsetStep)
	}
}

func TestTumbleIsRotation(t *testing.T) {
	m := Tumble(0.7, 0.525, 0.35)
	for _, v := range []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {3, -4, 12}} {
		got := m.Apply(v)
		if d := math.Abs(float64(got.Dot(got) - v.Dot(v))); d > 1e-3*float64(v.Dot(v)) {
			t.Errorf("rotation changed length of %v: %v", v, got)
		}
	}
	id := Tumble(0, 0, 0)
	if id != Identity3() {
		t.Errorf("Tumble(0,0,0) = %v, want identity", id)
	}
	// rotateZ applies first: a quarter turn about Z sends X to Y.
	got := Tumble(0, 0, math.Pi/2).Apply(Vec3{1, 0, 0})
	if math.Abs(float64(got.Y-1)) > 1e-6 || math.Abs(float64(got.X)) > 1e-6 {
		t.Errorf("RotateZ(pi/2) * X = %v, want Y", got)
	}
}

func TestStoneClusterUpdate(t *testing.T) {
	s := NewStoneCluster(300, 259, Box)
	for i := 0; i < 10; i++ {
		s.Update()
	}
	if math.Abs(s.Angle-0.51) > 1e-9 {
		t.Errorf("Angle = %v, want 0.51", s.Angle)
	}
	if math.Abs(s.Offset.Pos-7.5) > 1e-9 {
		t.Errorf("Offset = %v, want 7.5", s.Offset.Pos)
	}
	if s.Offset.Max != 150 {
		t.Errorf("Offset.Max = %v, want half the texture width", s.Offset.Max)
	}
}

func TestStoneClusterProjectsVisibleHalf(t *testing.T) {
	for _, shape := range []Shape{Box, Sphere} {
		s := NewStoneCluster(300, 259, shape)
		s.project(512, 512)
		total := len(s.mesh.tris)
		drawn := len(s.indices) / 3
		if drawn == 0 || drawn >= total {
			t.Errorf("%v: drew %d of %d triangles, want some but not all", shape, drawn, total)
		}
		if len(s.vertices) != drawn*3 {
			t.Errorf("%v: %d vertices for %d triangles", shape, len(s.vertices), drawn)
		}
		for _, v := range s.vertices {
			if v.SrcX < 0 || v.SrcX > 512 || v.SrcY < 0 || v.SrcY > 512 {
				t.Fatalf("%v: source coordinate out of range: %+v", shape, v)
			}
		}
	}
}

func TestParseShape(t *testing.T) {
	for name, want := range map[string]Shape{"": Sphere, "sphere": Sphere, "box": Box} {
		got, ok := ParseShape(name)
		if !ok || got != want {
			t.Errorf("ParseShape(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseShape("torus"); ok {
		t.Errorf("ParseShape(torus) succeeded")
	}
}

func TestKaleidoscopeBatches(t *testing.T) {
	cell, err := facet.NewCell(300, 6)
	if err != nil {
		t.Fatal(err)
	}
	k := NewKaleidoscope(cell)
	flushes := 0
	k.batchTiled(300, 259, 1600, 1200, 1, func() { flushes++ })
	plan := cell.Plan(1600, 1200)
	if got, want := len(k.vertices), plan.Cells()*7; got != want {
		t.Errorf("batched %d vertices, want %d", got, want)
	}
	if got, want := len(k.indices), plan.Cells()*18; got != want {
		t.Errorf("batched %d indices, want %d", got, want)
	}
	if flushes != 0 {
		t.Errorf("flushed %d times for a small batch", flushes)
	}
	// the first fan sits at the origin; its rim vertex 1 is radius to the right
	if k.vertices[1].DstX != 300 || k.vertices[1].DstY != 0 {
		t.Errorf("first rim vertex at %v,%v", k.vertices[1].DstX, k.vertices[1].DstY)
	}
	if k.vertices[0].SrcX != 150 || k.vertices[0].SrcY != 259 {
		t.Errorf("center samples %v,%v, want bottom middle", k.vertices[0].SrcX, k.vertices[0].SrcY)
	}
	k.flush(nil, nil)
	if len(k.vertices) != 0 || len(k.indices) != 0 {
		t.Errorf("flush left %d vertices", len(k.vertices))
	}
}

func TestKaleidoscopeSplitsLargeBatches(t *testing.T) {
	cell, err := facet.NewCell(4, 6)
	if err != nil {
		t.Fatal(err)
	}
	k := NewKaleidoscope(cell)
	flushes := 0
	k.batchTiled(4, 3, 4000, 4000, 1, func() {
		flushes++
		if len(k.vertices) > maxBatchVertices {
			t.Fatalf("batch grew to %d vertices", len(k.vertices))
		}
		k.vertices, k.indices = k.vertices[:0], k.indices[:0]
	})
	if flushes == 0 {
		t.Errorf("expected the tiling to need several batches")
	}
}

func TestTextureSetCycle(t *testing.T) {
	def, _ := BuiltinTexture("stones")
	var alts []*Texture
	for _, name := range BuiltinNames()[1:] {
		tex, _ := BuiltinTexture(name)
		alts = append(alts, tex)
	}
	ts := NewTextureSet(def, alts...)
	if ts.Current() != def {
		t.Fatalf("set should start on the default")
	}
	rng := rand.New(rand.NewPCG(1, 2))
	counts := map[*Texture]int{}
	const n = 3000
	for i := 0; i < n; i++ {
		counts[ts.Cycle(rng)]++
	}
	if counts[def] != 0 {
		t.Errorf("cycle picked the default %d times", counts[def])
	}
	for i, a := range alts {
		if c := counts[a]; c < n/3-150 || c > n/3+150 {
			t.Errorf("alternate %d picked %d times of %d", i, c, n)
		}
	}
	empty := NewTextureSet(def)
	if empty.CanCycle() || empty.Cycle(rng) != def {
		t.Errorf("set without alternates should keep the default")
	}
}

func TestBuiltinTextures(t *testing.T) {
	for _, name := range BuiltinNames() {
		tex, err := LoadTexture("", BuiltinPrefix+name)
		if err != nil {
			t.Fatalf("LoadTexture(%s): %v", name, err)
		}
		if w, h := tex.Size(); w != builtinSize || h != builtinSize {
			t.Errorf("%s: size %dx%d", name, w, h)
		}
	}
	if _, err := LoadTexture("", BuiltinPrefix+"plaid"); err == nil {
		t.Errorf("unknown builtin loaded")
	}
	if _, err := LoadTexture(t.TempDir(), "missing.png"); err == nil {
		t.Errorf("missing file loaded")
	}
}

func TestLabelFades(t *testing.T) {
	l := &Label{}
	l.Show("TILE", 8)
	if l.Alpha() != 1 {
		t.Errorf("fresh label alpha = %v", l.Alpha())
	}
	for i := 0; i < 7; i++ {
		l.Tick()
	}
	if a := l.Alpha(); a <= 0 || a >= 1 {
		t.Errorf("label alpha near the end = %v, want partial", a)
	}
	l.Tick()
	if l.Visible() {
		t.Errorf("label still visible after its ticks ran out")
	}
}

func TestStoneClusterOffsetMovesShape(t *testing.T) {
	meanX := func(pos float64) float64 {
		s := NewStoneCluster(300, 259, Box)
		s.Offset.Pos = pos
		s.project(512, 512)
		sum := 0.0
		for _, v := range s.vertices {
			sum += float64(v.DstX)
		}
		return sum / float64(len(s.vertices))
	}
	rest, moved := meanX(0), meanX(100)
	if moved-rest < 20 {
		t.Errorf("offset 100 moved the shape from x=%.1f to x=%.1f", rest, moved)
	}
}
