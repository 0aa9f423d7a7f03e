package g

import (
	"image/color"

	math "github.com/chewxy/math32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Shape selects what the source image is wrapped around inside a stone
// cluster.
type Shape int

const (
	Sphere Shape = iota
	Box
)

func (s Shape) String() string {
	switch s {
	case Sphere:
		return "sphere"
	case Box:
		return "box"
	}
	return "unknown"
}

// ParseShape maps a name to a Shape.
func ParseShape(name string) (Shape, bool) {
	switch name {
	case "", "sphere":
		return Sphere, true
	case "box":
		return Box, true
	}
	return Sphere, false
}

const (
	// AngleStep is how far the tumble angle advances per update.
	AngleStep = 0.001
	// OffsetStep is how far the bounce offset moves per update.
	OffsetStep   = 0.75
	initialAngle = 0.5
	sphereRadius = 100
	boxSize      = 200
	// the shape's pivot sits this far from the texture's center
	pivotX, pivotY = 40, 40
)

// mesh is a textured triangle mesh with per-triangle outward normals,
// enough to cull back faces of a convex shape without depth sorting.
type mesh struct {
	pos     []Vec3
	u, v    []float32
	tris    [][3]uint16
	normals []Vec3
}

// extent is the distance from the origin to the farthest vertex.
func (m *mesh) extent() float32 {
	var d float32
	for _, p := range m.pos {
		d = math.Max(d, p.Dot(p))
	}
	return math.Sqrt(d)
}

func (m *mesh) addQuad(a, b, c, d Vec3, normal Vec3) {
	base := uint16(len(m.pos))
	m.pos = append(m.pos, a, b, c, d)
	m.u = append(m.u, 0, 1, 1, 0)
	m.v = append(m.v, 0, 0, 1, 1)
	m.tris = append(m.tris, [3]uint16{base, base + 1, base + 2}, [3]uint16{base, base + 2, base + 3})
	m.normals = append(m.normals, normal, normal)
}

// boxMesh builds a cube with the whole texture on every face.
func boxMesh(size float32) *mesh {
	h := size / 2
	m := &mesh{}
	m.addQuad(Vec3{-h, -h, h}, Vec3{h, -h, h}, Vec3{h, h, h}, Vec3{-h, h, h}, Vec3{0, 0, 1})
	m.addQuad(Vec3{h, -h, -h}, Vec3{-h, -h, -h}, Vec3{-h, h, -h}, Vec3{h, h, -h}, Vec3{0, 0, -1})
	m.addQuad(Vec3{h, -h, h}, Vec3{h, -h, -h}, Vec3{h, h, -h}, Vec3{h, h, h}, Vec3{1, 0, 0})
	m.addQuad(Vec3{-h, -h, -h}, Vec3{-h, -h, h}, Vec3{-h, h, h}, Vec3{-h, h, -h}, Vec3{-1, 0, 0})
	m.addQuad(Vec3{-h, -h, -h}, Vec3{h, -h, -h}, Vec3{h, -h, h}, Vec3{-h, -h, h}, Vec3{0, -1, 0})
	m.addQuad(Vec3{-h, h, h}, Vec3{h, h, h}, Vec3{h, h, -h}, Vec3{-h, h, -h}, Vec3{0, 1, 0})
	return m
}

// sphereMesh builds a UV sphere: the texture wraps once around the
// equator and runs pole to pole.
func sphereMesh(radius float32, detailX, detailY int) *mesh {
	m := &mesh{}
	for j := 0; j <= detailY; j++ {
		v := float32(j) / float32(detailY)
		sinLat, cosLat := math.Sincos(v * math.Pi)
		for i := 0; i <= detailX; i++ {
			u := float32(i) / float32(detailX)
			sinLon, cosLon := math.Sincos(u * 2 * math.Pi)
			m.pos = append(m.pos, Vec3{sinLat * sinLon * radius, -cosLat * radius, sinLat * cosLon * radius})
			m.u = append(m.u, u)
			m.v = append(m.v, v)
		}
	}
	row := detailX + 1
	for j := 0; j < detailY; j++ {
		for i := 0; i < detailX; i++ {
			a := uint16(j*row + i)
			b, c, d := a+1, a+uint16(row)+1, a+uint16(row)
			for _, tri := range [][3]uint16{{a, b, c}, {a, c, d}} {
				centroid := m.pos[tri[0]].Add(m.pos[tri[1]]).Add(m.pos[tri[2]])
				m.tris = append(m.tris, tri)
				m.normals = append(m.normals, centroid.Normalize())
			}
		}
	}
	return m
}

// A StoneCluster is the animated off-screen texture each facet samples:
// a source image wrapped around a slowly tumbling shape over a dark
// background. Angle grows without bound; only trig functions consume it.
type StoneCluster struct {
	Angle    float64
	Offset   PingPong
	W, H     float32
	mesh     *mesh
	shape    Shape
	graphics *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
	op       ebiten.DrawTrianglesOptions
	bg       color.Color
}

// NewStoneCluster creates a cluster rendering into a w by h texture.
func NewStoneCluster(w, h float64, shape Shape) *StoneCluster {
	s := &StoneCluster{
		Angle:  initialAngle,
		Offset: PingPong{Step: OffsetStep, Max: w / 2},
		W:      float32(w),
		H:      float32(h),
		shape:  shape,
		op:     ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear},
		bg:     HSB(10, 10, 10),
	}
	if shape == Box {
		s.mesh = boxMesh(boxSize)
	} else {
		s.mesh = sphereMesh(sphereRadius, 24, 16)
	}
	return s
}

// Shape reports the cluster's shape.
func (s *StoneCluster) Shape() Shape {
	return s.shape
}

// Update advances the tumble angle and the bounce offset by one frame.
func (s *StoneCluster) Update() {
	s.Offset.Update()
	s.Angle += AngleStep
}

// eyeDistance matches a 60 degree vertical field of view, backing off
// when the shape would otherwise reach the eye.
func (s *StoneCluster) eyeDistance(shift Vec3) float32 {
	eye := (s.H / 2) / math.Tan(math.Pi/6)
	reach := 2 * (math.Sqrt(shift.Dot(shift)) + s.mesh.extent())
	return math.Max(eye, reach)
}

// project fills the vertex and index buffers with the visible triangles
// of the shape, in texture pixels, sampling a srcW by srcH source.
func (s *StoneCluster) project(srcW, srcH float32) {
	s.vertices = s.vertices[:0]
	s.indices = s.indices[:0]
	a := float32(s.Angle)
	rot := Tumble(a, a*0.75, a*0.5)
	shift := Vec3{pivotX + float32(s.Offset.Pos), pivotY, 0}
	eyeZ := s.eyeDistance(shift)
	eye := Vec3{0, 0, eyeZ}
	cx, cy := s.W/2, s.H/2

	world := make([]Vec3, len(s.mesh.pos))
	for i, p := range s.mesh.pos {
		world[i] = rot.Apply(p.Add(shift))
	}
	for ti, tri := range s.mesh.tris {
		p0, p1, p2 := world[tri[0]], world[tri[1]], world[tri[2]]
		centroid := p0.Add(p1).Add(p2).Scale(1.0 / 3)
		if rot.Apply(s.mesh.normals[ti]).Dot(eye.Sub(centroid)) <= 0 {
			continue
		}
		if p0.Z >= eyeZ*0.95 || p1.Z >= eyeZ*0.95 || p2.Z >= eyeZ*0.95 {
			continue
		}
		base := uint16(len(s.vertices))
		for k, p := range [3]Vec3{p0, p1, p2} {
			f := eyeZ / (eyeZ - p.Z)
			idx := tri[k]
			s.vertices = append(s.vertices, ebiten.Vertex{
				DstX:   cx + p.X*f,
				DstY:   cy + p.Y*f,
				SrcX:   s.mesh.u[idx] * srcW,
				SrcY:   s.mesh.v[idx] * srcH,
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			})
		}
		s.indices = append(s.indices, base, base+1, base+2)
	}
}

// Graphics renders the current frame, wrapping src around the shape,
// and returns the texture. The texture is reused between frames.
func (s *StoneCluster) Graphics(src *Texture) *ebiten.Image {
	if s.graphics == nil {
		s.graphics = ebiten.NewImage(int(math.Ceil(s.W)), int(math.Ceil(s.H)))
	}
	s.graphics.Fill(s.bg)
	if src == nil {
		return s.graphics
	}
	w, h := src.Size()
	s.project(float32(w), float32(h))
	if len(s.indices) > 0 {
		s.graphics.DrawTriangles(s.vertices, s.indices, src.Image(), &s.op)
	}
	return s.graphics
}

// Dispose releases the texture.
func (s *StoneCluster) Dispose() {
	if s.graphics != nil {
		s.graphics.Deallocate()
		s.graphics = nil
	}
}
