package g

import (
	math "github.com/chewxy/math32"
)

// A PingPong is a scalar that moves by Step every update and reverses
// direction when it reaches Max or drops to zero. The check happens after
// the move, so the value can dip just below zero before turning around.
// It is never clamped.
type PingPong struct {
	Pos  float64
	Step float64
	Max  float64
}

// Update advances the value, returning true if it bounced.
func (p *PingPong) Update() bool {
	p.Pos += p.Step
	if p.Pos >= p.Max || p.Pos <= 0 {
		p.Step *= -1
		return true
	}
	return false
}

// Vec3 is a point or direction in model space. Y points down, Z toward
// the viewer.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Dot returns the dot product.
func (v Vec3) Dot(w Vec3) float32 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Scale returns v*s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Normalize returns v scaled to unit length; the zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := math.Sqrt(v.Dot(v))
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Mat3 is a row-major 3x3 matrix.
type Mat3 [9]float32

// Identity3 yields the identity matrix.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Mul returns m*n.
func (m Mat3) Mul(n Mat3) (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = m[i*3]*n[j] + m[i*3+1]*n[3+j] + m[i*3+2]*n[6+j]
		}
	}
	return r
}

// Apply returns m*v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// RotateX, RotateY and RotateZ build rotations about one axis.
func RotateX(theta float32) Mat3 {
	s, c := math.Sincos(theta)
	return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
}

func RotateY(theta float32) Mat3 {
	s, c := math.Sincos(theta)
	return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
}

func RotateZ(theta float32) Mat3 {
	s, c := math.Sincos(theta)
	return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
}

// Tumble is rotateX(a), then rotateY(ay), then rotateZ(az), composed the
// way a transform stack composes them: the Z rotation applies to the
// model first.
func Tumble(ax, ay, az float32) Mat3 {
	return RotateX(ax).Mul(RotateY(ay)).Mul(RotateZ(az))
}
