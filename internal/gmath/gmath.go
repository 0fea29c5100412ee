// Package gmath provides the float32 shading-language builtins the color
// kernels are written in terms of, so that the CPU kernels produce the same
// values as their WGSL counterparts.
package gmath

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Clamp is clamp(x, lo, hi).
func Clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}

// Sign is sign(x): -1, 0 or 1.
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Smoothstep is the Hermite interpolation smoothstep(edge0, edge1, x).
func Smoothstep(edge0, edge1, x float32) float32 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Mix is mix(a, b, t) for a single component.
func Mix(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// SignedPow is sign(x) * |x|^e.
func SignedPow(x, e float32) float32 {
	return Sign(x) * math32.Pow(math32.Abs(x), e)
}

func Map3(v f32.Vec3, f func(float32) float32) f32.Vec3 {
	return f32.Vec3{f(v[0]), f(v[1]), f(v[2])}
}

func Add2(a, b f32.Vec2) f32.Vec2 { return f32.Vec2{a[0] + b[0], a[1] + b[1]} }
func Sub2(a, b f32.Vec2) f32.Vec2 { return f32.Vec2{a[0] - b[0], a[1] - b[1]} }
func Scale2(a f32.Vec2, s float32) f32.Vec2 {
	return f32.Vec2{a[0] * s, a[1] * s}
}
func Dot2(a, b f32.Vec2) float32 { return a[0]*b[0] + a[1]*b[1] }

// Length2 is length(v).
func Length2(v f32.Vec2) float32 { return math32.Sqrt(Dot2(v, v)) }

// Cross2 is the z component of the 3D cross product of a and b. It is
// positive when b points to the left of a.
func Cross2(a, b f32.Vec2) float32 { return a[0]*b[1] - a[1]*b[0] }

// MulMat3 multiplies a row-major 3x3 matrix by a column vector.
func MulMat3(m *[3][3]float32, v f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MulMat4Point applies a row-major 4x4 matrix to the homogeneous point
// (v, 1) and returns the first three components.
func MulMat4Point(m *f32.Mat4, v f32.Vec3) f32.Vec3 {
	return f32.Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11],
	}
}
