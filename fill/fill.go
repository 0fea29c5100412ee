// Package fill implements the perceptual gradient fill: an axis aligned
// quad whose four corners carry Oklab colors, bilinearly blended per pixel
// in Oklab, converted to linear light through a caller supplied matrix and
// finally passed through a transfer function.
//
// Two variants exist. The encode variant applies the OETF of the target
// encoding; the decode variant applies an inverse EOTF with arguments.
package fill

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/kovidgoyal/colortest/internal/gmath"
	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

// Bounds of the quad in normalized device coordinates. X2 > X1 and
// Y2 > Y1 is the caller's responsibility.
type Bounds struct {
	X1, Y1, X2, Y2 float32
}

// FullScreen covers the whole [-1, 1] target
var FullScreen = Bounds{-1, -1, 1, 1}

// Corners are Oklab L, a, b plus alpha for corner 0..3. Corner 0 is at
// (X2, Y1), 1 at (X1, Y1), 2 at (X2, Y2) and 3 at (X1, Y2).
type Corners [4]f32.Vec4

// Solid returns corners that all have the same color.
func Solid(c f32.Vec4) Corners { return Corners{c, c, c, c} }

// LabToLMSPrime is the inverse of the second Oklab matrix, mapping Oklab
// to the cube roots of LMS.
var LabToLMSPrime = [3][3]float32{
	{1, 0.3963377774, 0.2158037573},
	{1, -0.1055613458, -0.0638541728},
	{1, -0.0894841775, -1.2914855480},
}

type EncodeParams struct {
	// row-major transform from LMS to linear output RGB
	Matrix   f32.Mat4
	Bounds   Bounds
	Colors   Corners
	Transfer transfer.Kind
}

type DecodeParams struct {
	Matrix   f32.Mat4
	Bounds   Bounds
	Colors   Corners
	Transfer transfer.Kind
	Args     transfer.Args
}

// Corner is the vertex kernel. Only the index modulo 4 matters.
func Corner(index int, b Bounds) f32.Vec2 {
	switch index & 3 {
	case 0:
		return f32.Vec2{b.X2, b.Y1}
	case 1:
		return f32.Vec2{b.X1, b.Y1}
	case 2:
		return f32.Vec2{b.X2, b.Y2}
	default:
		return f32.Vec2{b.X1, b.Y2}
	}
}

// Factors returns the interpolation weights of pos inside b, 0 at X1/Y1
// and 1 at X2/Y2.
func Factors(pos f32.Vec2, b Bounds) (x, y float32) {
	return (pos[0] - b.X1) / (b.X2 - b.X1), (pos[1] - b.Y1) / (b.Y2 - b.Y1)
}

func lerp4(a, b f32.Vec4, t float32) f32.Vec4 {
	// written as t*a + (1-t)*b so that t == 1 and t == 0 are exact
	s := 1 - t
	return f32.Vec4{t*a[0] + s*b[0], t*a[1] + s*b[1], t*a[2] + s*b[2], t*a[3] + s*b[3]}
}

// Blend bilinearly interpolates the corner colors, including alpha, at pos.
func Blend(pos f32.Vec2, b Bounds, colors *Corners) f32.Vec4 {
	x, y := Factors(pos, b)
	bottom := lerp4(colors[0], colors[1], x)
	top := lerp4(colors[2], colors[3], x)
	return lerp4(top, bottom, y)
}

// ToLinear converts an Oklab color to linear light through the LMS
// transform m.
func ToLinear(lab f32.Vec3, m *f32.Mat4) f32.Vec3 {
	lms := gmath.MulMat3(&LabToLMSPrime, lab)
	lms = gmath.Map3(lms, func(x float32) float32 { return x * x * x })
	return gmath.MulMat4Point(m, lms)
}

func shade(pos f32.Vec2, b Bounds, colors *Corners, m *f32.Mat4) (f32.Vec3, float32) {
	c := Blend(pos, b, colors)
	return ToLinear(f32.Vec3{c[0], c[1], c[2]}, m), c[3]
}

func (p *EncodeParams) Vertex(index int) f32.Vec2 { return Corner(index, p.Bounds) }

func (p *EncodeParams) Fragment(pos f32.Vec2) f32.Vec4 {
	c, alpha := shade(pos, p.Bounds, &p.Colors, &p.Matrix)
	c = transfer.Encode(p.Transfer, c)
	return f32.Vec4{c[0], c[1], c[2], alpha}
}

func (p *DecodeParams) Vertex(index int) f32.Vec2 { return Corner(index, p.Bounds) }

func (p *DecodeParams) Fragment(pos f32.Vec2) f32.Vec4 {
	c, alpha := shade(pos, p.Bounds, &p.Colors, &p.Matrix)
	c = transfer.Decode(p.Transfer, p.Args, c)
	return f32.Vec4{c[0], c[1], c[2], alpha}
}

func (p *EncodeParams) String() string {
	return fmt.Sprintf("fill.Encode{%s %v}", p.Transfer, p.Bounds)
}

func (p *DecodeParams) String() string {
	return fmt.Sprintf("fill.Decode{%s %v %v}", p.Transfer, p.Args, p.Bounds)
}
