package chroma

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"

	"github.com/kovidgoyal/colortest/internal/gmath"
)

var _ = fmt.Print

const (
	locus_start = 440
	locus_end   = 646
	locus_step  = 3

	HorseshoeBlack = 0.005
	HorseshoeWhite = 0.007
)

// XYZToDisplay maps XYZ to linear sRGB
var XYZToDisplay = [3][3]float32{
	{3.2409699, -1.5373832, -0.4986108},
	{-0.9692436, 1.8759675, 0.0415551},
	{0.0556301, -0.2039770, 1.0569715},
}

// piecewise gaussian with different widths on either side of the peak
func g(x, peak, left, right float32) float32 {
	s := right
	if x < peak {
		s = left
	}
	t := (x - peak) / s
	return math32.Exp(-0.5 * t * t)
}

// WavelengthToXYZ approximates the CIE 1931 2° color matching functions
// at the wavelength lambda in nanometers.
func WavelengthToXYZ(lambda float32) f32.Vec3 {
	return f32.Vec3{
		1.056*g(lambda, 599.8, 37.9, 31.0) + 0.362*g(lambda, 442.0, 16.0, 26.7) - 0.065*g(lambda, 501.1, 20.4, 26.2),
		0.821*g(lambda, 568.8, 46.9, 40.5) + 0.286*g(lambda, 530.9, 16.3, 31.1),
		1.217*g(lambda, 437.0, 11.8, 36.0) + 0.681*g(lambda, 459.0, 26.0, 13.8),
	}
}

var locus = sync.OnceValue(func() []f32.Vec2 {
	ans := make([]f32.Vec2, 0, (locus_end-locus_start)/locus_step+1)
	for l := locus_start; l <= locus_end; l += locus_step {
		c := WavelengthToXYZ(float32(l))
		sum := c[0] + c[1] + c[2]
		ans = append(ans, f32.Vec2{c[0] / sum, c[1] / sum})
	}
	return ans
})

// Locus returns the xy chromaticities of the sampled spectral locus,
// ordered by increasing wavelength. The returned slice must not be
// modified.
func Locus() []f32.Vec2 { return locus() }

func segment_distance2(p, a, b f32.Vec2) float32 {
	pa, ba := gmath.Sub2(p, a), gmath.Sub2(b, a)
	h := float32(0)
	if l := gmath.Dot2(ba, ba); l > 0 {
		h = gmath.Clamp(gmath.Dot2(pa, ba)/l, 0, 1)
	}
	d := gmath.Sub2(pa, gmath.Scale2(ba, h))
	return gmath.Dot2(d, d)
}

// HorseshoeDistance is the distance in xy from the spectral locus, including
// the line of purples, for points outside of it. Points inside report
// exactly zero.
func HorseshoeDistance(xy f32.Vec2) float32 {
	pts := Locus()
	outside := false
	min_d := float32(math32.MaxFloat32)
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		if gmath.Cross2(gmath.Sub2(b, a), gmath.Sub2(xy, a)) > 0 {
			outside = true
		}
		min_d = min(min_d, segment_distance2(xy, a, b))
	}
	if !outside {
		return 0
	}
	return math32.Sqrt(min_d)
}

// Horseshoe draws the spectral locus. It has no parameters.
type Horseshoe struct{}

func (Horseshoe) Vertex(index int) f32.Vec2 { return full_screen_corner(index) }

func (Horseshoe) Fragment(p f32.Vec2) f32.Vec4 {
	xy := ToXY(p)
	c := gmath.MulMat3(&XYZToDisplay, f32.Vec3{xy[0], xy[1], 1 - xy[0] - xy[1]})
	c = gmath.Map3(c, func(x float32) float32 { return max(x, 0) })
	if m := max(c[0], c[1], c[2]); m > 0 {
		c = gmath.Map3(c, func(x float32) float32 { return x / m })
	}
	t := gmath.Smoothstep(HorseshoeBlack, HorseshoeWhite, HorseshoeDistance(xy))
	c = gmath.Map3(c, func(x float32) float32 { return gmath.Mix(x, 1, t) })
	return f32.Vec4{c[0], c[1], c[2], 1}
}

func (Horseshoe) String() string { return "chroma.Horseshoe" }
