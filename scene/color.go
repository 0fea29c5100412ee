package scene

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

var _ = fmt.Print

// ReferenceWhite is the luminance in cd/m² that a Lumen of the same value
// maps to Oklab lightness 1 at.
const ReferenceWhite = 203

// Color is an Oklch color with an absolute luminance. Lightness and Chroma
// are relative to Lumen, which scales the color by the cube root of
// Lumen / ReferenceWhite. Hue is in degrees.
type Color struct {
	Lumen     float32 `toml:"lumen"`
	Lightness float32 `toml:"lightness"`
	Chroma    float32 `toml:"chroma"`
	Hue       float32 `toml:"hue"`
}

func (c Color) String() string {
	return fmt.Sprintf("Color{%g cd/m² L=%g C=%g h=%g°}", c.Lumen, c.Lightness, c.Chroma, c.Hue)
}

// LCh returns lightness, chroma, hue in radians and alpha.
func (c Color) LCh(alpha float32) f32.Vec4 {
	mul := math32.Cbrt(c.Lumen / ReferenceWhite)
	return f32.Vec4{mul * c.Lightness, mul * c.Chroma, c.Hue / 180 * math32.Pi, alpha}
}

// Lab returns the color as Oklab L, a, b plus alpha, the form used by the
// fill kernel corners.
func (c Color) Lab(alpha float32) f32.Vec4 {
	return LChToLab(c.LCh(alpha))
}

func LChToLab(lch f32.Vec4) f32.Vec4 {
	s, co := math32.Sincos(lch[2])
	return f32.Vec4{lch[0], lch[1] * co, lch[1] * s, lch[3]}
}
