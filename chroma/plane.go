// Package chroma implements the chromaticity diagram overlays: the
// spectral locus (the horseshoe) and the gamut triangle spanned by a set
// of primaries with a marker at its white point.
//
// Both kernels are drawn over a full screen quad. Positions are in the
// display plane, [-1, 1] on both axes with y pointing down.
package chroma

import (
	"fmt"

	"golang.org/x/image/math/f32"

	"github.com/kovidgoyal/colortest/fill"
)

var _ = fmt.Print

// ToXY maps a display plane position to CIE xy. The target shows
// x in [0, 0.8] and y in [0, 0.9] with y growing upwards.
func ToXY(p f32.Vec2) f32.Vec2 {
	return f32.Vec2{(p[0] + 1) * 0.4, (1 - p[1]) * 0.45}
}

// FromXY is the inverse of ToXY.
func FromXY(xy f32.Vec2) f32.Vec2 {
	return f32.Vec2{xy[0]/0.4 - 1, 1 - xy[1]/0.45}
}

func full_screen_corner(index int) f32.Vec2 {
	return fill.Corner(index, fill.FullScreen)
}
