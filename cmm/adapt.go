package cmm

import (
	"fmt"
)

var _ = fmt.Print

// Luminance describes the range of a display or encoding in cd/m².
type Luminance struct {
	Min   float64 `toml:"min"`
	Max   float64 `toml:"max"`
	White float64 `toml:"white"`
}

var (
	SRGBLuminance         = Luminance{Min: 0.2, Max: 80, White: 80}
	BT1886Luminance       = Luminance{Min: 0.01, Max: 100, White: 100}
	ST2084PQLuminance     = Luminance{Min: 0, Max: 10000, White: 203}
	HLGLuminance          = Luminance{Min: 0.005, Max: 1000, White: 203}
	WindowsSCRGBLuminance = Luminance{Min: 0, Max: 10000, White: 203 / 80.0 * 10000}
)

// Bradford transform matrices (forward and inverse)
var (
	bradford = Matrix{
		{0.8951, 0.2664, -0.1614, 0},
		{-0.7502, 1.7135, 0.0367, 0},
		{0.0389, -0.0685, 1.0296, 0},
	}
	inv_bradford = Matrix{
		{0.9869929, -0.1470543, 0.1599627, 0},
		{0.4323053, 0.5183603, 0.0492912, 0},
		{-0.0085287, 0.0400428, 0.9684867, 0},
	}
)

// XYZ from the LMS space that Oklab is built on
var XYZFromLMS = Matrix{
	{1.22701, -0.5578, 0.281256, 0},
	{-0.0405802, 1.11226, -0.0716767, 0},
	{-0.0763813, -0.421482, 1.58616, 0},
}

// WhiteBalance returns the XYZ transform that maps the luminance range
// from onto the range to, so that the white of from lands on the white of
// to. The offset moves black towards the destination white point w_to.
func WhiteBalance(from, to Luminance, w_to Chromaticity) Matrix {
	a := (from.Max - from.Min) / (to.Max - to.Min) * (to.White - from.Min) / (from.White - from.Min)
	d := max(0, (from.Min-to.Min)/(to.Max-to.Min))
	s := a - d
	w := w_to.XYZ()
	return Matrix{
		{s, 0, 0, d * w[0]},
		{0, s, 0, d * w[1]},
		{0, 0, s, d * w[2]},
	}
}

// BradfordAdjustment constructs a matrix that adapts XYZ values from the
// white point w_from to the white point w_to.
func BradfordAdjustment(w_from, w_to Chromaticity) Matrix {
	src := bradford.ApplyLinear(w_from.XYZ())
	tgt := bradford.ApplyLinear(w_to.XYZ())
	// adapt = invBradford * diag * bradford
	diag := diagonal(tgt[0]/src[0], tgt[1]/src[1], tgt[2]/src[2])
	return inv_bradford.Mul(diag.Mul(bradford))
}

// MatrixFromLMS returns the transform from Oklab LMS to linear RGB in the
// given primaries, scaled for the given luminance range. LMS is relative to
// sRGB white and luminance.
func MatrixFromLMS(p Primaries, l Luminance) Matrix {
	_, mat := p.Matrices()
	if l != SRGBLuminance {
		mat = mat.Mul(WhiteBalance(SRGBLuminance, l, p.WP))
	}
	if p.WP != SRGBPrimaries.WP {
		mat = mat.Mul(BradfordAdjustment(SRGBPrimaries.WP, p.WP))
	}
	return mat.Mul(XYZFromLMS)
}
