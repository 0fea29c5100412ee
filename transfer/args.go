package transfer

import (
	"math"
)

// BT1886Args returns the coefficients of the inverse BT.1886 EOTF for a
// display with the given white and black luminance:
//
//	V = (L/a)^(1/2.4) - b
//	a = (Lw^(1/2.4) - Lb^(1/2.4))^2.4
//	b = Lb^(1/2.4) / (Lw^(1/2.4) - Lb^(1/2.4))
//
// The kernel input is L/Lw so that 1.0 encodes to 1.0.
func BT1886Args(white, black float64) Args {
	if white <= 0 {
		return Args{1, 1, 0, 0}
	}
	black = max(0, min(black, white))
	w, b := math.Pow(white, 1/2.4), math.Pow(black, 1/2.4)
	if w == b {
		return Args{1, 1, 0, 0}
	}
	a := math.Pow(w-b, 2.4)
	return Args{1, float32(white / a), 0, float32(b / (w - b))}
}

// PowArgs returns the arguments for the Pow kind given the exponent of
// the EOTF. The kernel needs the exponent of the inverse.
func PowArgs(eotf_exponent float64) Args {
	if eotf_exponent == 0 {
		return Args{1}
	}
	return Args{float32(1 / eotf_exponent)}
}
