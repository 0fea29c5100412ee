// Package transfer implements the transfer-function formulas used by the
// color kernels to move between linear light and encoded signal values.
//
// All functions operate on float32 like the GPU kernels do. They are
// total: an unknown Kind leaves the input unchanged, and every domain
// restriction is handled by clamping or by mirroring through the origin.
// The clamping policy deliberately differs between curves and between
// directions.
package transfer

import (
	"github.com/chewxy/math32"

	"github.com/kovidgoyal/colortest/internal/gmath"
)

const (
	pq_m1 = 0.1593017578125
	pq_m2 = 78.84375
	pq_c1 = 0.8359375
	pq_c2 = 18.8515625
	pq_c3 = 18.6875

	srgb_threshold = 0.0031308

	ext_srgb_min = -0.6038
	ext_srgb_max = 7.5913

	// sqrt(10)/1000
	log316_threshold = 0.0031622776601683794
)

func clamp01(c Vec3) Vec3 {
	return gmath.Map3(c, func(x float32) float32 { return gmath.Clamp(x, 0, 1) })
}

func srgb(x float32) float32 {
	if x <= srgb_threshold {
		return 12.92 * x
	}
	return 1.055*math32.Pow(x, 1/2.4) - 0.055
}

func pq(x float32) float32 {
	p := math32.Pow(x, pq_m1)
	return math32.Pow((pq_c1+pq_c2*p)/(1+pq_c3*p), pq_m2)
}

func bt1886_oetf(x float32) float32 {
	if x < 0.018 {
		return 4.5 * x
	}
	return 1.099*math32.Pow(x, 0.45) - 0.099
}

func st240(x float32) float32 {
	if x < 0.0228 {
		return 4 * x
	}
	return 1.1115*math32.Pow(x, 0.45) - 0.1115
}

func log100(x float32) float32 {
	if x < 0.01 {
		return 0
	}
	return 1 + math32.Log10(x)/2
}

func log316(x float32) float32 {
	if x < log316_threshold {
		return 0
	}
	return 1 + math32.Log10(x)/2.5
}

func st428(x float32) float32 {
	return math32.Pow(48*x/52.37, 1/2.6)
}

func gamma(e float32) func(float32) float32 {
	return func(x float32) float32 { return math32.Pow(x, e) }
}

// Encode applies the encoding (OETF) direction of kind to the linear color c.
func Encode(kind Kind, c Vec3) Vec3 {
	switch kind {
	case SRGB:
		return gmath.Map3(clamp01(c), srgb)
	case ExtSRGB:
		return gmath.Map3(c, func(x float32) float32 {
			x = gmath.Clamp(x, ext_srgb_min, ext_srgb_max)
			return gmath.Sign(x) * srgb(math32.Abs(x))
		})
	case Linear:
		return c
	case ST2084PQ:
		return gmath.Map3(clamp01(c), pq)
	case BT1886:
		return gmath.Map3(clamp01(c), bt1886_oetf)
	case Gamma22:
		return gmath.Map3(clamp01(c), gamma(1/2.2))
	case Gamma28:
		return gmath.Map3(clamp01(c), gamma(1/2.8))
	case ST240:
		return gmath.Map3(c, st240)
	case Log100:
		return gmath.Map3(clamp01(c), log100)
	case Log316:
		return gmath.Map3(clamp01(c), log316)
	case ST428:
		return gmath.Map3(clamp01(c), st428)
	}
	return c
}

// Decode applies the inverse EOTF of kind to c. sRGB and extended sRGB
// have no entry in this direction and pass c through, as do unknown kinds.
func Decode(kind Kind, args Args, c Vec3) Vec3 {
	switch kind {
	case Linear:
		return c
	case ST2084PQ:
		// the same expression as Encode, the PQ standard defines the
		// encoding direction as the inverse EOTF
		return gmath.Map3(clamp01(c), pq)
	case BT1886:
		return gmath.Map3(clamp01(c), func(x float32) float32 {
			base := max(args[1]*x+args[2], 0)
			return args[0] * (math32.Pow(base, 1/2.4) - args[3])
		})
	case Gamma22:
		return gmath.Map3(c, func(x float32) float32 { return gmath.SignedPow(x, 1/2.2) })
	case Gamma28:
		return gmath.Map3(c, func(x float32) float32 { return gmath.SignedPow(x, 1/2.8) })
	case ST240:
		return gmath.Map3(c, st240)
	case Log100:
		return gmath.Map3(clamp01(c), log100)
	case Log316:
		return gmath.Map3(clamp01(c), log316)
	case ST428:
		return gmath.Map3(c, func(x float32) float32 { return st428(max(x, 0)) })
	case Pow:
		return gmath.Map3(c, func(x float32) float32 { return gmath.SignedPow(x, args[0]) })
	}
	return c
}

// Apply dispatches to Decode with the arguments of s.
func (s Spec) Apply(c Vec3) Vec3 { return Decode(s.Kind, s.Args, c) }
