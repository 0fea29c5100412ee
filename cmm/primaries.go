package cmm

import (
	"errors"
	"fmt"
	"strings"
)

var _ = fmt.Print

// Chromaticity is a CIE 1931 xy coordinate.
type Chromaticity struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// XYZ returns the tristimulus value with Y = 1.
func (c Chromaticity) XYZ() Vec3 {
	return Vec3{c.X / c.Y, 1, (1 - c.X - c.Y) / c.Y}
}

type Primaries struct {
	R  Chromaticity `toml:"r"`
	G  Chromaticity `toml:"g"`
	B  Chromaticity `toml:"b"`
	WP Chromaticity `toml:"wp"`
}

var (
	SRGBPrimaries = Primaries{
		R: Chromaticity{0.64, 0.33}, G: Chromaticity{0.3, 0.6}, B: Chromaticity{0.15, 0.06},
		WP: Chromaticity{0.3127, 0.3290},
	}
	PALMPrimaries = Primaries{
		R: Chromaticity{0.67, 0.33}, G: Chromaticity{0.21, 0.71}, B: Chromaticity{0.14, 0.08},
		WP: Chromaticity{0.310, 0.316},
	}
	PALPrimaries = Primaries{
		R: Chromaticity{0.64, 0.33}, G: Chromaticity{0.29, 0.60}, B: Chromaticity{0.15, 0.06},
		WP: Chromaticity{0.3127, 0.3290},
	}
	NTSCPrimaries = Primaries{
		R: Chromaticity{0.630, 0.340}, G: Chromaticity{0.310, 0.595}, B: Chromaticity{0.155, 0.070},
		WP: Chromaticity{0.3127, 0.3290},
	}
	GenericFilmPrimaries = Primaries{
		R: Chromaticity{0.681, 0.319}, G: Chromaticity{0.243, 0.692}, B: Chromaticity{0.145, 0.049},
		WP: Chromaticity{0.310, 0.316},
	}
	BT2020Primaries = Primaries{
		R: Chromaticity{0.708, 0.292}, G: Chromaticity{0.170, 0.797}, B: Chromaticity{0.131, 0.046},
		WP: Chromaticity{0.3127, 0.3290},
	}
	CIE1931XYZPrimaries = Primaries{
		R: Chromaticity{1, 0}, G: Chromaticity{0, 1}, B: Chromaticity{0, 0},
		WP: Chromaticity{1.0 / 3.0, 1.0 / 3.0},
	}
	DCIP3Primaries = Primaries{
		R: Chromaticity{0.680, 0.320}, G: Chromaticity{0.265, 0.690}, B: Chromaticity{0.150, 0.060},
		WP: Chromaticity{0.314, 0.351},
	}
	DisplayP3Primaries = Primaries{
		R: Chromaticity{0.680, 0.320}, G: Chromaticity{0.265, 0.690}, B: Chromaticity{0.150, 0.060},
		WP: Chromaticity{0.3127, 0.3290},
	}
	AdobeRGBPrimaries = Primaries{
		R: Chromaticity{0.64, 0.33}, G: Chromaticity{0.21, 0.71}, B: Chromaticity{0.15, 0.06},
		WP: Chromaticity{0.3127, 0.3290},
	}
)

var ErrUnknownPrimaries = errors.New("unknown primaries")

var named_primaries = map[string]Primaries{
	"srgb":         SRGBPrimaries,
	"pal-m":        PALMPrimaries,
	"pal":          PALPrimaries,
	"ntsc":         NTSCPrimaries,
	"generic-film": GenericFilmPrimaries,
	"bt2020":       BT2020Primaries,
	"cie1931-xyz":  CIE1931XYZPrimaries,
	"dci-p3":       DCIP3Primaries,
	"display-p3":   DisplayP3Primaries,
	"adobe-rgb":    AdobeRGBPrimaries,
}

// PrimariesNames returns the names accepted by NamedPrimaries.
func PrimariesNames() []string {
	return []string{"srgb", "pal-m", "pal", "ntsc", "generic-film", "bt2020", "cie1931-xyz", "dci-p3", "display-p3", "adobe-rgb"}
}

func NamedPrimaries(name string) (Primaries, error) {
	q := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	if p, found := named_primaries[q]; found {
		return p, nil
	}
	return Primaries{}, fmt.Errorf("%w: %q", ErrUnknownPrimaries, name)
}

// Matrices returns the transforms from linear RGB in these primaries to
// CIE XYZ and back. XYZ is scaled so that white has Y = 1.
func (p Primaries) Matrices() (xyz_from_local, local_from_xyz Matrix) {
	w := p.WP.XYZ()
	xr, yr := p.R.X, p.R.Y
	xg, yg := p.G.X, p.G.Y
	xb, yb := p.B.X, p.B.Y
	zr, zg, zb := 1-xr-yr, 1-xg-yg, 1-xb-yb
	// rows of the adjugate of the chromaticity matrix
	srx, sry, srz := yg*zb-zg*yb, zg*xb-xg*zb, xg*yb-yg*xb
	sgx, sgy, sgz := zr*yb-yr*zb, xr*zb-zr*xb, yr*xb-xr*yb
	sbx, sby, sbz := yr*zg-zr*yg, zr*xg-xr*zg, xr*yg-yr*xg
	det := srz + sgz + sbz
	sr := srx*w[0] + sry + srz*w[2]
	sg := sgx*w[0] + sgy + sgz*w[2]
	sb := sbx*w[0] + sby + sbz*w[2]
	srp, sgp, sbp := sr/det, sg/det, sb/det
	xyz_from_local = Matrix{
		{srp * xr, sgp * xg, sbp * xb, 0},
		{srp * yr, sgp * yg, sbp * yb, 0},
		{srp * zr, sgp * zg, sbp * zb, 0},
	}
	local_from_xyz = Matrix{
		{srx / sr, sry / sr, srz / sr, 0},
		{sgx / sg, sgy / sg, sgz / sg, 0},
		{sbx / sb, sby / sb, sbz / sb, 0},
	}
	return
}
