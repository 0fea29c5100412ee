package cmm

import (
	"fmt"

	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

// TransferFunction is one of the named curves, or a pure power curve
// when Kind is transfer.Pow.
type TransferFunction struct {
	Kind transfer.Kind
	// Exponent of the EOTF, only used by transfer.Pow
	Exponent float64
}

func (t TransferFunction) String() string {
	if t.Kind == transfer.Pow {
		return fmt.Sprintf("pow(%g)", t.Exponent)
	}
	return t.Kind.String()
}

// DecodeKind is the kernel curve used to render content for a surface
// that declares this transfer function. sRGB surfaces are rendered with
// the pure 2.2 gamma, matching how displays actually decode sRGB.
func (t TransferFunction) DecodeKind() transfer.Kind {
	switch t.Kind {
	case transfer.SRGB, transfer.ExtSRGB:
		return transfer.Gamma22
	}
	return t.Kind
}

// DecodeArgs returns the kernel arguments for the curve, l is the
// luminance the surface is described with.
func (t TransferFunction) DecodeArgs(l Luminance) transfer.Args {
	switch t.Kind {
	case transfer.BT1886:
		return transfer.BT1886Args(l.White, l.Min)
	case transfer.Pow:
		return transfer.PowArgs(t.Exponent)
	}
	return transfer.Args{}
}

// DefaultLuminance is the luminance implied by the curve when a
// description does not carry one.
func (t TransferFunction) DefaultLuminance() Luminance {
	switch t.Kind {
	case transfer.ST2084PQ:
		return ST2084PQLuminance
	case transfer.BT1886:
		return BT1886Luminance
	}
	return SRGBLuminance
}

// Resolve merges an explicit luminance into the default for the curve.
// PQ keeps its fixed 10000 cd/m² span above the minimum.
func (t TransferFunction) Resolve(l *Luminance) Luminance {
	ans := t.DefaultLuminance()
	if l != nil {
		ans.Min, ans.White = l.Min, l.White
		if t.Kind == transfer.ST2084PQ {
			ans.Max = l.Min + 10000
		} else {
			ans.Max = l.Max
		}
	}
	return ans
}
