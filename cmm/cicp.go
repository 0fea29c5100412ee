package cmm

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

var ErrUnsupportedCICP = errors.New("unsupported CICP code point")

// CodingIndependentCodePoints as defined by ITU-T H.273
type CodingIndependentCodePoints struct {
	ColorPrimaries, TransferCharacteristics, MatrixCoefficients, VideoFullRange uint8
}

func (c CodingIndependentCodePoints) String() string {
	return fmt.Sprintf("CICP(%d/%d/%d/%d)", c.ColorPrimaries, c.TransferCharacteristics, c.MatrixCoefficients, c.VideoFullRange)
}

func (c CodingIndependentCodePoints) Primaries() (Primaries, error) {
	switch c.ColorPrimaries {
	case 1:
		return SRGBPrimaries, nil
	case 4:
		return PALMPrimaries, nil
	case 5:
		return PALPrimaries, nil
	case 6, 7:
		return NTSCPrimaries, nil
	case 8:
		return GenericFilmPrimaries, nil
	case 9:
		return BT2020Primaries, nil
	case 10:
		return CIE1931XYZPrimaries, nil
	case 11:
		return DCIP3Primaries, nil
	case 12:
		return DisplayP3Primaries, nil
	}
	return Primaries{}, fmt.Errorf("%w: color primaries %d", ErrUnsupportedCICP, c.ColorPrimaries)
}

func (c CodingIndependentCodePoints) TransferFunction() (TransferFunction, error) {
	k := transfer.Kind(0)
	switch c.TransferCharacteristics {
	case 1, 6, 14, 15:
		k = transfer.BT1886
	case 4:
		k = transfer.Gamma22
	case 5:
		k = transfer.Gamma28
	case 7:
		k = transfer.ST240
	case 8:
		k = transfer.Linear
	case 9:
		k = transfer.Log100
	case 10:
		k = transfer.Log316
	case 13:
		k = transfer.SRGB
	case 16:
		k = transfer.ST2084PQ
	case 17:
		k = transfer.ST428
	default:
		return TransferFunction{}, fmt.Errorf("%w: transfer characteristics %d", ErrUnsupportedCICP, c.TransferCharacteristics)
	}
	return TransferFunction{Kind: k}, nil
}

// FromCICP resolves the primaries and transfer function of an RGB
// encoding. Only full range RGB (matrix coefficients 0) is meaningful here.
func FromCICP(c CodingIndependentCodePoints) (p Primaries, tf TransferFunction, err error) {
	if c.MatrixCoefficients != 0 || c.VideoFullRange != 1 {
		return p, tf, fmt.Errorf("%w: %s is not full range RGB", ErrUnsupportedCICP, c)
	}
	if p, err = c.Primaries(); err != nil {
		return
	}
	tf, err = c.TransferFunction()
	return
}
