package colortest

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"time"

	"github.com/kettek/apng"
)

var _ = fmt.Print

type Frame struct {
	Image image.Image `json:"-"`
	Delay time.Duration
}

// Sequence is a series of rendered test patterns shown one after the
// other, written as an animated PNG.
type Sequence struct {
	Frames    []*Frame
	LoopCount uint // 0 means loop forever, 1 means loop once, ...
}

func (self *Sequence) Add(img image.Image, delay time.Duration) {
	self.Frames = append(self.Frames, &Frame{Image: img, Delay: delay})
}

// converts a time.Duration to a numerator and denominator of type uint16.
// It finds the best rational approximation of the duration in seconds.
func as_fraction(d time.Duration) (num, den uint16) {
	if d <= 0 {
		return 0, 1
	}
	val := d.Seconds()

	// Use continued fractions to find the best rational approximation,
	// keeping the numerator and denominator within uint16 bounds.
	bestNum, bestDen := uint16(0), uint16(1)
	bestError := math.Abs(val)

	var h, k [3]int64
	h[0], k[0] = 0, 1
	h[1], k[1] = 1, 0

	f := val

	for i := 2; i < 100; i++ {
		a := int64(f)
		h[2] = a*h[1] + h[0]
		k[2] = a*k[1] + k[0]
		if h[2] > math.MaxUint16 || k[2] > math.MaxUint16 {
			break
		}
		numConv, denConv := uint16(h[2]), uint16(k[2])
		if currentError := math.Abs(val - float64(numConv)/float64(denConv)); currentError < bestError {
			bestError, bestNum, bestDen = currentError, numConv, denConv
		}
		if f-float64(a) == 0.0 {
			break
		}
		f = 1.0 / (f - float64(a))
		h[0], h[1] = h[1], h[2]
		k[0], k[1] = k[1], k[2]
	}
	return bestNum, bestDen
}

func (self *Sequence) as_apng() (ans apng.APNG, err error) {
	ans.LoopCount = self.LoopCount
	for _, f := range self.Frames {
		img, err := full_depth(f.Image)
		if err != nil {
			return ans, err
		}
		// every frame is a complete pattern that replaces the previous one
		d := apng.Frame{DisposeOp: apng.DISPOSE_OP_BACKGROUND, BlendOp: apng.BLEND_OP_SOURCE, Image: img}
		d.DelayNumerator, d.DelayDenominator = as_fraction(f.Delay)
		ans.Frames = append(ans.Frames, d)
	}
	return
}

// EncodeAsPNG writes the sequence as an animated PNG, or as a plain PNG
// if it has a single frame.
func (self *Sequence) EncodeAsPNG(w io.Writer) error {
	switch len(self.Frames) {
	case 0:
		return fmt.Errorf("cannot encode an empty sequence")
	case 1:
		return Encode(w, self.Frames[0].Image, PNG)
	}
	a, err := self.as_apng()
	if err != nil {
		return err
	}
	return apng.Encode(w, a)
}

// Save writes the sequence to path as a PNG whatever its extension.
func (self *Sequence) Save(path string) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err == nil {
			Logger().Info("saved sequence", "path", path, "frames", len(self.Frames))
		}
	}()
	return self.EncodeAsPNG(out)
}
