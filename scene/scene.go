// Package scene describes the calibrated test scenes and expands them into
// fill kernel draws for a given output color description.
package scene

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/image/math/f32"

	"github.com/kovidgoyal/colortest"
	"github.com/kovidgoyal/colortest/chroma"
	"github.com/kovidgoyal/colortest/cmm"
	"github.com/kovidgoyal/colortest/fill"
	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

// Target is a resolved color description: everything a fill kernel needs
// besides its geometry and colors.
type Target struct {
	Primaries cmm.Primaries
	Transfer  cmm.TransferFunction
	Luminance cmm.Luminance
	Matrix    f32.Mat4
}

// Resolve computes the output matrix and curve of the description.
func (d Description) Resolve() (t Target, err error) {
	switch d.Type {
	case None:
		t.Primaries, t.Transfer, t.Luminance = cmm.SRGBPrimaries, cmm.TransferFunction{Kind: transfer.SRGB}, cmm.SRGBLuminance
	case ScRGB:
		t.Primaries, t.Transfer, t.Luminance = cmm.SRGBPrimaries, cmm.TransferFunction{Kind: transfer.Linear}, cmm.WindowsSCRGBLuminance
	case Parametric:
		switch {
		case d.CustomPrimaries != nil:
			t.Primaries = *d.CustomPrimaries
		case d.Primaries == "":
			t.Primaries = cmm.SRGBPrimaries
		default:
			if t.Primaries, err = cmm.NamedPrimaries(d.Primaries); err != nil {
				return
			}
		}
		if !d.Transfer.Known() {
			return t, fmt.Errorf("%w: %d", transfer.ErrUnknownKind, uint32(d.Transfer))
		}
		t.Transfer = cmm.TransferFunction{Kind: d.Transfer, Exponent: d.Exponent}
		if d.Transfer == transfer.Pow && !(d.Exponent > 0) {
			return t, fmt.Errorf("the pow transfer function needs a positive exponent, not %g", d.Exponent)
		}
		t.Luminance = t.Transfer.Resolve(d.Luminance)
	default:
		return t, fmt.Errorf("%w: %d", ErrUnknownDescription, int(d.Type))
	}
	t.Matrix = cmm.MatrixFromLMS(t.Primaries, t.Luminance).Mat4()
	return
}

// Fill returns the decode fill kernel for the quad b with Oklab corners.
func (t *Target) Fill(b fill.Bounds, colors fill.Corners) *fill.DecodeParams {
	return &fill.DecodeParams{
		Matrix:   t.Matrix,
		Bounds:   b,
		Colors:   colors,
		Transfer: t.Transfer.DecodeKind(),
		Args:     t.Transfer.DecodeArgs(t.Luminance),
	}
}

// Draws is an expanded scene. Main covers the whole output, Left is drawn
// afterwards on the left half of it, the way a compositor stacks a half
// width translucent surface on top of the main one.
type Draws struct {
	Main []colortest.Kernel
	Left []colortest.Kernel
}

// Expand turns the scene of the given kind into fill draws.
func (c *Config) Expand(kind Kind, t *Target) (ans Draws, err error) {
	lab := func(x Color) f32.Vec4 { return x.Lab(1) }
	add := func(b fill.Bounds, colors fill.Corners) {
		ans.Main = append(ans.Main, t.Fill(b, colors))
	}
	switch kind {
	case Fill:
		add(fill.FullScreen, fill.Solid(lab(c.Fill)))
	case LeftRight:
		l, r := lab(c.LeftRight[0]), lab(c.LeftRight[1])
		add(fill.FullScreen, fill.Corners{r, l, r, l})
	case TopBottom:
		top, bottom := lab(c.TopBottom[0]), lab(c.TopBottom[1])
		add(fill.FullScreen, fill.Corners{top, top, bottom, bottom})
	case Four:
		add(fill.FullScreen, fill.Corners{lab(c.FourCorners[0]), lab(c.FourCorners[1]), lab(c.FourCorners[2]), lab(c.FourCorners[3])})
	case CenterBox:
		size := c.CenterBoxSize / 100
		add(fill.FullScreen, fill.Solid(lab(c.CenterBox[0])))
		add(fill.Bounds{X1: -size, Y1: -size, X2: size, Y2: size}, fill.Solid(lab(c.CenterBox[1])))
	case Grid:
		add(fill.FullScreen, fill.Solid(lab(c.Grid[0])))
		c1 := fill.Solid(lab(c.Grid[1]))
		height, width := 2/float32(c.GridRows), 2/float32(c.GridCols)
		for row := range c.GridRows {
			y1 := -1 + height*float32(row)
			for col := range c.GridCols {
				if (row+col)%2 == 0 {
					continue
				}
				x1 := -1 + width*float32(col)
				add(fill.Bounds{X1: x1, Y1: y1, X2: x1 + width, Y2: y1 + height}, c1)
			}
		}
	case Blend:
		b, f := lab(c.Blend[0]), c.Blend[1].Lab(c.BlendAlpha)
		// the blend performed in Oklab, next to the one done by the compositor
		a := f[3]
		r := f32.Vec4{f[0]*a + (1-a)*b[0], f[1]*a + (1-a)*b[1], f[2]*a + (1-a)*b[2], 1}
		ans.Left = append(ans.Left, t.Fill(fill.Bounds{X1: -1, Y1: 0, X2: 1, Y2: 1}, fill.Solid(f)))
		f[3] = 1
		add(fill.Bounds{X1: -1, Y1: -1, X2: 0, Y2: 1}, fill.Solid(b))
		add(fill.Bounds{X1: 0, Y1: -1, X2: 1, Y2: 0}, fill.Solid(f))
		add(fill.Bounds{X1: 0, Y1: 0, X2: 1, Y2: 1}, fill.Solid(r))
	default:
		return ans, fmt.Errorf("%w: %d", ErrUnknownScene, int(kind))
	}
	return
}

// Rect is the square in the bottom right corner of bounds the
// chromaticity overlay is drawn into.
func (o *Overlay) Rect(bounds image.Rectangle) image.Rectangle {
	side := min(int(float32(bounds.Dy())*o.Size/100), bounds.Dx(), bounds.Dy())
	return image.Rectangle{Min: bounds.Max.Sub(image.Pt(side, side)), Max: bounds.Max}
}

// Kernels returns the chromaticity diagram and the gamut triangle.
func (o *Overlay) Kernels() ([]colortest.Kernel, error) {
	p, err := cmm.NamedPrimaries(o.Primaries)
	if err != nil {
		return nil, err
	}
	tri := chroma.TriangleFromPrimaries(p)
	return []colortest.Kernel{chroma.Horseshoe{}, &tri}, nil
}

// Render clears fb to transparent black and draws the scene of the given
// kind followed by the overlay, if any.
func (c *Config) Render(fb *colortest.Framebuffer, kind Kind) error {
	t, err := c.Description.Resolve()
	if err != nil {
		return err
	}
	d, err := c.Expand(kind, &t)
	if err != nil {
		return err
	}
	colortest.Logger().Debug("render scene", "scene", kind, "description", c.Description.Type, "transfer", t.Transfer, "draws", len(d.Main)+len(d.Left))
	fb.Clear(f32.Vec4{})
	if err = colortest.DrawAll(fb, d.Main...); err != nil {
		return err
	}
	if len(d.Left) > 0 {
		r := fb.Rect
		r.Max.X = r.Min.X + r.Dx()/2
		if err = colortest.DrawAll(fb.SubImage(r), d.Left...); err != nil {
			return err
		}
	}
	if c.Overlay != nil {
		k, err := c.Overlay.Kernels()
		if err != nil {
			return err
		}
		if err = colortest.DrawAll(fb.SubImage(c.Overlay.Rect(fb.Rect)), k...); err != nil {
			return err
		}
	}
	return nil
}

// NewFramebuffer allocates a framebuffer of the configured size.
func (c *Config) NewFramebuffer() *colortest.Framebuffer {
	return colortest.NewFramebuffer(c.Width, c.Height)
}

// Sequence renders every frame into its own framebuffer. Without Frames
// the sequence is just Scene.
func (c *Config) Sequence() (*colortest.Sequence, error) {
	frames := c.Frames
	if len(frames) == 0 {
		frames = []Kind{c.Scene}
	}
	ans := &colortest.Sequence{}
	for _, k := range frames {
		fb := c.NewFramebuffer()
		if err := c.Render(fb, k); err != nil {
			return nil, fmt.Errorf("rendering %s failed: %w", k, err)
		}
		ans.Add(fb, seconds(c.FrameDelay))
	}
	return ans, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
