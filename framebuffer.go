package colortest

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kovidgoyal/go-parallel"
	"golang.org/x/image/math/f32"
)

var _ = fmt.Print

// Framebuffer is an in-memory float32 RGBA render target, the CPU
// equivalent of the GPU color attachment. Values are stored unclamped and
// non-premultiplied, exactly as the kernels and blending produce them.
type Framebuffer struct {
	// Pix holds the pixels in R, G, B, A order. The pixel at (x, y) starts
	// at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*4].
	Pix []float32
	// Stride is the Pix stride (in float32 values) between vertically adjacent pixels.
	Stride int
	Rect   image.Rectangle
}

func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(0, width), max(0, height)
	return &Framebuffer{
		Pix:    make([]float32, 4*width*height),
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func (p *Framebuffer) ColorModel() color.Model { return color.NRGBA64Model }

func (p *Framebuffer) Bounds() image.Rectangle { return p.Rect }

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *Framebuffer) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *Framebuffer) RGBAAt(x, y int) f32.Vec4 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return f32.Vec4{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	return f32.Vec4{s[0], s[1], s[2], s[3]}
}

func (p *Framebuffer) SetRGBA(x, y int, c f32.Vec4) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c[0], c[1], c[2], c[3]
}

// Clear sets every pixel to c.
func (p *Framebuffer) Clear(c f32.Vec4) {
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		row := p.Pix[p.PixOffset(p.Rect.Min.X, y):]
		for x := range p.Rect.Dx() {
			s := row[x*4 : x*4+4 : x*4+4]
			s[0], s[1], s[2], s[3] = c[0], c[1], c[2], c[3]
		}
	}
}

func quantize(v float32) uint16 {
	// NaN fails both comparisons and ends up as 0
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}

func (p *Framebuffer) NRGBA64At(x, y int) color.NRGBA64 {
	c := p.RGBAAt(x, y)
	return color.NRGBA64{R: quantize(c[0]), G: quantize(c[1]), B: quantize(c[2]), A: quantize(c[3])}
}

// At clamps the stored values to [0, 1] and quantizes them to 16 bits.
func (p *Framebuffer) At(x, y int) color.Color {
	return p.NRGBA64At(x, y)
}

// SubImage returns an image representing the portion of the image p visible
// through r. The returned value shares pixels with the original image.
func (p *Framebuffer) SubImage(r image.Rectangle) *Framebuffer {
	r = r.Intersect(p.Rect)
	// If r1 and r2 are Rectangles, r1.Intersect(r2) is not guaranteed to be inside
	// either r1 or r2 if the intersection is empty. Without explicitly checking for
	// this, the Pix[i:] expression below can panic.
	if r.Empty() {
		return &Framebuffer{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Framebuffer{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

func (p *Framebuffer) Opaque() bool {
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		row := p.Pix[p.PixOffset(p.Rect.Min.X, y):]
		for x := range p.Rect.Dx() {
			if row[x*4+3] < 1 {
				return false
			}
		}
	}
	return true
}

// NRGBA64 quantizes the framebuffer into a 16 bit per channel image, the
// form the PNG and TIFF encoders write at full depth.
func (p *Framebuffer) NRGBA64() (*image.NRGBA64, error) {
	b := p.Rect
	ans := image.NewNRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	f := func(start, limit int) {
		for y := start; y < limit; y++ {
			row := ans.Pix[ans.Stride*y:]
			for x := range b.Dx() {
				c := p.NRGBA64At(b.Min.X+x, b.Min.Y+y)
				s := row[x*8 : x*8+8 : x*8+8]
				s[0], s[1] = uint8(c.R>>8), uint8(c.R)
				s[2], s[3] = uint8(c.G>>8), uint8(c.G)
				s[4], s[5] = uint8(c.B>>8), uint8(c.B)
				s[6], s[7] = uint8(c.A>>8), uint8(c.A)
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, 0, b.Dy()); err != nil {
		return nil, err
	}
	return ans, nil
}
