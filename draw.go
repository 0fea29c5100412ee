package colortest

import (
	"fmt"
	"image"
	"math"

	"github.com/kovidgoyal/go-parallel"
	"golang.org/x/image/math/f32"
)

var _ = fmt.Print

// Kernel is a vertex and fragment shader pair drawn as a single quad.
// Vertex returns the normalized device coordinates of corner 0..3 and
// Fragment the color of the pixel whose center is at pos.
type Kernel interface {
	Vertex(index int) f32.Vec2
	Fragment(pos f32.Vec2) f32.Vec4
}

// Coverage returns the pixels of a width x height target whose centers lie
// inside the quad spanned by the four vertices of k. Minimum edges are
// inclusive and maximum edges exclusive so adjacent quads never overlap.
func Coverage(k Kernel, width, height int) image.Rectangle {
	lo, hi := k.Vertex(0), k.Vertex(0)
	for i := 1; i < 4; i++ {
		v := k.Vertex(i)
		lo = f32.Vec2{min(lo[0], v[0]), min(lo[1], v[1])}
		hi = f32.Vec2{max(hi[0], v[0]), max(hi[1], v[1])}
	}
	// first pixel whose center (p + 0.5) / size * 2 - 1 is >= edge
	first := func(edge float32, size int) int {
		v := math.Ceil(float64(edge+1)*float64(size)/2 - 0.5)
		return int(min(max(v, 0), float64(size)))
	}
	r := image.Rect(first(lo[0], width), first(lo[1], height), first(hi[0], width), first(hi[1], height))
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// PixelCenter is the normalized device coordinate of the center of pixel
// (x, y), with y pointing down.
func PixelCenter(x, y, width, height int) f32.Vec2 {
	return f32.Vec2{
		(float32(x)+0.5)/float32(width)*2 - 1,
		(float32(y)+0.5)/float32(height)*2 - 1,
	}
}

// Draw executes k over fb and alpha blends the result into it, one
// fragment per covered pixel, rows spread over all CPUs.
func Draw(fb *Framebuffer, k Kernel) error {
	width, height := fb.Rect.Dx(), fb.Rect.Dy()
	r := Coverage(k, width, height)
	Logger().Debug("draw", "kernel", fmt.Sprint(k), "covered", r, "target", fb.Rect)
	if r.Empty() {
		return nil
	}
	f := func(start, limit int) {
		for y := start; y < limit; y++ {
			row := fb.Pix[fb.PixOffset(fb.Rect.Min.X, fb.Rect.Min.Y+y):]
			for x := r.Min.X; x < r.Max.X; x++ {
				src := k.Fragment(PixelCenter(x, y, width, height))
				s := row[x*4 : x*4+4 : x*4+4]
				a := src[3]
				ia := 1 - a
				s[0] = src[0]*a + s[0]*ia
				s[1] = src[1]*a + s[1]*ia
				s[2] = src[2]*a + s[2]*ia
				s[3] = a + s[3]*ia
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, f, r.Min.Y, r.Max.Y); err != nil {
		return fmt.Errorf("drawing %v failed: %w", k, err)
	}
	return nil
}

// DrawAll draws the kernels in order, each draw completes before the next
// one starts.
func DrawAll(fb *Framebuffer, kernels ...Kernel) error {
	for _, k := range kernels {
		if err := Draw(fb, k); err != nil {
			return err
		}
	}
	return nil
}
