package chroma

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"

	"github.com/kovidgoyal/colortest/cmm"
	"github.com/kovidgoyal/colortest/fill"
	"github.com/kovidgoyal/colortest/internal/gmath"
)

var _ = fmt.Print

// Anti-aliasing bands, in display plane units
const (
	TriangleBlack = 0.005
	TriangleWhite = 0.007
	WPWhite       = 0.02
	// the marker fades out over the same width as the edges
	WPBlack = TriangleBlack + (WPWhite - TriangleWhite)
)

const TriangleBlockSize = 32

var ErrBlockSize = fill.ErrBlockSize

// TriangleParams are the primaries and white point, in display plane
// coordinates.
type TriangleParams struct {
	R, G, B, WP f32.Vec2
}

// TriangleFromPrimaries places the chromaticities of p in the display plane.
func TriangleFromPrimaries(p cmm.Primaries) TriangleParams {
	v := func(c cmm.Chromaticity) f32.Vec2 { return FromXY(f32.Vec2{float32(c.X), float32(c.Y)}) }
	return TriangleParams{R: v(p.R), G: v(p.G), B: v(p.B), WP: v(p.WP)}
}

// SegmentDistance is the distance from p to the segment a-b.
func SegmentDistance(p, a, b f32.Vec2) float32 {
	return math32.Sqrt(segment_distance2(p, a, b))
}

func (t *TriangleParams) EdgeDistance(p f32.Vec2) float32 {
	return min(SegmentDistance(p, t.R, t.G), SegmentDistance(p, t.G, t.B), SegmentDistance(p, t.B, t.R))
}

// Alphas returns the coverage of the triangle outline and of the white
// point marker at p.
func (t *TriangleParams) Alphas(p f32.Vec2) (triangle, wp float32) {
	triangle = 1 - gmath.Smoothstep(TriangleBlack, TriangleWhite, t.EdgeDistance(p))
	wp = 1 - gmath.Smoothstep(WPBlack, WPWhite, gmath.Length2(gmath.Sub2(p, t.WP)))
	return
}

func (t *TriangleParams) Vertex(index int) f32.Vec2 { return full_screen_corner(index) }

func (t *TriangleParams) Fragment(p f32.Vec2) f32.Vec4 {
	a, w := t.Alphas(p)
	return f32.Vec4{0, 0, 0, max(a, w)}
}

func (t *TriangleParams) String() string {
	return fmt.Sprintf("chroma.Triangle{R: %v G: %v B: %v WP: %v}", t.R, t.G, t.B, t.WP)
}

func (t *TriangleParams) AppendBinary(b []byte) ([]byte, error) {
	for _, v := range []f32.Vec2{t.R, t.G, t.B, t.WP} {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v[0]))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v[1]))
	}
	return b, nil
}

func (t *TriangleParams) MarshalBinary() ([]byte, error) {
	return t.AppendBinary(make([]byte, 0, TriangleBlockSize))
}

func (t *TriangleParams) UnmarshalBinary(data []byte) error {
	if len(data) != TriangleBlockSize {
		return fmt.Errorf("%w: triangle block is %d bytes, expected %d", ErrBlockSize, len(data), TriangleBlockSize)
	}
	for _, v := range []*f32.Vec2{&t.R, &t.G, &t.B, &t.WP} {
		v[0] = math.Float32frombits(binary.LittleEndian.Uint32(data))
		v[1] = math.Float32frombits(binary.LittleEndian.Uint32(data[4:]))
		data = data[8:]
	}
	return nil
}
