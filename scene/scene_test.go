package scene

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f32"

	"github.com/kovidgoyal/colortest"
	"github.com/kovidgoyal/colortest/cmm"
	"github.com/kovidgoyal/colortest/fill"
	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

func in_delta4(t *testing.T, expected, actual f32.Vec4, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range 4 {
		if math.Abs(float64(expected[i]-actual[i])) > delta {
			require.Fail(t, fmt.Sprintf("component %d differs: expected %v got %v (delta: %v)", i, expected, actual, delta), msgAndArgs...)
		}
	}
}

func params(t *testing.T, k colortest.Kernel) *fill.DecodeParams {
	t.Helper()
	p, ok := k.(*fill.DecodeParams)
	require.True(t, ok, "%T is not a decode fill", k)
	return p
}

func TestColorLab(t *testing.T) {
	in_delta4(t, f32.Vec4{0.7, 0, 0.2, 1}, Color{Lumen: 203, Lightness: 0.7, Chroma: 0.2, Hue: 90}.Lab(1), 1e-6)
	in_delta4(t, f32.Vec4{1, 0.2, 0, 0.5}, Color{Lumen: 203 * 8, Lightness: 0.5, Chroma: 0.1}.Lab(0.5), 1e-6)
	in_delta4(t, f32.Vec4{0.5, -0.1, 0, 1}, Color{Lumen: 203, Lightness: 0.5, Chroma: 0.1, Hue: 180}.Lab(1), 1e-6)
	lch := Color{Lumen: 203 / 8., Lightness: 0.8, Chroma: 0.3, Hue: 270}.LCh(1)
	in_delta4(t, f32.Vec4{0.4, 0.15, 1.5 * math.Pi, 1}, lch, 1e-6)
	require.Equal(t, f32.Vec4{}, Color{}.Lab(0))
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		q, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, q)
	}
	k, err := ParseKind(" Center_Box ")
	require.NoError(t, err)
	require.Equal(t, CenterBox, k)
	_, err = ParseKind("spiral")
	require.ErrorIs(t, err, ErrUnknownScene)
	_, err = Kind(99).MarshalText()
	require.ErrorIs(t, err, ErrUnknownScene)

	var d DescriptionType
	require.NoError(t, d.UnmarshalText([]byte("scRGB")))
	require.Equal(t, ScRGB, d)
	require.ErrorIs(t, d.UnmarshalText([]byte("icc")), ErrUnknownDescription)
}

func TestResolve(t *testing.T) {
	tgt, err := Description{Type: None}.Resolve()
	require.NoError(t, err)
	require.Equal(t, transfer.Gamma22, tgt.Transfer.DecodeKind())
	require.Equal(t, cmm.MatrixFromLMS(cmm.SRGBPrimaries, cmm.SRGBLuminance).Mat4(), tgt.Matrix)

	tgt, err = Description{Type: ScRGB, Primaries: "bt2020"}.Resolve()
	require.NoError(t, err)
	require.Equal(t, transfer.Linear, tgt.Transfer.DecodeKind())
	require.Equal(t, cmm.WindowsSCRGBLuminance, tgt.Luminance)
	require.Equal(t, cmm.SRGBPrimaries, tgt.Primaries, "scRGB always uses the sRGB primaries")

	tgt, err = Description{Type: Parametric, Primaries: "bt2020", Transfer: transfer.ST2084PQ,
		Luminance: &cmm.Luminance{Min: 0.005, Max: 1000, White: 203}}.Resolve()
	require.NoError(t, err)
	require.Equal(t, cmm.BT2020Primaries, tgt.Primaries)
	require.InDelta(t, 10000.005, tgt.Luminance.Max, 1e-9)
	require.Equal(t, cmm.MatrixFromLMS(tgt.Primaries, tgt.Luminance).Mat4(), tgt.Matrix)

	tgt, err = Description{Type: Parametric, Transfer: transfer.BT1886}.Resolve()
	require.NoError(t, err)
	require.Equal(t, cmm.SRGBPrimaries, tgt.Primaries)
	p := tgt.Fill(fill.FullScreen, fill.Corners{})
	require.Equal(t, transfer.BT1886, p.Transfer)
	require.Equal(t, transfer.BT1886Args(cmm.BT1886Luminance.White, cmm.BT1886Luminance.Min), p.Args)

	tgt, err = Description{Type: Parametric, Transfer: transfer.Pow, Exponent: 2.4}.Resolve()
	require.NoError(t, err)
	require.Equal(t, transfer.PowArgs(2.4), tgt.Fill(fill.FullScreen, fill.Corners{}).Args)
	_, err = Description{Type: Parametric, Transfer: transfer.Pow}.Resolve()
	require.Error(t, err)

	custom := cmm.Primaries{R: cmm.Chromaticity{X: 0.7, Y: 0.3}, G: cmm.Chromaticity{X: 0.2, Y: 0.7}, B: cmm.Chromaticity{X: 0.15, Y: 0.05}, WP: cmm.SRGBPrimaries.WP}
	tgt, err = Description{Type: Parametric, Primaries: "no such thing", CustomPrimaries: &custom}.Resolve()
	require.NoError(t, err)
	require.Equal(t, custom, tgt.Primaries)

	_, err = Description{Type: Parametric, Primaries: "no such thing"}.Resolve()
	require.ErrorIs(t, err, cmm.ErrUnknownPrimaries)
	_, err = Description{Type: Parametric, Transfer: 42}.Resolve()
	require.ErrorIs(t, err, transfer.ErrUnknownKind)
	_, err = Description{Type: 7}.Resolve()
	require.ErrorIs(t, err, ErrUnknownDescription)
}

func TestExpand(t *testing.T) {
	c := Default()
	tgt, err := c.Description.Resolve()
	require.NoError(t, err)
	lab := func(x Color) f32.Vec4 { return x.Lab(1) }

	d, err := c.Expand(Fill, &tgt)
	require.NoError(t, err)
	require.Len(t, d.Main, 1)
	require.Empty(t, d.Left)
	p := params(t, d.Main[0])
	require.Equal(t, fill.FullScreen, p.Bounds)
	require.Equal(t, fill.Solid(lab(c.Fill)), p.Colors)
	require.Equal(t, tgt.Matrix, p.Matrix)

	d, err = c.Expand(LeftRight, &tgt)
	require.NoError(t, err)
	l, r := lab(c.LeftRight[0]), lab(c.LeftRight[1])
	require.Equal(t, fill.Corners{r, l, r, l}, params(t, d.Main[0]).Colors)

	d, err = c.Expand(TopBottom, &tgt)
	require.NoError(t, err)
	top, bottom := lab(c.TopBottom[0]), lab(c.TopBottom[1])
	require.Equal(t, fill.Corners{top, top, bottom, bottom}, params(t, d.Main[0]).Colors)

	d, err = c.Expand(Four, &tgt)
	require.NoError(t, err)
	for i := range 4 {
		require.Equal(t, lab(c.FourCorners[i]), params(t, d.Main[0]).Colors[i])
	}

	d, err = c.Expand(CenterBox, &tgt)
	require.NoError(t, err)
	require.Len(t, d.Main, 2)
	require.Equal(t, fill.Bounds{X1: -0.5, Y1: -0.5, X2: 0.5, Y2: 0.5}, params(t, d.Main[1]).Bounds)
	require.Equal(t, fill.Solid(lab(c.CenterBox[1])), params(t, d.Main[1]).Colors)

	d, err = c.Expand(Grid, &tgt)
	require.NoError(t, err)
	require.Len(t, d.Main, 1+8)
	require.Equal(t, fill.Bounds{X1: -0.5, Y1: -1, X2: 0, Y2: -0.5}, params(t, d.Main[1]).Bounds)
	require.Equal(t, fill.Bounds{X1: -1, Y1: -0.5, X2: -0.5, Y2: 0}, params(t, d.Main[3]).Bounds)
	c.GridRows, c.GridCols = 3, 1
	d, err = c.Expand(Grid, &tgt)
	require.NoError(t, err)
	require.Len(t, d.Main, 2, "only the middle row of a single column grid is filled")

	d, err = c.Expand(Blend, &tgt)
	require.NoError(t, err)
	require.Len(t, d.Main, 3)
	require.Len(t, d.Left, 1)
	left := params(t, d.Left[0])
	require.Equal(t, fill.Bounds{X1: -1, Y1: 0, X2: 1, Y2: 1}, left.Bounds)
	require.Equal(t, c.BlendAlpha, left.Colors[0][3])
	b, f := lab(c.Blend[0]), lab(c.Blend[1])
	require.Equal(t, fill.Solid(b), params(t, d.Main[0]).Colors)
	require.Equal(t, fill.Solid(f), params(t, d.Main[1]).Colors)
	mixed := params(t, d.Main[2]).Colors[0]
	for i := range 3 {
		assert.InDelta(t, (b[i]+f[i])/2, mixed[i], 1e-6)
	}
	require.Equal(t, float32(1), mixed[3])

	_, err = c.Expand(Kind(42), &tgt)
	require.ErrorIs(t, err, ErrUnknownScene)
}

func TestRenderFill(t *testing.T) {
	c := Default()
	fb := colortest.NewFramebuffer(8, 8)
	require.NoError(t, c.Render(fb, Fill))
	// Oklab white at the reference luminance is sRGB white
	for y := range 8 {
		for x := range 8 {
			in_delta4(t, f32.Vec4{1, 1, 1, 1}, fb.RGBAAt(x, y), 2e-3)
		}
	}
	c.Fill.Lumen = 0
	require.NoError(t, c.Render(fb, Fill))
	in_delta4(t, f32.Vec4{0, 0, 0, 1}, fb.RGBAAt(3, 3), 1e-6)
}

func TestRenderBlend(t *testing.T) {
	c := Default()
	fb := colortest.NewFramebuffer(8, 8)
	require.NoError(t, c.Render(fb, Blend))
	tgt, err := c.Description.Resolve()
	require.NoError(t, err)
	d, err := c.Expand(Blend, &tgt)
	require.NoError(t, err)
	color_of := func(k colortest.Kernel) f32.Vec4 { return k.Fragment(f32.Vec2{}) }
	b, f, mixed := color_of(d.Main[0]), color_of(d.Main[1]), color_of(d.Main[2])
	over := color_of(d.Left[0])

	in_delta4(t, b, fb.RGBAAt(0, 0), 1e-6, "top left")
	in_delta4(t, f, fb.RGBAAt(7, 0), 1e-6, "top right")
	in_delta4(t, mixed, fb.RGBAAt(7, 7), 1e-6, "bottom right")
	a := over[3]
	expected := f32.Vec4{over[0]*a + b[0]*(1-a), over[1]*a + b[1]*(1-a), over[2]*a + b[2]*(1-a), 1}
	in_delta4(t, expected, fb.RGBAAt(1, 7), 1e-6, "bottom left")
	// the compositor blends encoded values, the scene blends in Oklab
	assert.NotEqual(t, fb.NRGBA64At(1, 7), fb.NRGBA64At(7, 7))
}

func TestRenderOverlay(t *testing.T) {
	c := Default()
	c.Overlay = &Overlay{Primaries: "srgb", Size: 50}
	require.Equal(t, image.Rect(8, 8, 16, 16), c.Overlay.Rect(image.Rect(0, 0, 16, 16)))
	plain, fb := colortest.NewFramebuffer(16, 16), colortest.NewFramebuffer(16, 16)
	require.NoError(t, c.Render(fb, Four))
	c.Overlay = nil
	require.NoError(t, c.Render(plain, Four))
	require.Equal(t, plain.RGBAAt(0, 0), fb.RGBAAt(0, 0))
	require.Equal(t, plain.RGBAAt(7, 15), fb.RGBAAt(7, 15))
	// far outside the spectral locus the diagram is white
	in_delta4(t, f32.Vec4{1, 1, 1, 1}, fb.RGBAAt(15, 15), 1e-6)
}

func TestSequence(t *testing.T) {
	c := Default()
	c.Width, c.Height = 4, 4
	s, err := c.Sequence()
	require.NoError(t, err)
	require.Len(t, s.Frames, 1)
	c.Frames, c.FrameDelay = []Kind{Fill, Grid, Blend}, 0.25
	s, err = c.Sequence()
	require.NoError(t, err)
	require.Len(t, s.Frames, 3)
	require.Equal(t, 250*time.Millisecond, s.Frames[2].Delay)
	require.True(t, s.Frames[0].Image.(*colortest.Framebuffer).Opaque())
	c.Frames = []Kind{Fill, 17}
	_, err = c.Sequence()
	require.ErrorIs(t, err, ErrUnknownScene)
}

const example = `
width = 64
height = 32
scene = "center_box"
frames = ["fill", "blend"]
frame_delay = 0.5
center_box_size = 25
blend = [
	{lumen = 80, lightness = 0.5, chroma = 0.1, hue = 10},
	{lumen = 80, lightness = 0.6, chroma = 0.1, hue = 200},
]

[description]
type = "parametric"
primaries = "bt2020"
transfer = "pq"

[description.luminance]
min = 0.005
max = 1000
white = 203

[overlay]
primaries = "display-p3"

[fill]
lumen = 100
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(example))
	require.NoError(t, err)
	expected := Default()
	expected.Width, expected.Height = 64, 32
	expected.Scene = CenterBox
	expected.Frames = []Kind{Fill, Blend}
	expected.FrameDelay = 0.5
	expected.CenterBoxSize = 25
	expected.Blend = [2]Color{{80, 0.5, 0.1, 10}, {80, 0.6, 0.1, 200}}
	expected.Description = Description{
		Type: Parametric, Primaries: "bt2020", Transfer: transfer.ST2084PQ, Exponent: 2.2,
		Luminance: &cmm.Luminance{Min: 0.005, Max: 1000, White: 203},
	}
	expected.Overlay = &Overlay{Primaries: "display-p3", Size: DefaultOverlaySize}
	expected.Fill.Lumen = 100
	if diff := cmp.Diff(expected, c); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"bogus = 1",
		"scene = \"spiral\"",
		"width = \"wide\"",
		"width = 1",
		"grid_rows = 0",
		"blend_alpha = 1.5",
		"center_box_size = 101",
		"frames = [\"fill\", \"nothing\"]",
		"[description]\ntype = \"icc\"",
		"[description]\ntype = \"parametric\"\nprimaries = \"nope\"",
		"[description]\ntype = \"parametric\"\ntransfer = \"pow\"\nexponent = 0",
		"[overlay]\nprimaries = \"nope\"",
		"[fill]\nsaturation = 1",
		"width = ",
	} {
		_, err := Parse([]byte(src))
		require.ErrorIs(t, err, ErrInvalidConfig, "%q", src)
	}
}

func TestLoadAndWrite(t *testing.T) {
	buf := bytes.Buffer{}
	_, err := Default().WriteTo(&buf)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "defaults.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Fatalf("written defaults do not load back (-want +got):\n%s", diff)
	}

	require.NoError(t, os.WriteFile(path, []byte("width = 0"), 0o644))
	_, err = Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorContains(t, err, path)
	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
