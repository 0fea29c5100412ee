package cmm

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovidgoyal/colortest/transfer"
)

var _ = fmt.Print

func assert_vec(t *testing.T, expected, actual Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		if math.Abs(expected[i]-actual[i]) > delta {
			t.Fatalf("component %d differs: expected %v got %v (delta: %v)", i, expected, actual, delta)
		}
	}
}

func assert_matrix(t *testing.T, expected, actual Matrix, delta float64) {
	t.Helper()
	if !expected.Equals(actual, delta) {
		t.Fatalf("matrices differ (delta: %v):\n%s", delta, cmp.Diff(expected, actual, cmpopts.EquateApprox(0, delta)))
	}
}

func all_primaries(t *testing.T) map[string]Primaries {
	ans := make(map[string]Primaries)
	for _, name := range PrimariesNames() {
		p, err := NamedPrimaries(name)
		require.NoError(t, err)
		ans[name] = p
	}
	return ans
}

func TestSRGBMatrices(t *testing.T) {
	to_xyz, from_xyz := SRGBPrimaries.Matrices()
	expected := Matrix{
		{0.4124, 0.3576, 0.1805, 0},
		{0.2126, 0.7152, 0.0722, 0},
		{0.0193, 0.1192, 0.9505, 0},
	}
	assert_matrix(t, expected, to_xyz, 1e-4)
	assert_matrix(t, IdentityMatrix, to_xyz.Mul(from_xyz), 1e-12)
	// white maps to the D65 white point
	assert_vec(t, SRGBPrimaries.WP.XYZ(), to_xyz.Apply(Vec3{1, 1, 1}), 1e-12)
}

func TestPrimariesRoundTrip(t *testing.T) {
	for name, p := range all_primaries(t) {
		t.Run(name, func(t *testing.T) {
			to_xyz, from_xyz := p.Matrices()
			assert_matrix(t, IdentityMatrix, from_xyz.Mul(to_xyz), 1e-9)
			inv, err := to_xyz.Inverted()
			require.NoError(t, err)
			assert_matrix(t, from_xyz, inv, 1e-9)
			// Y of white is always 1
			assert.InDelta(t, 1, to_xyz.Apply(Vec3{1, 1, 1})[1], 1e-12)
		})
	}
}

func TestNamedPrimaries(t *testing.T) {
	p, err := NamedPrimaries(" Display_P3")
	require.NoError(t, err)
	require.Equal(t, DisplayP3Primaries, p)
	_, err = NamedPrimaries("rec601")
	require.ErrorIs(t, err, ErrUnknownPrimaries)
	require.Len(t, all_primaries(t), 10)
}

func TestInverted(t *testing.T) {
	m := Matrix{
		{2, 0.5, 0, 1},
		{0, 1, 0.25, -2},
		{0.1, 0, 3, 0.5},
	}
	inv, err := m.Inverted()
	require.NoError(t, err)
	assert_matrix(t, IdentityMatrix, m.Mul(inv), 1e-12)
	assert_matrix(t, IdentityMatrix, inv.Mul(m), 1e-12)
	p := Vec3{0.3, -4, 7}
	assert_vec(t, p, inv.Apply(m.Apply(p)), 1e-12)
	_, err = Matrix{{1, 2, 3, 0}, {2, 4, 6, 0}, {0, 0, 1, 0}}.Inverted()
	require.Error(t, err)
}

func TestMulOrder(t *testing.T) {
	scale := diagonal(2, 2, 2)
	shift := Matrix{{1, 0, 0, 1}, {0, 1, 0, 1}, {0, 0, 1, 1}}
	// shift first, then scale
	assert_vec(t, Vec3{4, 4, 4}, scale.Mul(shift).Apply(Vec3{1, 1, 1}), 0)
	// scale first, then shift
	assert_vec(t, Vec3{3, 3, 3}, shift.Mul(scale).Apply(Vec3{1, 1, 1}), 0)
}

func TestMat4(t *testing.T) {
	m := Matrix{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}}
	q := m.Mat4()
	require.Equal(t, [16]float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 0, 0, 0, 1}, [16]float32(q))
}

func TestBradford(t *testing.T) {
	d65 := SRGBPrimaries.WP
	assert_matrix(t, IdentityMatrix, BradfordAdjustment(d65, d65), 1e-5)
	d50 := Chromaticity{0.3457, 0.3585}
	m := BradfordAdjustment(d65, d50)
	assert_vec(t, d50.XYZ(), m.Apply(d65.XYZ()), 1e-5)
	back := BradfordAdjustment(d50, d65)
	assert_matrix(t, IdentityMatrix, back.Mul(m), 1e-5)
}

func TestWhiteBalance(t *testing.T) {
	assert_matrix(t, IdentityMatrix, WhiteBalance(SRGBLuminance, SRGBLuminance, SRGBPrimaries.WP), 0)
	m := WhiteBalance(SRGBLuminance, WindowsSCRGBLuminance, SRGBPrimaries.WP)
	d := 0.2 / 10000
	a := 79.8 / 10000 * (WindowsSCRGBLuminance.White - 0.2) / 79.8
	assert.InDelta(t, a-d, m[0][0], 1e-12)
	assert.InDelta(t, d, m[1][3], 1e-12)
	// sRGB white ends up close to 203/80 in scRGB where 1.0 is 80 cd/m²
	wp := SRGBPrimaries.WP.XYZ()
	assert.InDelta(t, a, m.Apply(wp)[1], 1e-9)
	assert.InDelta(t, 203.0/80, m.Apply(wp)[1], 1e-4)
}

func TestMatrixFromLMS(t *testing.T) {
	// Oklab white has LMS (1, 1, 1)
	m := MatrixFromLMS(SRGBPrimaries, SRGBLuminance)
	assert_vec(t, Vec3{1, 1, 1}, m.Apply(Vec3{1, 1, 1}), 1e-3)
	// a wider gamut shows sRGB white at the same luminance
	m = MatrixFromLMS(BT2020Primaries, SRGBLuminance)
	assert_vec(t, Vec3{1, 1, 1}, m.Apply(Vec3{1, 1, 1}), 1e-3)
	// a different white point is adapted so that white stays neutral-ish in its own space
	m = MatrixFromLMS(DCIP3Primaries, SRGBLuminance)
	w := m.Apply(Vec3{1, 1, 1})
	assert_vec(t, Vec3{1, 1, 1}, w, 1e-2)
}

func TestTransferFunction(t *testing.T) {
	cases := []struct {
		tf     TransferFunction
		kind   transfer.Kind
		lum    Luminance
		name   string
		nonarg bool
	}{
		{TransferFunction{Kind: transfer.SRGB}, transfer.Gamma22, SRGBLuminance, "srgb", true},
		{TransferFunction{Kind: transfer.ExtSRGB}, transfer.Gamma22, SRGBLuminance, "ext-srgb", true},
		{TransferFunction{Kind: transfer.ST2084PQ}, transfer.ST2084PQ, ST2084PQLuminance, "st2084-pq", true},
		{TransferFunction{Kind: transfer.BT1886}, transfer.BT1886, BT1886Luminance, "bt1886", false},
		{TransferFunction{Kind: transfer.Pow, Exponent: 2.4}, transfer.Pow, SRGBLuminance, "pow(2.4)", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.kind, tc.tf.DecodeKind())
			require.Equal(t, tc.lum, tc.tf.DefaultLuminance())
			require.Equal(t, tc.name, tc.tf.String())
			args := tc.tf.DecodeArgs(tc.tf.DefaultLuminance())
			if tc.nonarg {
				require.Equal(t, transfer.Args{}, args)
			} else {
				require.NotEqual(t, transfer.Args{}, args)
			}
		})
	}
}

func TestResolveLuminance(t *testing.T) {
	pq := TransferFunction{Kind: transfer.ST2084PQ}
	require.Equal(t, ST2084PQLuminance, pq.Resolve(nil))
	l := Luminance{Min: 0.1, Max: 400, White: 100}
	require.Equal(t, Luminance{Min: 0.1, Max: 10000.1, White: 100}, pq.Resolve(&l))
	g := TransferFunction{Kind: transfer.Gamma22}
	require.Equal(t, l, g.Resolve(&l))
}

func TestCICP(t *testing.T) {
	p, tf, err := FromCICP(CodingIndependentCodePoints{9, 16, 0, 1})
	require.NoError(t, err)
	require.Equal(t, BT2020Primaries, p)
	require.Equal(t, transfer.ST2084PQ, tf.Kind)

	p, tf, err = FromCICP(CodingIndependentCodePoints{12, 13, 0, 1})
	require.NoError(t, err)
	require.Equal(t, DisplayP3Primaries, p)
	require.Equal(t, transfer.SRGB, tf.Kind)

	_, _, err = FromCICP(CodingIndependentCodePoints{1, 13, 1, 0})
	require.ErrorIs(t, err, ErrUnsupportedCICP)
	_, _, err = FromCICP(CodingIndependentCodePoints{2, 13, 0, 1})
	require.ErrorIs(t, err, ErrUnsupportedCICP)
	_, _, err = FromCICP(CodingIndependentCodePoints{1, 18, 0, 1})
	require.ErrorIs(t, err, ErrUnsupportedCICP)
}
