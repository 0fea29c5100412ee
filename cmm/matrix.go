// Package cmm contains the host side color management math that produces
// the linear color-space transforms handed to the kernels: RGB primaries,
// luminance ranges, white balancing and Bradford chromatic adaptation.
//
// All computation here is float64; matrices are narrowed to float32 only
// when they are placed into a parameter block.
package cmm

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/f32"
)

var _ = fmt.Print

// Determinants smaller than this are treated as zero when inverting
const MATRIX_DET_TOLERANCE = 1e-12

type Vec3 [3]float64

// Matrix is a 3x4 affine transform. The implicit fourth row is 0 0 0 1.
type Matrix [3][4]float64

var IdentityMatrix = Matrix{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
}

// Mul returns a*b, the transform that applies b first and then a.
func (a Matrix) Mul(b Matrix) (ans Matrix) {
	for r := range 3 {
		for c := range 4 {
			sum := 0.0
			for k := range 3 {
				sum += a[r][k] * b[k][c]
			}
			if c == 3 {
				sum += a[r][3]
			}
			ans[r][c] = sum
		}
	}
	return
}

// Apply transforms the point v.
func (m Matrix) Apply(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2] + m[0][3],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2] + m[1][3],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2] + m[2][3],
	}
}

// ApplyLinear transforms the vector v ignoring the offset column.
func (m Matrix) ApplyLinear(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (mat Matrix) Inverted() (ans Matrix, err error) {
	det := mat[0][0]*(mat[1][1]*mat[2][2]-mat[1][2]*mat[2][1]) -
		mat[0][1]*(mat[1][0]*mat[2][2]-mat[1][2]*mat[2][0]) +
		mat[0][2]*(mat[1][0]*mat[2][1]-mat[1][1]*mat[2][0])
	if det > -MATRIX_DET_TOLERANCE && det < MATRIX_DET_TOLERANCE {
		return ans, fmt.Errorf("matrix is singular and cannot be inverted")
	}
	inv_det := 1 / det
	adj := [3][3]float64{
		{
			(mat[1][1]*mat[2][2] - mat[1][2]*mat[2][1]),
			(mat[0][2]*mat[2][1] - mat[0][1]*mat[2][2]),
			(mat[0][1]*mat[1][2] - mat[0][2]*mat[1][1]),
		},
		{
			(mat[1][2]*mat[2][0] - mat[1][0]*mat[2][2]),
			(mat[0][0]*mat[2][2] - mat[0][2]*mat[2][0]),
			(mat[0][2]*mat[1][0] - mat[0][0]*mat[1][2]),
		},
		{
			(mat[1][0]*mat[2][1] - mat[1][1]*mat[2][0]),
			(mat[0][1]*mat[2][0] - mat[0][0]*mat[2][1]),
			(mat[0][0]*mat[1][1] - mat[0][1]*mat[1][0]),
		},
	}
	for i := range 3 {
		for j := range 3 {
			ans[i][j] = inv_det * adj[i][j]
		}
	}
	// the inverse of x -> Mx + t is y -> M⁻¹y - M⁻¹t
	for i := range 3 {
		ans[i][3] = -(ans[i][0]*mat[0][3] + ans[i][1]*mat[1][3] + ans[i][2]*mat[2][3])
	}
	return
}

// Mat4 returns the matrix as the row-major 4x4 float32 matrix stored in
// parameter blocks.
func (m Matrix) Mat4() f32.Mat4 {
	return f32.Mat4{
		float32(m[0][0]), float32(m[0][1]), float32(m[0][2]), float32(m[0][3]),
		float32(m[1][0]), float32(m[1][1]), float32(m[1][2]), float32(m[1][3]),
		float32(m[2][0]), float32(m[2][1]), float32(m[2][2]), float32(m[2][3]),
		0, 0, 0, 1,
	}
}

func (m Matrix) Equals(o Matrix, threshold float64) bool {
	for r := range 3 {
		for c := range 4 {
			if d := m[r][c] - o[r][c]; d > threshold || d < -threshold {
				return false
			}
		}
	}
	return true
}

func (m Matrix) String() string {
	rows := make([]string, 0, 4)
	for _, r := range m {
		rows = append(rows, fmt.Sprintf("[%.4f, %.4f, %.4f, %.4f]", r[0], r[1], r[2], r[3]))
	}
	rows = append(rows, "[0.0000, 0.0000, 0.0000, 1.0000]")
	return "Matrix[" + strings.Join(rows, ", ") + "]"
}

func diagonal(a, b, c float64) Matrix {
	return Matrix{{a, 0, 0, 0}, {0, b, 0, 0}, {0, 0, c, 0}}
}
