package geometry

import (
	"errors"
	"math"
)

// ErrDegenerate is returned by SolvePlanes3 when the system's determinant
// is too small relative to the plane coefficients for the solution to be
// numerically trustworthy.
var ErrDegenerate = errors.New("geometry: degenerate plane system")

// Plane is a normalized plane in the form Ax + By + Cz + D = 0, with
// (A, B, C) a unit normal.
type Plane struct {
	A, B, C, D float64
}

// NewPlaneFromNormal builds a Plane through a point given its (possibly
// unnormalized) normal vector.
func NewPlaneFromNormal(normal, point [3]float64) Plane {
	n := length3(normal)
	if n == 0 {
		return Plane{}
	}
	a, b, c := normal[0]/n, normal[1]/n, normal[2]/n
	d := -(a*point[0] + b*point[1] + c*point[2])
	return Plane{A: a, B: b, C: c, D: d}
}

// SolvePlanes3 solves the 3x3 linear system formed by three planes for
// their common intersection point (X, Y, Z), using Gaussian elimination
// with partial pivoting. It refuses to return a point (ErrDegenerate) if
// the absolute value of the system's determinant, after pivoting, falls
// below 1e-9 of the largest plane coefficient magnitude encountered —
// this rejects near-parallel plane triples rather than returning a wild
// extrapolated point.
func SolvePlanes3(p1, p2, p3 Plane) (x, y, z float64, err error) {
	m := [3][4]float64{
		{p1.A, p1.B, p1.C, -p1.D},
		{p2.A, p2.B, p2.C, -p2.D},
		{p3.A, p3.B, p3.C, -p3.D},
	}

	maxCoeff := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if v := math.Abs(m[i][j]); v > maxCoeff {
				maxCoeff = v
			}
		}
	}
	if maxCoeff == 0 {
		return 0, 0, 0, ErrDegenerate
	}

	det := 1.0
	for col := 0; col < 3; col++ {
		pivotRow := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < 3; r++ {
			if v := math.Abs(m[r][col]); v > best {
				best = v
				pivotRow = r
			}
		}
		if pivotRow != col {
			m[col], m[pivotRow] = m[pivotRow], m[col]
		}

		if m[col][col] == 0 {
			return 0, 0, 0, ErrDegenerate
		}
		det *= m[col][col]

		for r := col + 1; r < 3; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c < 4; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}
	if math.Abs(det) < 1e-9*maxCoeff {
		return 0, 0, 0, ErrDegenerate
	}

	sol := [3]float64{}
	for i := 2; i >= 0; i-- {
		sum := m[i][3]
		for j := i + 1; j < 3; j++ {
			sum -= m[i][j] * sol[j]
		}
		sol[i] = sum / m[i][i]
	}

	return sol[0], sol[1], sol[2], nil
}
