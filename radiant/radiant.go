// Package radiant solves the meteor radiant (the sky point the meteor
// appears to diverge from) as the intersection of two stations' fitted
// meteor planes, and the Q angle between those planes.
package radiant

import (
	"math"

	"github.com/jhorak/meteorpath/coord"
	"github.com/jhorak/meteorpath/meteorplane"
)

// Result is the solved radiant direction and the Q angle between the
// two contributing meteor planes.
type Result struct {
	RADeg, DecDeg float64
	QDeg          float64
}

// Solve computes the radiant from two stations' meteor-plane normals.
// latA/lonA and latB/lonB are the stations' geodetic positions in
// degrees; jdUTC is the meteor epoch as a UTC Julian date.
//
// The intersection direction is nA × nB, normalized. The cross product
// has two antipodal orientations; the one whose altitude at both
// stations is ≥ 0° is kept, since checking only one station can accept
// an orientation that's still below the horizon at the other. If the
// first orientation fails the check, the vector is negated and
// re-resolved.
func Solve(nA, nB meteorplane.Normal, latA, lonA, latB, lonB, jdUTC float64) (Result, error) {
	a := [3]float64{nA.A, nA.B, nA.C}
	b := [3]float64{nB.A, nB.B, nB.C}

	cross := crossNormalize(a, b)

	raDeg, decDeg, err := coord.SolveGoniometry(cross[0], cross[1], cross[2])
	if err != nil {
		return Result{}, err
	}

	altA, _ := coord.Horizontal(raDeg, decDeg, lonA, latA, jdUTC)
	altB, _ := coord.Horizontal(raDeg, decDeg, lonB, latB, jdUTC)
	if altA < 0 || altB < 0 {
		cross = [3]float64{-cross[0], -cross[1], -cross[2]}
		raDeg, decDeg, err = coord.SolveGoniometry(cross[0], cross[1], cross[2])
		if err != nil {
			return Result{}, err
		}
	}

	q := qAngle(a, b)

	return Result{RADeg: raDeg, DecDeg: decDeg, QDeg: q}, nil
}

// qAngle returns the angle in degrees between two plane normals, folded
// into [0, 90]: Ceplecha's Q is a dihedral angle between planes, so the
// two possible normal orientations (a, b) and (a, -b) must agree.
func qAngle(a, b [3]float64) float64 {
	sep := coord.SeparationAngle(a, b)
	if sep > 90.0 {
		sep = 180.0 - sep
	}
	return sep
}

// crossNormalize returns the normalized cross product of two vectors.
func crossNormalize(a, b [3]float64) [3]float64 {
	cx := a[1]*b[2] - a[2]*b[1]
	cy := a[2]*b[0] - a[0]*b[2]
	cz := a[0]*b[1] - a[1]*b[0]
	d := math.Sqrt(cx*cx + cy*cy + cz*cz)
	if d == 0 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{cx / d, cy / d, cz / d}
}
