// Package meteorplane fits the great circle a meteor's observed
// equatorial track lies on, per Ceplecha (1987) eqns. 9 and 11.
package meteorplane

import (
	"errors"
	"math"

	"github.com/jhorak/meteorpath/coord"
)

// ErrUnderdetermined is returned when too few or degenerate observations
// exist to fit a plane: a single point, or collinear points on a
// meridian that drive the fit's denominator to zero.
var ErrUnderdetermined = errors.New("meteorplane: underdetermined fit")

// Normal is a normalized meteor-plane normal vector (a, b, c) in the
// equatorial frame.
type Normal struct {
	A, B, C float64
}

// Fit computes the best-fit great-circle normal through a sequence of
// (RA, Dec) observations, in degrees.
//
// Accumulates Σξη, Σηζ, Σηη, Σξζ, Σξξ over the unit vectors of all
// points, then sets
//
//	a' = Σξη·Σηζ − Σηη·Σξζ
//	b' = Σξη·Σξζ − Σξξ·Σηζ
//	c' = Σξξ·Σηη − (Σξη)²
//	d' = √(a'²+b'²+c'²)
//
// and returns (a, b, c) = (a', b', c')/d'.
func Fit(raDeg, decDeg []float64) (Normal, error) {
	if len(raDeg) != len(decDeg) {
		return Normal{}, ErrUnderdetermined
	}
	if len(raDeg) < 2 {
		return Normal{}, ErrUnderdetermined
	}

	var sumXiEta, sumEtaZeta, sumEtaEta, sumXiZeta, sumXiXi float64
	for i := range raDeg {
		xi, eta, zeta := coord.EquatorialToUnitVector(raDeg[i], decDeg[i])
		sumXiEta += xi * eta
		sumEtaZeta += eta * zeta
		sumEtaEta += eta * eta
		sumXiZeta += xi * zeta
		sumXiXi += xi * xi
	}

	aPrime := sumXiEta*sumEtaZeta - sumEtaEta*sumXiZeta
	bPrime := sumXiEta*sumXiZeta - sumXiXi*sumEtaZeta
	cPrime := sumXiXi*sumEtaEta - sumXiEta*sumXiEta
	dPrime := math.Sqrt(aPrime*aPrime + bPrime*bPrime + cPrime*cPrime)

	if dPrime == 0 {
		return Normal{}, ErrUnderdetermined
	}

	return Normal{A: aPrime / dPrime, B: bPrime / dPrime, C: cPrime / dPrime}, nil
}
