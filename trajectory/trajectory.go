// Package trajectory reconstructs the physical meteor path from the two
// stations' fitted meteor planes and per-point sight-line directions
// (Ceplecha eqn. 18), merges the two per-station trajectories, and
// derives secant-from-first-point kinematics.
package trajectory

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/jhorak/meteorpath/coord"
	"github.com/jhorak/meteorpath/geometry"
	"github.com/jhorak/meteorpath/meteorplane"
)

// ErrIllConditioned is returned when more than half of a station's
// points fail the per-point 3-plane solve.
var ErrIllConditioned = errors.New("trajectory: ill-conditioned point solve")

// meanEarthRadiusM is a spherical approximation used only for the coarse
// ground-crossing sanity check in groundRangeM; the actual geodetic shape
// is already handled exactly by coord.GeodeticToGeocentric/GeocentricToGeodetic.
const meanEarthRadiusM = 6371000.0

// groundRangeM returns the signed distance (meters) from ownStation, along
// the sight-line unit vector (xi, eta, zeta), to the nearer point where
// that line crosses Earth's mean-radius sphere. ok is false when the line
// misses the sphere entirely. For a station looking up at a meteor the
// crossing usually lies behind the station, so nearM is then negative.
func groundRangeM(ownStation [3]float64, xi, eta, zeta float64) (nearM float64, ok bool) {
	center := [3]float64{-ownStation[0], -ownStation[1], -ownStation[2]}
	near, _ := geometry.IntersectLineSphere([3]float64{xi, eta, zeta}, center, meanEarthRadiusM)
	if math.IsNaN(near) {
		return 0, false
	}
	return near, true
}

// Point is a single reconstructed trajectory point, in both geocentric
// (X, Y, Z meters) and geodetic (lat, lon, height) form, tagged with
// its observation time in seconds.
type Point struct {
	X, Y, Z        float64
	LatDeg, LonDeg float64
	HeightM        float64
	TimeSec        float64
}

// stationPlane builds the fixed station plane:
// normal n, d = -n·s where s is the station's geocentric-LST vector.
func stationPlane(n meteorplane.Normal, s [3]float64) geometry.Plane {
	a, b, c := n.A, n.B, n.C
	d := -(a*s[0] + b*s[1] + c*s[2])
	return geometry.Plane{A: a, B: b, C: c, D: d}
}

// normalPlane builds the normal plane through the line from station s to
// point, orthogonal to the station plane with normal (a, b, c), per
// Ceplecha eqn. 18:
//
//	n_N = (η·c − ζ·b, ζ·a − ξ·c, ξ·b − η·a), d_N = −n_N·s
//
// where (ξ, η, ζ) is the unit sight-line direction from the station to
// the observed point.
func normalPlane(xi, eta, zeta, a, b, c float64, s [3]float64) geometry.Plane {
	nx := eta*c - zeta*b
	ny := zeta*a - xi*c
	nz := xi*b - eta*a
	d := -(nx*s[0] + ny*s[1] + nz*s[2])
	return geometry.Plane{A: nx, B: ny, C: nz, D: d}
}

// SolvePoint reconstructs one trajectory point observed from `own`'s
// sight line, given both stations' fixed plane normals and geocentric
// LST vectors, the observed (RA, Dec) in degrees, the meteor epoch as a
// UTC Julian date, and the time tag to carry through.
//
// ownPlane/ownStation is the observing station's own plane and
// position (used to build the per-point normal plane via eqn. 18);
// otherPlane/otherStation is the other station's fixed plane.
func SolvePoint(
	ownPlane, otherPlane meteorplane.Normal,
	ownStation, otherStation [3]float64,
	raDeg, decDeg, jdUTC, timeSec float64,
) (Point, error) {
	xi, eta, zeta := coord.EquatorialToUnitVector(raDeg, decDeg)

	pA := stationPlane(ownPlane, ownStation)
	pB := stationPlane(otherPlane, otherStation)
	pN := normalPlane(xi, eta, zeta, ownPlane.A, ownPlane.B, ownPlane.C, ownStation)

	x, y, z, err := geometry.SolvePlanes3(pA, pB, pN)
	if err != nil {
		return Point{}, fmt.Errorf("trajectory: point solve: %w", err)
	}

	gmst := coord.GMSTDegrees(jdUTC)
	latDeg, lonSidereal, heightM := coord.GeocentricToGeodetic(x, y, z)
	lonDeg := math.Mod(lonSidereal-gmst+360.0, 360.0)

	// Re-forward-convert through the true geodetic longitude to store
	// the geocentric form consistently with the geodetic form.
	xr, yr, zr := coord.GeodeticToGeocentric(latDeg, lonDeg, heightM)

	if nearM, ok := groundRangeM(ownStation, xi, eta, zeta); ok {
		// x, y, z (not the re-forward-converted xr, yr, zr) share
		// ownStation's instantaneous-equatorial frame.
		distM := math.Sqrt(
			(x-ownStation[0])*(x-ownStation[0]) +
				(y-ownStation[1])*(y-ownStation[1]) +
				(z-ownStation[2])*(z-ownStation[2]))
		if nearM > 0 && distM > nearM {
			log.WithFields(log.Fields{
				"distance_m":     distM,
				"ground_range_m": nearM,
			}).Warn("trajectory: reconstructed point lies beyond the sight line's ground crossing")
		}
	}

	return Point{
		X: xr, Y: yr, Z: zr,
		LatDeg: latDeg, LonDeg: lonDeg, HeightM: heightM,
		TimeSec: timeSec,
	}, nil
}

// SolveTrack reconstructs every point observed from one station,
// dropping points whose 3-plane solve fails. If more than half of the
// points drop, the whole track fails with ErrIllConditioned.
func SolveTrack(
	ownPlane, otherPlane meteorplane.Normal,
	ownStation, otherStation [3]float64,
	raDeg, decDeg []float64,
	jdUTC float64,
	timesSec []float64,
) ([]Point, error) {
	if len(raDeg) != len(decDeg) || len(raDeg) != len(timesSec) {
		return nil, fmt.Errorf("trajectory: mismatched input lengths: %w", ErrIllConditioned)
	}

	points := make([]Point, 0, len(raDeg))
	dropped := 0
	for i := range raDeg {
		p, err := SolvePoint(ownPlane, otherPlane, ownStation, otherStation, raDeg[i], decDeg[i], jdUTC, timesSec[i])
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"index":    i,
				"time_sec": timesSec[i],
			}).Warn("trajectory: dropping point, 3-plane solve failed")
			dropped++
			continue
		}
		points = append(points, p)
	}

	if len(raDeg) > 0 && dropped*2 > len(raDeg) {
		return nil, ErrIllConditioned
	}

	return points, nil
}
