package wcs

import "math"

const deg2rad = math.Pi / 180.0
const rad2deg = 180.0 / math.Pi

// PixelToEquatorial deprojects a pixel coordinate through the tangent
// (gnomonic) plane defined by this solution, returning (RA, Dec) in
// degrees. This is the standard TAN WCS projection: the CD matrix first
// maps pixel offsets to intermediate world coordinates in the tangent
// plane, which are then deprojected onto the sphere about the reference
// point (CRVAL1, CRVAL2).
func (s Solution) PixelToEquatorial(x, y float64) (raDeg, decDeg float64) {
	dx := x - s.CRPIX1
	dy := y - s.CRPIX2

	xiDeg := s.CD1_1*dx + s.CD1_2*dy
	etaDeg := s.CD2_1*dx + s.CD2_2*dy

	xi := xiDeg * deg2rad
	eta := etaDeg * deg2rad

	ra0 := s.CRVAL1 * deg2rad
	dec0 := s.CRVAL2 * deg2rad

	cosDec0 := math.Cos(dec0)
	sinDec0 := math.Sin(dec0)

	denom := cosDec0 - eta*sinDec0
	ra := ra0 + math.Atan2(xi, denom)

	dist := math.Sqrt(xi*xi + denom*denom)
	dec := math.Atan2(sinDec0+eta*cosDec0, dist)

	raDeg = math.Mod(ra*rad2deg+360.0, 360.0)
	decDeg = dec * rad2deg
	return
}

// EquatorialToPixel is the inverse projection: given (RA, Dec) in
// degrees, returns the pixel coordinate that would deproject to it
// through this solution. The CD matrix must be invertible; callers
// constructing a Solution from a real plate solve always get one.
func (s Solution) EquatorialToPixel(raDeg, decDeg float64) (x, y float64, ok bool) {
	ra := raDeg * deg2rad
	dec := decDeg * deg2rad
	ra0 := s.CRVAL1 * deg2rad
	dec0 := s.CRVAL2 * deg2rad

	cosDec := math.Cos(dec)
	sinDec := math.Sin(dec)
	cosDec0 := math.Cos(dec0)
	sinDec0 := math.Sin(dec0)
	cosDRA := math.Cos(ra - ra0)
	sinDRA := math.Sin(ra - ra0)

	denom := sinDec*sinDec0 + cosDec*cosDec0*cosDRA
	if denom == 0 {
		return 0, 0, false
	}

	xi := (cosDec * sinDRA) / denom * rad2deg
	eta := (sinDec*cosDec0 - cosDec*sinDec0*cosDRA) / denom * rad2deg

	det := s.CD1_1*s.CD2_2 - s.CD1_2*s.CD2_1
	if det == 0 {
		return 0, 0, false
	}

	dx := (s.CD2_2*xi - s.CD1_2*eta) / det
	dy := (-s.CD2_1*xi + s.CD1_1*eta) / det

	return s.CRPIX1 + dx, s.CRPIX2 + dy, true
}
