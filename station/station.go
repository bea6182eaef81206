// Package station models an observing site: its geodetic position, the
// geocentric Cartesian vector precomputed from it, and an optional bound
// plate solution for a fixed camera.
package station

import (
	"github.com/jhorak/meteorpath/coord"
)

// Station is an observing site. It is a value type: mutation is limited
// to SetWCS, which replaces the whole WCS sub-record rather than mutating
// it in place. There is no time setter; the epoch is passed to
// GeocentricLSTVector on each call.
type Station struct {
	Name     string
	LatDeg   float64
	LonDeg   float64
	HeightM  float64
	TimeZone float64 // hours, added to local time to obtain UTC

	WCS     coord.PlateSolution
	WCSTime float64 // UTC Julian date the bound WCS was solved at

	geocentric [3]float64
	ready      bool
}

// init precomputes the geocentric Cartesian vector from the geodetic
// triple. Called lazily on first use.
func (s *Station) init() {
	if s.ready {
		return
	}
	s.ready = true
	x, y, z := coord.GeodeticToGeocentric(s.LatDeg, s.LonDeg, s.HeightM)
	s.geocentric = [3]float64{x, y, z}
}

// Geocentric returns the station's fixed geocentric Cartesian vector
// (meters), precomputed once from its geodetic position.
func (s *Station) Geocentric() [3]float64 {
	s.init()
	return s.geocentric
}

// GeocentricLSTVector recomputes the geodetic→geocentric formula with
// local sidereal time (degrees) substituted for longitude: this is the
// vector that appears in Ceplecha's plane-intersection equations, since
// it expresses the station's position in the instantaneous (rather than
// Earth-fixed) equatorial frame at the meteor epoch.
func (s *Station) GeocentricLSTVector(tUTC float64) [3]float64 {
	lst := coord.LSTDegrees(s.LonDeg, tUTC)
	x, y, z := coord.GeodeticToGeocentric(s.LatDeg, lst, s.HeightM)
	return [3]float64{x, y, z}
}

// SetWCS rebinds the station's fixed-camera plate solution and its
// reference instant, replacing the whole sub-record.
func (s *Station) SetWCS(solution coord.PlateSolution, wcsTimeJD float64) {
	s.WCS = solution
	s.WCSTime = wcsTimeJD
}

// Config mirrors the host's configuration surface for a single station
// plain scalar fields, no parsing logic. The host is
// responsible for populating these from flags, TOML, or environment.
type Config struct {
	Observatory string
	LatDeg      float64
	LonDeg      float64
	HeightM     float64
	TimeZone    float64
	WCSPath     string
	WCSTime     float64
}

// New builds a Station from a Config, with no plate solution bound.
func New(cfg Config) Station {
	return Station{
		Name:     cfg.Observatory,
		LatDeg:   cfg.LatDeg,
		LonDeg:   cfg.LonDeg,
		HeightM:  cfg.HeightM,
		TimeZone: cfg.TimeZone,
	}
}
