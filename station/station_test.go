package station

import (
	"math"
	"testing"

	"github.com/jhorak/meteorpath/coord"
)

func TestGeocentricIsPrecomputedOnce(t *testing.T) {
	s := Station{LatDeg: 49.9055, LonDeg: 14.7810, HeightM: 524.0}
	a := s.Geocentric()
	b := s.Geocentric()
	if a != b {
		t.Errorf("geocentric vector changed between calls: %v vs %v", a, b)
	}

	wantX, wantY, wantZ := coord.GeodeticToGeocentric(49.9055, 14.7810, 524.0)
	if math.Abs(a[0]-wantX) > 1e-6 || math.Abs(a[1]-wantY) > 1e-6 || math.Abs(a[2]-wantZ) > 1e-6 {
		t.Errorf("got %v, want (%v,%v,%v)", a, wantX, wantY, wantZ)
	}
}

func TestGeocentricLSTVectorUsesLongitudeSubstitution(t *testing.T) {
	s := Station{LatDeg: 49.9055, LonDeg: 14.7810, HeightM: 524.0}
	jd := coord.JulianDate(1700000000)
	v := s.GeocentricLSTVector(jd)

	lst := coord.LSTDegrees(s.LonDeg, jd)
	wantX, wantY, wantZ := coord.GeodeticToGeocentric(s.LatDeg, lst, s.HeightM)
	if math.Abs(v[0]-wantX) > 1e-6 || math.Abs(v[1]-wantY) > 1e-6 || math.Abs(v[2]-wantZ) > 1e-6 {
		t.Errorf("got %v, want (%v,%v,%v)", v, wantX, wantY, wantZ)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := Config{Observatory: "Ondřejov", LatDeg: 49.9055, LonDeg: 14.7810, HeightM: 524.0, TimeZone: 1.0}
	s := New(cfg)
	if s.Name != "Ondřejov" || s.TimeZone != 1.0 {
		t.Errorf("unexpected station: %+v", s)
	}
}

func TestSetWCSReplacesWholeSubRecord(t *testing.T) {
	s := Station{}
	s.SetWCS(fakeSolution{}, 2458765.5)
	if s.WCS == nil || s.WCSTime != 2458765.5 {
		t.Errorf("SetWCS did not bind: %+v", s)
	}
}

type fakeSolution struct{}

func (fakeSolution) PixelToEquatorial(x, y float64) (float64, float64) { return x, y }
