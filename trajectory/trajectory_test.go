package trajectory

import (
	"math"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/jhorak/meteorpath/coord"
	"github.com/jhorak/meteorpath/meteorplane"
	"github.com/jhorak/meteorpath/station"
)

func TestSolveTrackAndKinematics(t *testing.T) {
	stA := station.Station{LatDeg: 49.9055, LonDeg: 14.7810, HeightM: 524.0}
	stB := station.Station{LatDeg: 49.1097, LonDeg: 15.2006, HeightM: 656.0}

	jd := coord.JulianDate(1700000000)
	sA := stA.GeocentricLSTVector(jd)
	sB := stB.GeocentricLSTVector(jd)

	// Synthesize a short track for each station and fit a plane through
	// each (the exact physical consistency of the synthetic scene is not
	// the point here; the point is exercising the 3-plane solve and
	// merge/kinematics machinery end to end). The two tracks differ in
	// slope so the two station planes are not parallel, which would make
	// every 3-plane solve degenerate.
	var ras, decs, decsB, times []float64
	for i := 0; i < 10; i++ {
		ra := 100.0 + float64(i)*0.05
		dec := 40.0 + float64(i)*0.02
		ras = append(ras, ra)
		decs = append(decs, dec)
		decsB = append(decsB, 40.0+float64(i)*0.05)
		times = append(times, float64(i)*0.1)
	}

	planeA, err := meteorplane.Fit(ras, decs)
	if err != nil {
		t.Fatalf("fit A: %v", err)
	}
	planeB, err := meteorplane.Fit(ras, decsB)
	if err != nil {
		t.Fatalf("fit B: %v", err)
	}

	points, err := SolveTrack(planeA, planeB, sA, sB, ras, decs, jd, times)
	if err != nil {
		t.Fatalf("solve track: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("expected some points")
	}

	k := Kinematics(points)
	for i := 1; i < len(k.VelocitiesMPS); i++ {
		if points[i].TimeSec <= points[0].TimeSec {
			continue
		}
		if math.IsNaN(k.VelocitiesMPS[i]) {
			t.Errorf("velocity[%d] is NaN", i)
		}
	}
}

func TestMergeIsNonIncreasing(t *testing.T) {
	a := []Point{{HeightM: 100}, {HeightM: 80}, {HeightM: 50}}
	b := []Point{{HeightM: 95}, {HeightM: 60}, {HeightM: 10}}

	merged := Merge(a, b)
	if len(merged) != len(a)+len(b) {
		t.Fatalf("merged length: got %d, want %d", len(merged), len(a)+len(b))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].HeightM > merged[i-1].HeightM {
			t.Errorf("merge not non-increasing at %d: %v > %v", i, merged[i].HeightM, merged[i-1].HeightM)
		}
	}
}

func TestMergeHandlesUnequalLengths(t *testing.T) {
	a := []Point{{HeightM: 100}}
	b := []Point{{HeightM: 90}, {HeightM: 80}, {HeightM: 70}, {HeightM: 60}}

	merged := Merge(a, b)
	if len(merged) != 5 {
		t.Fatalf("merged length: got %d, want 5", len(merged))
	}
	for i := 1; i < len(merged); i++ {
		if merged[i].HeightM > merged[i-1].HeightM {
			t.Errorf("merge not non-increasing at %d", i)
		}
	}
}

func TestKinematicsVelocityMonotoneDenominator(t *testing.T) {
	points := []Point{
		{X: 0, Y: 0, Z: 0, TimeSec: 0},
		{X: 100, Y: 0, Z: 0, TimeSec: 1},
		{X: 300, Y: 0, Z: 0, TimeSec: 2.5},
		{X: 700, Y: 0, Z: 0, TimeSec: 5},
	}
	k := Kinematics(points)

	for i := 2; i < len(points); i++ {
		dtPrev := points[i-1].TimeSec - points[0].TimeSec
		dtCur := points[i].TimeSec - points[0].TimeSec
		if dtCur <= dtPrev {
			t.Fatalf("test fixture invalid: denominators not increasing")
		}
	}
	if k.VelocitiesMPS[1] != 100.0 {
		t.Errorf("velocity[1]: got %v, want 100", k.VelocitiesMPS[1])
	}
	if got := k.MeanVelocity().KmPerSec(); got <= 0 {
		t.Errorf("mean velocity: got %v km/s, want > 0", got)
	}
}

// TestSolveTrackLogsDroppedPoints feeds SolveTrack a station/plane
// configuration that is degenerate for every point (mirroring
// TestSolvePointIllConditionedOnDegeneratePlanes), so every point is
// dropped and the track ultimately fails with ErrIllConditioned. It
// verifies each drop is logged before that failure is returned.
func TestSolveTrackLogsDroppedPoints(t *testing.T) {
	hook := logtest.NewGlobal()
	defer log.StandardLogger().ReplaceHooks(make(log.LevelHooks))

	sA := [3]float64{1e7, 0, 0}
	sB := [3]float64{0, 1e7, 0}
	samePlane := meteorplane.Normal{A: 1, B: 0, C: 0}

	ras := []float64{0, 10, 20}
	decs := []float64{0, 5, -5}
	times := []float64{0, 0.1, 0.2}
	jd := coord.JulianDate(1700000000)

	_, err := SolveTrack(samePlane, samePlane, sA, sB, ras, decs, jd, times)
	if err == nil {
		t.Fatal("expected ErrIllConditioned once every point is dropped")
	}

	var warnings int
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			warnings++
		}
	}
	if warnings != len(ras) {
		t.Errorf("warnings logged: got %d, want %d", warnings, len(ras))
	}
}

func TestSolvePointIllConditionedOnDegeneratePlanes(t *testing.T) {
	sA := [3]float64{1e7, 0, 0}
	sB := [3]float64{0, 1e7, 0}
	samePlane := meteorplane.Normal{A: 1, B: 0, C: 0}

	_, err := SolvePoint(samePlane, samePlane, sA, sB, 0, 0, coord.JulianDate(1700000000), 0)
	if err == nil {
		t.Fatal("expected an error for a degenerate plane configuration")
	}
}
