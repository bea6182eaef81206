package meteorplane

import (
	"math"
	"testing"

	"github.com/jhorak/meteorpath/coord"
)

func TestFitUnderdeterminedSinglePoint(t *testing.T) {
	if _, err := Fit([]float64{10}, []float64{20}); err != ErrUnderdetermined {
		t.Errorf("got err=%v, want ErrUnderdetermined", err)
	}
}

func TestFitUnderdeterminedMismatchedLengths(t *testing.T) {
	if _, err := Fit([]float64{10, 20}, []float64{5}); err != ErrUnderdetermined {
		t.Errorf("got err=%v, want ErrUnderdetermined", err)
	}
}

func TestFitRecoversKnownNormal(t *testing.T) {
	// Great circle normal to (0,0,1): the celestial equator.
	n := [3]float64{0, 0, 1}
	u := [3]float64{1, 0, 0}
	v := [3]float64{0, 1, 0}

	var ras, decs []float64
	for i := 0; i < 20; i++ {
		theta := float64(i) * 2 * math.Pi / 20
		px := math.Cos(theta)*u[0] + math.Sin(theta)*v[0]
		py := math.Cos(theta)*u[1] + math.Sin(theta)*v[1]
		pz := math.Cos(theta)*u[2] + math.Sin(theta)*v[2]
		ra, dec, err := coord.SolveGoniometry(px, py, pz)
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		ras = append(ras, ra)
		decs = append(decs, dec)
	}

	got, err := Fit(ras, decs)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	dot := got.A*n[0] + got.B*n[1] + got.C*n[2]
	if math.Abs(math.Abs(dot)-1.0) > 1e-6 {
		t.Errorf("fitted normal %+v not aligned with %v: dot=%v", got, n, dot)
	}
}

func TestFitWithNoiseStaysClose(t *testing.T) {
	n := [3]float64{0, 0, 1}
	u := [3]float64{1, 0, 0}
	v := [3]float64{0, 1, 0}
	sigma := 0.001

	var ras, decs []float64
	for i := 0; i < 30; i++ {
		theta := float64(i) * 2 * math.Pi / 30
		noise := sigma * math.Sin(float64(i)*7.0) // deterministic pseudo-noise
		px := math.Cos(theta)*u[0] + math.Sin(theta)*v[0] + noise
		py := math.Cos(theta)*u[1] + math.Sin(theta)*v[1]
		pz := math.Cos(theta)*u[2] + math.Sin(theta)*v[2]
		ra, dec, err := coord.SolveGoniometry(px, py, pz)
		if err != nil {
			t.Fatalf("unexpected: %v", err)
		}
		ras = append(ras, ra)
		decs = append(decs, dec)
	}

	got, err := Fit(ras, decs)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	dot := math.Abs(got.A*n[0] + got.B*n[1] + got.C*n[2])
	if dot < 1-2*sigma-1e-3 {
		t.Errorf("fitted normal diverged too far from true normal: dot=%v", dot)
	}
}
