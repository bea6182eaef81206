// Command meteorpath wires the whole pipeline end to end: read a
// detection file and a bound WCS plate solution from each of two
// stations, fit the meteor planes, solve the radiant and the merged
// trajectory, and emit a GPX track.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhorak/meteorpath/coord"
	gpxpkg "github.com/jhorak/meteorpath/gpx"
	"github.com/jhorak/meteorpath/meteor"
	"github.com/jhorak/meteorpath/observation"
	"github.com/jhorak/meteorpath/station"
	"github.com/jhorak/meteorpath/units"
	"github.com/jhorak/meteorpath/wcs"
)

type stationFlags struct {
	name                   string
	lat, lon, height, tz   float64
	detectionsPath         string
	wcsPath                string
}

func (s *stationFlags) register(prefix, def string) {
	flag.StringVar(&s.name, prefix+"-name", def, def+"'s name")
	flag.Float64Var(&s.lat, prefix+"-lat", 0, def+"'s geodetic latitude (degrees)")
	flag.Float64Var(&s.lon, prefix+"-lon", 0, def+"'s geodetic longitude (degrees)")
	flag.Float64Var(&s.height, prefix+"-height", 0, def+"'s height above sea level (meters)")
	flag.Float64Var(&s.tz, prefix+"-timezone", 0, def+"'s UTC offset (hours)")
	flag.StringVar(&s.detectionsPath, prefix+"-detections", "", def+"'s detection file path")
	flag.StringVar(&s.wcsPath, prefix+"-wcs", "", def+"'s FITS-header WCS file path")
}

func main() {
	var a, b stationFlags
	a.register("station-a", "first station")
	b.register("station-b", "second station")

	epoch := flag.String("epoch", "", "meteor epoch, local station time, e.g. 2018-10-08T22:03:54")
	outPath := flag.String("out", "meteor.gpx", "output GPX file path")
	flag.Parse()

	if err := run(a, b, *epoch, *outPath); err != nil {
		fmt.Fprintln(os.Stderr, "meteorpath:", err)
		os.Exit(1)
	}
}

func run(a, b stationFlags, epoch, outPath string) error {
	stA := station.New(station.Config{Observatory: a.name, LatDeg: a.lat, LonDeg: a.lon, HeightM: a.height, TimeZone: a.tz})
	stB := station.New(station.Config{Observatory: b.name, LatDeg: b.lat, LonDeg: b.lon, HeightM: b.height, TimeZone: b.tz})

	if err := bindWCS(&stA, a.wcsPath); err != nil {
		return fmt.Errorf("station A: %w", err)
	}
	if err := bindWCS(&stB, b.wcsPath); err != nil {
		return fmt.Errorf("station B: %w", err)
	}

	obsA, err := loadObservation(a.detectionsPath, stA.WCS)
	if err != nil {
		return fmt.Errorf("station A detections: %w", err)
	}
	obsB, err := loadObservation(b.detectionsPath, stB.WCS)
	if err != nil {
		return fmt.Errorf("station B detections: %w", err)
	}

	epochJD, err := parseEpoch(epoch, a.tz)
	if err != nil {
		return fmt.Errorf("epoch: %w", err)
	}

	m := &meteor.Meteor{
		StationA: &stA,
		StationB: &stB,
		ObsA:     obsA,
		ObsB:     obsB,
		EpochJD:  epochJD,
	}

	rad, err := m.Radiant()
	if err != nil {
		return fmt.Errorf("radiant: %w", err)
	}
	_, raH, raM, raS := units.AngleFromDegrees(rad.RADeg).HMS()
	decSign, decD, decAM, decAS := units.AngleFromDegrees(rad.DecDeg).DMS()
	decSignStr := "+"
	if decSign < 0 {
		decSignStr = "-"
	}
	fmt.Printf("radiant: RA=%02dh %02dm %05.2fs  Dec=%s%02d° %02d' %05.2f\"  Q=%.2f°\n",
		raH, raM, raS, decSignStr, decD, decAM, decAS, rad.QDeg)

	merged, err := m.Merged()
	if err != nil {
		return fmt.Errorf("trajectory: %w", err)
	}

	k, err := m.Kinematics()
	if err != nil {
		return fmt.Errorf("kinematics: %w", err)
	}
	fmt.Printf("velocity: mean=%.3f km/s  stddev=%.3f km/s\n", k.MeanVelocity().KmPerSec(), k.StdDevVelocity().KmPerSec())

	doc := gpxpkg.Document{
		Name:       "meteor",
		StationA:   gpxpkg.Waypoint{Name: a.name, LatDeg: a.lat, LonDeg: a.lon, HeightM: a.height},
		StationB:   gpxpkg.Waypoint{Name: b.name, LatDeg: b.lat, LonDeg: b.lon, HeightM: b.height},
		Trajectory: merged,
	}
	xmlBytes, err := gpxpkg.ToXML(gpxpkg.Build(doc))
	if err != nil {
		return fmt.Errorf("gpx: %w", err)
	}

	if err := os.WriteFile(outPath, xmlBytes, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s (%d trajectory points)\n", outPath, len(merged))
	return nil
}

// bindWCS loads a FITS-header plate solution and binds it to a station,
// if a path was given. A station with no bound WCS cannot have its
// detections converted from pixel to equatorial coordinates.
func bindWCS(st *station.Station, path string) error {
	if path == "" {
		return nil
	}
	solution, err := wcs.Open(path)
	if err != nil {
		return fmt.Errorf("loading WCS %s: %w", path, err)
	}
	st.SetWCS(solution, 0)
	return nil
}

// loadObservation parses a detection file's first meteor track and
// converts its pixel samples to equatorial coordinates through the
// station's bound plate solution.
func loadObservation(path string, solution coord.PlateSolution) (meteor.Observation, error) {
	if solution == nil {
		return meteor.Observation{}, fmt.Errorf("no WCS bound for %s", path)
	}

	parsed, err := observation.ParseFile(path)
	if err != nil {
		return meteor.Observation{}, err
	}
	if len(parsed.Tracks) == 0 {
		return meteor.Observation{}, fmt.Errorf("no meteor track found in %s", path)
	}
	track := parsed.Tracks[0]

	ra := make([]float64, len(track.Points))
	dec := make([]float64, len(track.Points))
	for i, p := range track.Points {
		ra[i], dec[i] = solution.PixelToEquatorial(p.X, p.Y)
	}
	return meteor.Observation{RADeg: ra, DecDeg: dec, TimesSec: track.Times}, nil
}

// parseEpoch parses a local-time timestamp and applies the station's
// time-zone offset to obtain a UTC Julian date.
func parseEpoch(epoch string, timeZoneHours float64) (float64, error) {
	t, err := time.Parse("2006-01-02T15:04:05", epoch)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", epoch, err)
	}
	t = t.Add(time.Duration(timeZoneHours * float64(time.Hour)))
	return coord.JulianDate(float64(t.Unix())), nil
}
