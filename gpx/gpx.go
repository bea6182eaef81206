// Package gpx emits a fixed GPX 1.1 document: one metadata element, two
// station waypoints, and two tracks (the computed merged trajectory and
// an optional reference "correct" segment), using
// github.com/tkrajina/gpxgo/gpx for the wire format.
package gpx

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/jhorak/meteorpath/trajectory"
)

// Waypoint is a labeled station position for the GPX metadata.
type Waypoint struct {
	Name           string
	LatDeg, LonDeg float64
	HeightM        float64
}

// Document is the input to Build: the two station waypoints, the
// computed merged trajectory, and an optional reference segment.
type Document struct {
	Name          string
	StationA      Waypoint
	StationB      Waypoint
	Trajectory    []trajectory.Point
	ReferenceName string
	ReferenceFrom *trajectory.Point
	ReferenceTo   *trajectory.Point
}

// Build constructs a *gpx.GPX from a Document. No timestamp-bearing
// field is populated: every field the library exposes for time stays at
// its zero value, so two builds from identical inputs serialize to
// identical bytes.
func Build(doc Document) *gpx.GPX {
	out := &gpx.GPX{
		Name:    doc.Name,
		Creator: "meteorpath",
	}

	out.AppendWaypoint(waypointToGPX(doc.StationA))
	out.AppendWaypoint(waypointToGPX(doc.StationB))

	if len(doc.Trajectory) > 0 {
		track := &gpx.GPXTrack{Name: "trajectory"}
		segment := new(gpx.GPXTrackSegment)
		for _, p := range doc.Trajectory {
			segment.AppendPoint(trajectoryPointToGPX(p))
		}
		track.AppendSegment(segment)
		out.AppendTrack(track)
	}

	if doc.ReferenceFrom != nil && doc.ReferenceTo != nil {
		name := doc.ReferenceName
		if name == "" {
			name = "reference"
		}
		track := &gpx.GPXTrack{Name: name}
		segment := new(gpx.GPXTrackSegment)
		segment.AppendPoint(trajectoryPointToGPX(*doc.ReferenceFrom))
		segment.AppendPoint(trajectoryPointToGPX(*doc.ReferenceTo))
		track.AppendSegment(segment)
		out.AppendTrack(track)
	}

	return out
}

// ToXML serializes a *gpx.GPX to GPX 1.1 bytes. It does no rounding of
// its own: the six-decimal latitude/longitude and one-decimal elevation
// rounding is applied by Build.
func ToXML(g *gpx.GPX) ([]byte, error) {
	b, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("gpx: serializing: %w", err)
	}
	return b, nil
}

func waypointToGPX(w Waypoint) *gpx.GPXPoint {
	pt := &gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  round6(w.LatDeg),
			Longitude: round6(w.LonDeg),
		},
		Name: w.Name,
	}
	pt.Elevation.SetValue(round1(w.HeightM))
	return pt
}

func trajectoryPointToGPX(p trajectory.Point) *gpx.GPXPoint {
	pt := &gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  round6(p.LatDeg),
			Longitude: round6(p.LonDeg),
		},
	}
	pt.Elevation.SetValue(round1(p.HeightM))
	return pt
}

func round6(v float64) float64 {
	return roundTo(v, 1e6)
}

func round1(v float64) float64 {
	return roundTo(v, 10)
}

func roundTo(v, scale float64) float64 {
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}
