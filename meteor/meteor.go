// Package meteor owns the top-level Meteor aggregate: two stations, two
// per-station observations, and the derived radiant, Q angle,
// per-station trajectories, merged trajectory, and kinematics — computed
// once and cached, following the lazy single-shot memoization pattern
// used elsewhere in this module for derived astronomical quantities.
package meteor

import (
	"fmt"

	"github.com/jhorak/meteorpath/meteorplane"
	"github.com/jhorak/meteorpath/radiant"
	"github.com/jhorak/meteorpath/station"
	"github.com/jhorak/meteorpath/trajectory"
)

// Observation is one station's sequence of (RA, Dec) detections for a
// single meteor, with per-point observation times (seconds since the
// meteor epoch).
type Observation struct {
	RADeg, DecDeg []float64
	TimesSec      []float64
}

// Meteor is the aggregate owning both stations (by reference — Stations
// are shared immutably across meteors) and both
// per-station observations. Every derived field is computed lazily on
// first access and cached; Meteor owns its own caches, Stations own
// nothing derived.
type Meteor struct {
	StationA *station.Station
	StationB *station.Station
	ObsA     Observation
	ObsB     Observation
	EpochJD  float64 // UTC Julian date of the meteor epoch

	ready      bool
	planeA     meteorplane.Normal
	planeB     meteorplane.Normal
	rad        radiant.Result
	trackA     []trajectory.Point
	trackB     []trajectory.Point
	merged     []trajectory.Point
	kinematics trajectory.KinematicsSummary
	err        error
}

// init computes and caches every derived field. Called lazily on first
// access to any of them.
func (m *Meteor) init() {
	if m.ready {
		return
	}
	m.ready = true

	planeA, err := meteorplane.Fit(m.ObsA.RADeg, m.ObsA.DecDeg)
	if err != nil {
		m.err = fmt.Errorf("meteor: station A plane: %w", err)
		return
	}
	planeB, err := meteorplane.Fit(m.ObsB.RADeg, m.ObsB.DecDeg)
	if err != nil {
		m.err = fmt.Errorf("meteor: station B plane: %w", err)
		return
	}
	m.planeA, m.planeB = planeA, planeB

	rad, err := radiant.Solve(planeA, planeB, m.StationA.LatDeg, m.StationA.LonDeg, m.StationB.LatDeg, m.StationB.LonDeg, m.EpochJD)
	if err != nil {
		m.err = fmt.Errorf("meteor: radiant: %w", err)
		return
	}
	m.rad = rad

	sA := m.StationA.GeocentricLSTVector(m.EpochJD)
	sB := m.StationB.GeocentricLSTVector(m.EpochJD)

	trackA, err := trajectory.SolveTrack(planeA, planeB, sA, sB, m.ObsA.RADeg, m.ObsA.DecDeg, m.EpochJD, m.ObsA.TimesSec)
	if err != nil {
		m.err = fmt.Errorf("meteor: station A trajectory: %w", err)
		return
	}
	trackB, err := trajectory.SolveTrack(planeB, planeA, sB, sA, m.ObsB.RADeg, m.ObsB.DecDeg, m.EpochJD, m.ObsB.TimesSec)
	if err != nil {
		m.err = fmt.Errorf("meteor: station B trajectory: %w", err)
		return
	}
	m.trackA, m.trackB = trackA, trackB
	m.merged = trajectory.Merge(trackA, trackB)
	m.kinematics = trajectory.Kinematics(m.merged)
}

// Radiant returns the solved radiant direction and Q angle.
func (m *Meteor) Radiant() (radiant.Result, error) {
	m.init()
	return m.rad, m.err
}

// TrajectoryA returns station A's reconstructed per-point trajectory.
func (m *Meteor) TrajectoryA() ([]trajectory.Point, error) {
	m.init()
	return m.trackA, m.err
}

// TrajectoryB returns station B's reconstructed per-point trajectory.
func (m *Meteor) TrajectoryB() ([]trajectory.Point, error) {
	m.init()
	return m.trackB, m.err
}

// Merged returns the altitude-ordered merge of both stations'
// trajectories.
func (m *Meteor) Merged() ([]trajectory.Point, error) {
	m.init()
	return m.merged, m.err
}

// Kinematics returns the merged trajectory's distance/velocity profile.
func (m *Meteor) Kinematics() (trajectory.KinematicsSummary, error) {
	m.init()
	return m.kinematics, m.err
}

// PlaneA returns station A's fitted meteor-plane normal.
func (m *Meteor) PlaneA() (meteorplane.Normal, error) {
	m.init()
	return m.planeA, m.err
}

// PlaneB returns station B's fitted meteor-plane normal.
func (m *Meteor) PlaneB() (meteorplane.Normal, error) {
	m.init()
	return m.planeB, m.err
}
