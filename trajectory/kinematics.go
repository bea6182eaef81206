package trajectory

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/jhorak/meteorpath/units"
)

// KinematicsSummary is the per-point velocity profile and its dispersion
// diagnostic. It is informational only: it never feeds back into the
// trajectory or radiant solve.
type KinematicsSummary struct {
	DistancesM        []float64
	VelocitiesMPS     []float64
	MeanVelocityMPS   float64
	StdDevVelocityMPS float64
}

// Kinematics computes, for a single station's reconstructed track,
// Euclidean distance from the first point (geocentric meters) and the
// secant-from-first-point velocity at each index i >= 1:
// velocity(i) = distance(i) / (t_i - t_0).
//
// The secant-from-origin formulation is used instead of
// consecutive-point differencing because meteor sampling is sparse
// enough that consecutive differences are noisy near the endpoints.
func Kinematics(points []Point) KinematicsSummary {
	if len(points) == 0 {
		return KinematicsSummary{}
	}

	first := points[0]
	distances := make([]float64, len(points))
	velocities := make([]float64, len(points))

	for i, p := range points {
		dx := p.X - first.X
		dy := p.Y - first.Y
		dz := p.Z - first.Z
		distances[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)

		if i == 0 {
			continue
		}
		dt := p.TimeSec - first.TimeSec
		if dt == 0 {
			velocities[i] = math.NaN()
			continue
		}
		velocities[i] = distances[i] / dt
	}

	summary := KinematicsSummary{DistancesM: distances, VelocitiesMPS: velocities}

	if len(velocities) > 1 {
		sample := velocities[1:]
		if mean, err := stats.Mean(stats.Float64Data(sample)); err == nil {
			summary.MeanVelocityMPS = mean
		}
		if sd, err := stats.StandardDeviation(stats.Float64Data(sample)); err == nil {
			summary.StdDevVelocityMPS = sd
		}
	}

	return summary
}

// MeanVelocity returns the velocity profile's mean as a units.Velocity.
func (k KinematicsSummary) MeanVelocity() units.Velocity {
	return units.NewVelocity(k.MeanVelocityMPS)
}

// StdDevVelocity returns the velocity profile's dispersion as a
// units.Velocity.
func (k KinematicsSummary) StdDevVelocity() units.Velocity {
	return units.NewVelocity(k.StdDevVelocityMPS)
}
