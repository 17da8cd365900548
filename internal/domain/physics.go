package domain

import "math"

// TangentialVelocity returns the velocity of a point at relPos (relative to
// the cluster center) of a cluster moving with vel and rotating with
// angularVel degrees per time step
func TangentialVelocity(relPos, vel Vec2, angularVel float64) Vec2 {
	omega := angularVel * math.Pi / 180
	return Vec2{vel.X - relPos.Y*omega, vel.Y + relPos.X*omega}
}

// MonitorData holds aggregate statistics of the entity graph
type MonitorData struct {
	NumClusters                  int
	NumCells                     int
	NumParticles                 int
	NumTokens                    int
	TotalInternalEnergy          float64
	TotalLinearKineticEnergy     float64
	TotalRotationalKineticEnergy float64
}

// Measure computes monitor statistics of a description. Every cell has unit
// mass; the moment of inertia is taken around the cluster center.
func Measure(data DataDescription) MonitorData {
	var result MonitorData
	result.NumClusters = len(data.Clusters)
	for _, cluster := range data.Clusters {
		mass := float64(len(cluster.Cells))
		inertia := 0.0
		for _, cell := range cluster.Cells {
			result.NumCells++
			result.NumTokens += len(cell.Tokens)
			result.TotalInternalEnergy += cell.Energy
			for _, token := range cell.Tokens {
				result.TotalInternalEnergy += token.Energy
			}
			inertia += cell.Pos.Sub(cluster.Pos).LengthSquared()
		}
		omega := cluster.AngularVel * math.Pi / 180
		result.TotalLinearKineticEnergy += 0.5 * mass * cluster.Vel.LengthSquared()
		result.TotalRotationalKineticEnergy += 0.5 * inertia * omega * omega
	}
	for _, particle := range data.Particles {
		result.NumParticles++
		result.TotalInternalEnergy += particle.Energy
	}
	return result
}
