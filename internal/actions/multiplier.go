package actions

import "alien/internal/domain"

// samePositionThreshold is the squared distance below which the first grid
// copy would land on the original and is therefore skipped
const samePositionThreshold = 1e-4

// RandomReplicas creates params.Copies copies of data, each centered at a
// uniformly random position inside the universe with the enabled
// perturbations applied
func RandomReplicas(data domain.DataDescription, params domain.RandomMultiplierParams, universe domain.IntVec2, rng NumberGenerator) []domain.Replica {
	if params.Copies <= 0 {
		return nil
	}
	center := data.Center()
	replicas := make([]domain.Replica, 0, params.Copies)
	for range params.Copies {
		target := domain.Vec2{
			X: rng.Real(0, float64(universe.X)),
			Y: rng.Real(0, float64(universe.Y)),
		}
		replica := domain.Replica{Data: data.Clone()}
		modifyDescription(&replica.Data, target.Sub(center),
			draw(params.VelX, rng), draw(params.VelY, rng), draw(params.AngularVel, rng))
		replica.Angle = draw(params.Angle, rng)
		replicas = append(replicas, replica)
	}
	return replicas
}

// GridReplicas lays out HorizontalNumber x VerticalNumber copies of data
// starting at InitialPos. Copy (0, 0) is left out when it would coincide
// with the original.
func GridReplicas(data domain.DataDescription, params domain.GridMultiplierParams) []domain.Replica {
	if params.HorizontalNumber <= 0 || params.VerticalNumber <= 0 {
		return nil
	}
	initialDelta := params.InitialPos.Sub(data.Center())

	var replicas []domain.Replica
	for i := range params.HorizontalNumber {
		for j := range params.VerticalNumber {
			if i == 0 && j == 0 && initialDelta.LengthSquared() < samePositionThreshold {
				continue
			}
			posDelta := initialDelta.Add(domain.Vec2{
				X: float64(i) * params.HorizontalInterval,
				Y: float64(j) * params.VerticalInterval,
			})
			replica := domain.Replica{Data: data.Clone()}
			modifyDescription(&replica.Data, posDelta,
				step(params.VelX, i, j), step(params.VelY, i, j), step(params.AngularVel, i, j))
			replica.Angle = step(params.Angle, i, j)
			replicas = append(replicas, replica)
		}
	}
	return replicas
}

func draw(r domain.Range, rng NumberGenerator) *float64 {
	if !r.Enabled {
		return nil
	}
	v := rng.Real(r.Min, r.Max)
	return &v
}

func step(inc domain.Increment, i, j int) *float64 {
	if !inc.Enabled {
		return nil
	}
	v := inc.At(i, j)
	return &v
}

// modifyDescription moves data by posDelta and adds the given velocity
// deltas. Particles have no angular velocity.
func modifyDescription(data *domain.DataDescription, posDelta domain.Vec2, velX, velY, angularVel *float64) {
	for ci := range data.Clusters {
		cluster := &data.Clusters[ci]
		cluster.Pos = cluster.Pos.Add(posDelta)
		if velX != nil {
			cluster.Vel.X += *velX
		}
		if velY != nil {
			cluster.Vel.Y += *velY
		}
		if angularVel != nil {
			cluster.AngularVel += *angularVel
		}
		for j := range cluster.Cells {
			cluster.Cells[j].Pos = cluster.Cells[j].Pos.Add(posDelta)
		}
	}
	for pi := range data.Particles {
		particle := &data.Particles[pi]
		particle.Pos = particle.Pos.Add(posDelta)
		if velX != nil {
			particle.Vel.X += *velX
		}
		if velY != nil {
			particle.Vel.Y += *velY
		}
	}
}
