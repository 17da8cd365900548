package domain

import "math"

// Vec2 is a position or velocity in universe coordinates
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * f
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// LengthSquared returns the squared euclidean length
func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

// Rotate returns v rotated counter-clockwise by the given angle in degrees
func (v Vec2) Rotate(degrees float64) Vec2 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// IntVec2 is an integral size, used for the universe dimensions
type IntVec2 struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// TokenDescription is a data packet travelling through cells
type TokenDescription struct {
	Energy float64 `json:"energy"`
	Data   []byte  `json:"data,omitempty"`
}

// CellMetadata holds user-facing annotations of a cell
type CellMetadata struct {
	Name  string `json:"name,omitempty"`
	Color int    `json:"color,omitempty"`
}

// CellDescription describes a single cell inside a cluster
type CellDescription struct {
	ID                uint64             `json:"id"`
	Pos               Vec2               `json:"pos"`
	Energy            float64            `json:"energy"`
	MaxConnections    int                `json:"max_connections"`
	Connections       []uint64           `json:"connections,omitempty"`
	TokenBlocked      bool               `json:"token_blocked"`
	TokenBranchNumber int                `json:"token_branch_number"`
	Tokens            []TokenDescription `json:"tokens,omitempty"`
	Metadata          CellMetadata       `json:"metadata"`
}

// ClusterMetadata holds user-facing annotations of a cluster
type ClusterMetadata struct {
	Name string `json:"name,omitempty"`
}

// ClusterDescription is a rigid group of connected cells sharing velocity
// and angular velocity. Angles are in degrees.
type ClusterDescription struct {
	ID         uint64            `json:"id"`
	Pos        Vec2              `json:"pos"`
	Vel        Vec2              `json:"vel"`
	Angle      float64           `json:"angle"`
	AngularVel float64           `json:"angular_vel"`
	Cells      []CellDescription `json:"cells"`
	Metadata   ClusterMetadata   `json:"metadata"`
}

// ParticleDescription is a free energy particle
type ParticleDescription struct {
	ID     uint64  `json:"id"`
	Pos    Vec2    `json:"pos"`
	Vel    Vec2    `json:"vel"`
	Energy float64 `json:"energy"`
}

// DataDescription is a snapshot of (part of) the entity graph
type DataDescription struct {
	Clusters  []ClusterDescription  `json:"clusters,omitempty"`
	Particles []ParticleDescription `json:"particles,omitempty"`
}

// IsEmpty reports whether the description holds no entities
func (d DataDescription) IsEmpty() bool {
	return len(d.Clusters) == 0 && len(d.Particles) == 0
}

// Clone returns a deep copy
func (d DataDescription) Clone() DataDescription {
	var result DataDescription
	if d.Clusters != nil {
		result.Clusters = make([]ClusterDescription, len(d.Clusters))
		for i, cluster := range d.Clusters {
			result.Clusters[i] = cluster.Clone()
		}
	}
	if d.Particles != nil {
		result.Particles = append([]ParticleDescription(nil), d.Particles...)
	}
	return result
}

// Center returns the mean position of all cells and particles
func (d DataDescription) Center() Vec2 {
	var sum Vec2
	count := 0
	for _, cluster := range d.Clusters {
		for _, cell := range cluster.Cells {
			sum = sum.Add(cell.Pos)
			count++
		}
	}
	for _, particle := range d.Particles {
		sum = sum.Add(particle.Pos)
		count++
	}
	if count == 0 {
		return Vec2{}
	}
	return sum.Scale(1 / float64(count))
}

// Translate moves every cluster, cell and particle by delta in place
func (d *DataDescription) Translate(delta Vec2) {
	for i := range d.Clusters {
		cluster := &d.Clusters[i]
		cluster.Pos = cluster.Pos.Add(delta)
		for j := range cluster.Cells {
			cluster.Cells[j].Pos = cluster.Cells[j].Pos.Add(delta)
		}
	}
	for i := range d.Particles {
		d.Particles[i].Pos = d.Particles[i].Pos.Add(delta)
	}
}

// Rotate turns the whole description around its center by the given angle
// in degrees. Cluster angles are advanced accordingly.
func (d *DataDescription) Rotate(degrees float64) {
	center := d.Center()
	turn := func(p Vec2) Vec2 { return p.Sub(center).Rotate(degrees).Add(center) }
	for i := range d.Clusters {
		cluster := &d.Clusters[i]
		cluster.Pos = turn(cluster.Pos)
		cluster.Angle += degrees
		for j := range cluster.Cells {
			cluster.Cells[j].Pos = turn(cluster.Cells[j].Pos)
		}
	}
	for i := range d.Particles {
		d.Particles[i].Pos = turn(d.Particles[i].Pos)
	}
}

// CellCount returns the number of cells over all clusters
func (d DataDescription) CellCount() int {
	count := 0
	for _, cluster := range d.Clusters {
		count += len(cluster.Cells)
	}
	return count
}

// Clone returns a deep copy of the cluster
func (c ClusterDescription) Clone() ClusterDescription {
	result := c
	if c.Cells != nil {
		result.Cells = make([]CellDescription, len(c.Cells))
		for i, cell := range c.Cells {
			result.Cells[i] = cell.Clone()
		}
	}
	return result
}

// Clone returns a deep copy of the cell
func (c CellDescription) Clone() CellDescription {
	result := c
	if c.Connections != nil {
		result.Connections = append([]uint64(nil), c.Connections...)
	}
	if c.Tokens != nil {
		result.Tokens = make([]TokenDescription, len(c.Tokens))
		for i, token := range c.Tokens {
			result.Tokens[i] = token.Clone()
		}
	}
	return result
}

// Clone returns a deep copy of the token
func (t TokenDescription) Clone() TokenDescription {
	result := t
	if t.Data != nil {
		result.Data = append([]byte(nil), t.Data...)
	}
	return result
}

// Replica is a copy produced by a multiplier together with an optional
// rotation to apply around its center
type Replica struct {
	Data  DataDescription
	Angle *float64
}
