package domain

// Range is an optional perturbation drawn uniformly from [Min, Max]
type Range struct {
	Enabled bool    `toml:"enabled"`
	Min     float64 `toml:"min"`
	Max     float64 `toml:"max"`
}

// RandomMultiplierParams configures random replication of the selection
type RandomMultiplierParams struct {
	Copies     int   `toml:"copies"`
	VelX       Range `toml:"vel_x"`
	VelY       Range `toml:"vel_y"`
	Angle      Range `toml:"angle"`
	AngularVel Range `toml:"angular_vel"`
}

// Increment is an optional grid perturbation: value of copy (i, j) is
// Initial + i*Horizontal + j*Vertical
type Increment struct {
	Enabled    bool    `toml:"enabled"`
	Initial    float64 `toml:"initial"`
	Horizontal float64 `toml:"horizontal"`
	Vertical   float64 `toml:"vertical"`
}

// At returns the value for grid cell (i, j)
func (inc Increment) At(i, j int) float64 {
	return inc.Initial + float64(i)*inc.Horizontal + float64(j)*inc.Vertical
}

// GridMultiplierParams configures grid replication of the selection
type GridMultiplierParams struct {
	InitialPos         Vec2      `toml:"initial_pos"`
	HorizontalNumber   int       `toml:"horizontal_number"`
	VerticalNumber     int       `toml:"vertical_number"`
	HorizontalInterval float64   `toml:"horizontal_interval"`
	VerticalInterval   float64   `toml:"vertical_interval"`
	VelX               Increment `toml:"vel_x"`
	VelY               Increment `toml:"vel_y"`
	Angle              Increment `toml:"angle"`
	AngularVel         Increment `toml:"angular_vel"`
}

// RectangleParams configures the rectangle cluster generator
type RectangleParams struct {
	Width    int     `toml:"width"`
	Height   int     `toml:"height"`
	Distance float64 `toml:"distance"`
	Energy   float64 `toml:"energy"`
}

// HexagonParams configures the hexagon cluster generator
type HexagonParams struct {
	Layers   int     `toml:"layers"`
	Distance float64 `toml:"distance"`
	Energy   float64 `toml:"energy"`
}

// ParticlesParams configures the random particle spray
type ParticlesParams struct {
	TotalEnergy          float64 `toml:"total_energy"`
	MaxEnergyPerParticle float64 `toml:"max_energy_per_particle"`
}
