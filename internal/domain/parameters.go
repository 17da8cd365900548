package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters is returned when simulation parameters fail validation
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// SimulationParameters are the tunables of the simulation that the editor
// needs to know about
type SimulationParameters struct {
	CellMaxToken           int     `json:"cell_max_token" toml:"cell_max_token"`
	CellMaxBonds           int     `json:"cell_max_bonds" toml:"cell_max_bonds"`
	CellMinDistance        float64 `json:"cell_min_distance" toml:"cell_min_distance"`
	CellMaxDistance        float64 `json:"cell_max_distance" toml:"cell_max_distance"`
	CellCreationEnergy     float64 `json:"cell_creation_energy" toml:"cell_creation_energy"`
	TokenCreationEnergy    float64 `json:"token_creation_energy" toml:"token_creation_energy"`
	TokenMemorySize        int     `json:"token_memory_size" toml:"token_memory_size"`
	ParticleCreationEnergy float64 `json:"particle_creation_energy" toml:"particle_creation_energy"`
}

// DefaultParameters returns the parameters of a fresh simulation
func DefaultParameters() SimulationParameters {
	return SimulationParameters{
		CellMaxToken:           3,
		CellMaxBonds:           6,
		CellMinDistance:        0.3,
		CellMaxDistance:        1.3,
		CellCreationEnergy:     100,
		TokenCreationEnergy:    60,
		TokenMemorySize:        256,
		ParticleCreationEnergy: 50,
	}
}

// Validate checks the parameters for consistency
func (p SimulationParameters) Validate() error {
	switch {
	case p.CellMaxToken < 0:
		return fmt.Errorf("%w: cell_max_token must not be negative", ErrInvalidParameters)
	case p.CellMaxBonds < 0 || p.CellMaxBonds > 6:
		return fmt.Errorf("%w: cell_max_bonds must be between 0 and 6", ErrInvalidParameters)
	case p.CellMinDistance <= 0:
		return fmt.Errorf("%w: cell_min_distance must be positive", ErrInvalidParameters)
	case p.CellMaxDistance < p.CellMinDistance:
		return fmt.Errorf("%w: cell_max_distance must not be below cell_min_distance", ErrInvalidParameters)
	case p.TokenMemorySize < 0:
		return fmt.Errorf("%w: token_memory_size must not be negative", ErrInvalidParameters)
	}
	return nil
}

// SimulationConfig describes the universe a simulation runs in
type SimulationConfig struct {
	UniverseSize IntVec2              `json:"universe_size" toml:"universe_size"`
	Parameters   SimulationParameters `json:"parameters" toml:"parameters"`
}

// DefaultSimulationConfig returns the configuration of a fresh simulation
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		UniverseSize: IntVec2{X: 600, Y: 300},
		Parameters:   DefaultParameters(),
	}
}

// Validate checks universe size and parameters
func (c SimulationConfig) Validate() error {
	if c.UniverseSize.X <= 0 || c.UniverseSize.Y <= 0 {
		return fmt.Errorf("%w: universe size must be positive", ErrInvalidParameters)
	}
	return c.Parameters.Validate()
}

// Simulation is the persisted state of a whole simulation
type Simulation struct {
	Config  SimulationConfig `json:"config"`
	Symbols SymbolTable      `json:"symbols"`
	Data    DataDescription  `json:"data"`
}
