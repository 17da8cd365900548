package serializer

import (
	"os"
	"path/filepath"
	"testing"

	"alien/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collection() domain.DataDescription {
	return domain.DataDescription{
		Clusters: []domain.ClusterDescription{{
			ID:         1,
			Pos:        domain.Vec2{X: 3, Y: 4},
			Vel:        domain.Vec2{X: 0.1},
			AngularVel: 2,
			Cells: []domain.CellDescription{{
				ID:     2,
				Pos:    domain.Vec2{X: 3, Y: 4},
				Energy: 100,
				Tokens: []domain.TokenDescription{{Energy: 30, Data: []byte{1, 2, 3}}},
			}},
		}},
		Particles: []domain.ParticleDescription{{ID: 3, Pos: domain.Vec2{X: 1}, Energy: 9}},
	}
}

func TestSimulationFile(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "world.sim")
	sim := domain.Simulation{
		Config:  domain.DefaultSimulationConfig(),
		Symbols: domain.SymbolTable{"ENERGY": "[1]"},
		Data:    collection(),
	}
	require.NoError(t, s.SaveSimulation(path, sim))

	loaded, err := s.LoadSimulation(path)
	require.NoError(t, err)
	assert.Equal(t, sim, loaded)
}

func TestLoadSimulationRejectsInvalidConfig(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "bad.sim")
	sim := domain.Simulation{Config: domain.DefaultSimulationConfig()}
	sim.Config.UniverseSize.X = 0
	require.NoError(t, s.SaveSimulation(path, sim))

	_, err := s.LoadSimulation(path)
	assert.ErrorIs(t, err, domain.ErrInvalidParameters)
}

func TestCollectionFile(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "nested", "col.aco")
	require.NoError(t, s.SaveCollection(path, collection()))

	loaded, err := s.LoadCollection(path)
	require.NoError(t, err)
	assert.Equal(t, collection(), loaded)
}

func TestCollectionVersionCheck(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "future.aco")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "data": {}}`), 0644))

	_, err := s.LoadCollection(path)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestParametersFile(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "p.par")
	params := domain.DefaultParameters()
	params.CellMaxToken = 5
	require.NoError(t, s.SaveParameters(path, params))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "cell_max_token = 5")

	loaded, err := s.LoadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, params, loaded)
}

func TestPartialParametersFileKeepsDefaults(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "p.par")
	require.NoError(t, os.WriteFile(path, []byte("cell_max_token = 8\n"), 0644))

	loaded, err := s.LoadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, 8, loaded.CellMaxToken)
	assert.Equal(t, domain.DefaultParameters().CellMaxBonds, loaded.CellMaxBonds)
}

func TestSymbolsFile(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "s.sym")
	symbols := domain.SymbolTable{"A": "[0]", "B": "[1]"}
	require.NoError(t, s.SaveSymbols(path, symbols))

	loaded, err := s.LoadSymbols(path)
	require.NoError(t, err)
	assert.Equal(t, symbols, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	s := New()
	dir := t.TempDir()
	_, err := s.LoadSimulation(filepath.Join(dir, "none.sim"))
	assert.Error(t, err)
	_, err = s.LoadSymbols(filepath.Join(dir, "none.sym"))
	assert.Error(t, err)
	_, err = s.LoadParameters(filepath.Join(dir, "none.par"))
	assert.Error(t, err)
	_, err = s.LoadCollection(filepath.Join(dir, "none.aco"))
	assert.Error(t, err)
}

func TestEnsureExtension(t *testing.T) {
	assert.Equal(t, "a.sim", EnsureExtension("a", ExtSimulation))
	assert.Equal(t, "a.SIM", EnsureExtension("a.SIM", ExtSimulation))
	assert.Equal(t, "a.aco.sim", EnsureExtension("a.aco", ExtSimulation))
}
