package actions

import (
	"log"

	"alien/internal/domain"
	"alien/internal/eventbus"
)

// Repository is the entity graph and selection the controller edits
type Repository interface {
	SelectedCellIDs() []uint64
	SelectedParticleIDs() []uint64
	Cell(id uint64) (domain.CellDescription, bool)
	ClusterOf(cellID uint64) (domain.ClusterDescription, bool)
	Particle(id uint64) (domain.ParticleDescription, bool)

	AddAndSelect(data domain.DataDescription, delta domain.Vec2)
	AddAndSelectCell(delta domain.Vec2)
	AddAndSelectParticle(delta domain.Vec2)
	AddReplicas(replicas []domain.Replica)
	AddRandomParticles(totalEnergy, maxEnergyPerParticle float64)

	DeleteSelection()
	DeleteExtendedSelection()
	ExtendedSelection() domain.DataDescription

	AddToken(token *domain.TokenDescription) bool
	DeleteToken() bool
	SelectedTokenIndex() (int, bool)

	Data() domain.DataDescription
	Replace(data domain.DataDescription)
	SetUniverseSize(size domain.IntVec2)
}

// Session holds config, parameters and symbols of the running simulation
type Session interface {
	Config() domain.SimulationConfig
	SetConfig(cfg domain.SimulationConfig)
	Parameters() domain.SimulationParameters
	SetParameters(params domain.SimulationParameters)
	Symbols() domain.SymbolTable
	SetSymbols(symbols domain.SymbolTable)
	MarkSaved(path string)
	MarkLoaded(path string)
}

// Dialogs asks the user for the input of a workflow. A false second result
// means the user cancelled; the workflow then ends without any change.
type Dialogs interface {
	OpenFile(title, ext string) (string, bool)
	SaveFile(title, ext string) (string, bool)
	NewSimulation(current domain.SimulationConfig) (domain.SimulationConfig, bool)
	EditParameters(current domain.SimulationParameters) (domain.SimulationParameters, bool)
	EditSymbols(current domain.SymbolTable) (domain.SymbolTable, bool)
	NewRectangle() (domain.RectangleParams, bool)
	NewHexagon() (domain.HexagonParams, bool)
	NewParticles() (domain.ParticlesParams, bool)
	RandomMultiplier() (domain.RandomMultiplierParams, bool)
	GridMultiplier(center domain.Vec2) (domain.GridMultiplierParams, bool)
}

// Notices shows blocking error messages to the user
type Notices interface {
	ShowError(operation string, err error)
}

// NumberGenerator draws uniformly distributed reals from [min, max)
type NumberGenerator interface {
	Real(min, max float64) float64
}

// BusNotices turns error notices into ErrorEvents so that any front-end can
// present them
type BusNotices struct {
	Bus eventbus.EventBus
}

// ShowError publishes an ErrorEvent
func (n BusNotices) ShowError(operation string, err error) {
	log.Printf("ActionController: %s failed: %v", operation, err)
	n.Bus.Publish(eventbus.ErrorEvent{Operation: operation, Err: err})
}
