package actions

import (
	"errors"
	"fmt"
	"log"

	"alien/internal/domain"
	"alien/internal/eventbus"
	"alien/internal/serializer"
)

// changeTargets receive every change made through the controller
var changeTargets = domain.StandardReceivers.With(domain.ReceiverMonitor)

// Deps are the collaborators of a Controller
type Deps struct {
	Repository Repository
	Bus        eventbus.EventBus
	Serializer serializer.Serializer
	Session    Session
	Dialogs    Dialogs
	Notices    Notices
	Rand       NumberGenerator
	Model      *Model
}

// Controller executes editor actions against the repository, informs the
// other receivers about every change and keeps the enabled state of all
// actions in line with selection and clipboard
type Controller struct {
	repo    Repository
	bus     eventbus.EventBus
	ser     serializer.Serializer
	session Session
	dialogs Dialogs
	notices Notices
	rng     NumberGenerator
	model   *Model

	states      ActionStates
	unsubscribe func()
}

// NewController wires a controller and subscribes it to repository changes
// addressed to the action controller
func NewController(deps Deps) *Controller {
	c := &Controller{
		repo:    deps.Repository,
		bus:     deps.Bus,
		ser:     deps.Serializer,
		session: deps.Session,
		dialogs: deps.Dialogs,
		notices: deps.Notices,
		rng:     deps.Rand,
		model:   deps.Model,
	}
	if c.model == nil {
		c.model = NewModel(0.5, 10)
	}
	if c.notices == nil {
		c.notices = BusNotices{Bus: c.bus}
	}
	c.states = EnabledActions(c.model.Flags())
	c.unsubscribe = c.bus.SubscribeReceiver(domain.ReceiverActionController, c.HandleRepositoryChanged)
	return c
}

// Close detaches the controller from the bus
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

// Model returns the editor state the controller works on
func (c *Controller) Model() *Model { return c.model }

// ActionStates returns the enabled state of every action
func (c *Controller) ActionStates() ActionStates { return c.states }

// HandleRepositoryChanged refreshes the selection flags from the repository
// and recomputes the action states. Changes not addressed to the action
// controller are ignored.
func (c *Controller) HandleRepositoryChanged(e eventbus.RepositoryChangedEvent) {
	if !e.Targets.Has(domain.ReceiverActionController) {
		return
	}

	cellIDs := c.repo.SelectedCellIDs()
	particleIDs := c.repo.SelectedParticleIDs()
	selectedCells, selectedParticles := len(cellIDs), len(particleIDs)

	tokens, freeTokens := 0, 0
	if selectedCells == 1 && selectedParticles == 0 {
		if cell, ok := c.repo.Cell(cellIDs[0]); ok {
			tokens = len(cell.Tokens)
			freeTokens = c.session.Parameters().CellMaxToken - tokens
		}
	}

	c.model.SetEntitySelected(selectedCells == 1 || selectedParticles == 1)
	c.model.SetCellWithTokenSelected(tokens > 0)
	c.model.SetCellWithFreeTokenSelected(freeTokens > 0)
	c.model.SetCollectionSelected(selectedCells > 0 || selectedParticles > 0)

	c.updateActionStates()
}

func (c *Controller) updateActionStates() {
	c.states = EnabledActions(c.model.Flags())
	c.bus.Publish(eventbus.ActionsChangedEvent{Enabled: c.states.Names()})
}

func (c *Controller) notifyChanged() {
	c.bus.Publish(eventbus.RepositoryChangedEvent{Targets: changeTargets, Update: domain.UpdateAll})
}

func (c *Controller) fail(operation string, err error) {
	c.notices.ShowError(operation, err)
}

// Modes

// ToggleEditMode switches between item editor and pixel view
func (c *Controller) ToggleEditMode(editMode bool) {
	c.model.SetEditMode(editMode)
	c.bus.Publish(eventbus.EditModeChangedEvent{EditMode: editMode})
	c.updateActionStates()
}

// ToggleMonitor shows or hides the monitor
func (c *Controller) ToggleMonitor(show bool) {
	c.bus.Publish(eventbus.MonitorToggledEvent{Show: show})
}

// ToggleCellInfo shows or hides the cell info overlay
func (c *Controller) ToggleCellInfo(show bool) {
	c.bus.Publish(eventbus.CellInfoToggledEvent{Show: show})
}

// Simulation

// NewSimulation replaces the whole simulation by an empty one with the
// config chosen by the user
func (c *Controller) NewSimulation() {
	cfg, ok := c.dialogs.NewSimulation(c.session.Config())
	if !ok {
		return
	}
	if err := cfg.Validate(); err != nil {
		c.fail("new simulation", err)
		return
	}
	c.session.SetConfig(cfg)
	c.session.SetSymbols(domain.SymbolTable{})
	c.repo.SetUniverseSize(cfg.UniverseSize)
	c.repo.Replace(domain.DataDescription{})
	c.notifyChanged()
	c.session.MarkLoaded("")
	c.bus.Publish(eventbus.SimulationLoadedEvent{Config: cfg})
}

// LoadSimulation replaces the whole simulation by the content of a .sim
// file
func (c *Controller) LoadSimulation() {
	path, ok := c.dialogs.OpenFile("Load Simulation", serializer.ExtSimulation)
	if !ok {
		return
	}
	sim, err := c.ser.LoadSimulation(path)
	if err != nil {
		c.fail("load simulation", err)
		return
	}
	c.session.SetConfig(sim.Config)
	c.session.SetSymbols(sim.Symbols)
	c.repo.SetUniverseSize(sim.Config.UniverseSize)
	c.repo.Replace(sim.Data)
	c.notifyChanged()
	c.session.MarkLoaded(path)
	log.Printf("ActionController: loaded simulation %s (%d clusters, %d particles)",
		path, len(sim.Data.Clusters), len(sim.Data.Particles))
	c.bus.Publish(eventbus.SimulationLoadedEvent{Path: path, Config: sim.Config})
}

// SaveSimulation writes the whole simulation to a .sim file
func (c *Controller) SaveSimulation() {
	path, ok := c.dialogs.SaveFile("Save Simulation", serializer.ExtSimulation)
	if !ok {
		return
	}
	path = serializer.EnsureExtension(path, serializer.ExtSimulation)
	sim := domain.Simulation{
		Config:  c.session.Config(),
		Symbols: c.session.Symbols(),
		Data:    c.repo.Data(),
	}
	if err := c.ser.SaveSimulation(path, sim); err != nil {
		c.fail("save simulation", err)
		return
	}
	c.session.MarkSaved(path)
}

// Parameters

// EditParameters lets the user change the simulation parameters
func (c *Controller) EditParameters() {
	params, ok := c.dialogs.EditParameters(c.session.Parameters())
	if !ok {
		return
	}
	c.applyParameters("edit parameters", params)
}

// LoadParameters reads simulation parameters from a .par file
func (c *Controller) LoadParameters() {
	path, ok := c.dialogs.OpenFile("Load Simulation Parameters", serializer.ExtParameters)
	if !ok {
		return
	}
	params, err := c.ser.LoadParameters(path)
	if err != nil {
		c.fail("load parameters", err)
		return
	}
	c.applyParameters("load parameters", params)
}

func (c *Controller) applyParameters(operation string, params domain.SimulationParameters) {
	cfg := c.session.Config()
	cfg.Parameters = params
	if err := cfg.Validate(); err != nil {
		c.fail(operation, err)
		return
	}
	c.session.SetParameters(params)
	c.bus.Publish(eventbus.ParametersChangedEvent{Parameters: params})
	// the free token capacity of the selected cell depends on the parameters
	c.bus.Publish(eventbus.RepositoryChangedEvent{
		Targets: domain.Receivers(domain.ReceiverActionController),
		Update:  domain.UpdateAll,
	})
}

// SaveParameters writes the simulation parameters to a .par file
func (c *Controller) SaveParameters() {
	path, ok := c.dialogs.SaveFile("Save Simulation Parameters", serializer.ExtParameters)
	if !ok {
		return
	}
	path = serializer.EnsureExtension(path, serializer.ExtParameters)
	if err := c.ser.SaveParameters(path, c.session.Parameters()); err != nil {
		c.fail("save parameters", err)
	}
}

// Symbols

// EditSymbolTable lets the user change the symbol table
func (c *Controller) EditSymbolTable() {
	symbols, ok := c.dialogs.EditSymbols(c.session.Symbols())
	if !ok {
		return
	}
	c.applySymbols(symbols)
}

// LoadSymbolTable merges the symbols of a .sym file into the symbol table
func (c *Controller) LoadSymbolTable() {
	path, ok := c.dialogs.OpenFile("Load Symbol Table", serializer.ExtSymbols)
	if !ok {
		return
	}
	loaded, err := c.ser.LoadSymbols(path)
	if err != nil {
		c.fail("load symbol table", err)
		return
	}
	symbols := c.session.Symbols()
	for name, value := range loaded {
		symbols[name] = value
	}
	c.applySymbols(symbols)
}

func (c *Controller) applySymbols(symbols domain.SymbolTable) {
	c.session.SetSymbols(symbols)
	c.bus.Publish(eventbus.SymbolsChangedEvent{Count: len(symbols)})
	c.bus.Publish(eventbus.RepositoryChangedEvent{
		Targets: domain.Receivers(domain.ReceiverDataEditor),
		Update:  domain.UpdateAll,
	})
}

// SaveSymbolTable writes the symbol table to a .sym file
func (c *Controller) SaveSymbolTable() {
	path, ok := c.dialogs.SaveFile("Save Symbol Table", serializer.ExtSymbols)
	if !ok {
		return
	}
	path = serializer.EnsureExtension(path, serializer.ExtSymbols)
	if err := c.ser.SaveSymbols(path, c.session.Symbols()); err != nil {
		c.fail("save symbol table", err)
	}
}

// Entities

// NewCell inserts a single cell and selects it
func (c *Controller) NewCell() {
	c.repo.AddAndSelectCell(c.model.PositionDeltaForNewEntity())
	c.notifyChanged()
}

// NewParticle inserts a single particle and selects it
func (c *Controller) NewParticle() {
	c.repo.AddAndSelectParticle(c.model.PositionDeltaForNewEntity())
	c.notifyChanged()
}

// CopyEntity puts the selected cell or particle into the clipboard. A cell
// keeps the velocity it has due to the motion of its cluster.
func (c *Controller) CopyEntity() {
	cellIDs := c.repo.SelectedCellIDs()
	particleIDs := c.repo.SelectedParticleIDs()

	switch {
	case len(cellIDs) > 0:
		cell, ok := c.repo.Cell(cellIDs[0])
		if !ok {
			return
		}
		cluster, ok := c.repo.ClusterOf(cellIDs[0])
		if !ok {
			return
		}
		vel := domain.TangentialVelocity(cell.Pos.Sub(cluster.Pos), cluster.Vel, cluster.AngularVel)
		c.model.SetCellCopied(cell, vel)
	case len(particleIDs) > 0:
		particle, ok := c.repo.Particle(particleIDs[0])
		if !ok {
			return
		}
		c.model.SetParticleCopied(particle)
	default:
		return
	}
	c.updateActionStates()
}

// PasteEntity inserts the copied cell or particle and selects it
func (c *Controller) PasteEntity() {
	data, ok := c.model.CopiedEntity()
	if !ok {
		return
	}
	c.repo.AddAndSelect(data, c.model.PositionDeltaForNewEntity())
	c.notifyChanged()
}

// DeleteEntity removes the selected entity
func (c *Controller) DeleteEntity() {
	c.DeleteSelection()
}

// Tokens

// NewToken adds a default token to the selected cell
func (c *Controller) NewToken() {
	if !c.repo.AddToken(nil) {
		return
	}
	c.notifyChanged()
}

// CopyToken puts the selected token of the selected cell into the
// clipboard. Without a selected token the last one is taken.
func (c *Controller) CopyToken() {
	cellIDs := c.repo.SelectedCellIDs()
	if len(cellIDs) != 1 {
		return
	}
	cell, ok := c.repo.Cell(cellIDs[0])
	if !ok || len(cell.Tokens) == 0 {
		return
	}
	index, ok := c.repo.SelectedTokenIndex()
	if !ok {
		index = len(cell.Tokens) - 1
	}
	c.model.SetCopiedToken(cell.Tokens[index])
	c.updateActionStates()
}

// PasteToken adds the copied token to the selected cell
func (c *Controller) PasteToken() {
	token, ok := c.model.CopiedToken()
	if !ok {
		return
	}
	if !c.repo.AddToken(&token) {
		return
	}
	c.notifyChanged()
}

// DeleteToken removes the selected token of the selected cell
func (c *Controller) DeleteToken() {
	if !c.repo.DeleteToken() {
		return
	}
	c.notifyChanged()
}

// Collections

// NewRectangle inserts a rectangular cluster and selects it
func (c *Controller) NewRectangle() {
	params, ok := c.dialogs.NewRectangle()
	if !ok {
		return
	}
	data := Rectangle(params)
	if data.IsEmpty() {
		c.fail("new rectangle", fmt.Errorf("invalid size %dx%d", params.Width, params.Height))
		return
	}
	c.repo.AddAndSelect(data, domain.Vec2{})
	c.notifyChanged()
}

// NewHexagon inserts a hexagonal cluster and selects it
func (c *Controller) NewHexagon() {
	params, ok := c.dialogs.NewHexagon()
	if !ok {
		return
	}
	data := Hexagon(params)
	if data.IsEmpty() {
		c.fail("new hexagon", fmt.Errorf("invalid number of layers %d", params.Layers))
		return
	}
	c.repo.AddAndSelect(data, domain.Vec2{})
	c.notifyChanged()
}

// NewParticles sprays particles over the universe and selects them
func (c *Controller) NewParticles() {
	params, ok := c.dialogs.NewParticles()
	if !ok {
		return
	}
	if params.TotalEnergy <= 0 || params.MaxEnergyPerParticle <= 0 {
		c.fail("new particles", errors.New("energies must be positive"))
		return
	}
	c.repo.AddRandomParticles(params.TotalEnergy, params.MaxEnergyPerParticle)
	c.notifyChanged()
}

// LoadCollection inserts the content of a .aco file and selects it
func (c *Controller) LoadCollection() {
	path, ok := c.dialogs.OpenFile("Load Collection", serializer.ExtCollection)
	if !ok {
		return
	}
	data, err := c.ser.LoadCollection(path)
	if err != nil {
		c.fail("load collection", err)
		return
	}
	c.repo.AddAndSelect(data, c.model.PositionDeltaForNewEntity())
	c.notifyChanged()
}

// SaveCollection writes the extended selection to a .aco file
func (c *Controller) SaveCollection() {
	path, ok := c.dialogs.SaveFile("Save Collection", serializer.ExtCollection)
	if !ok {
		return
	}
	path = serializer.EnsureExtension(path, serializer.ExtCollection)
	if err := c.ser.SaveCollection(path, c.repo.ExtendedSelection()); err != nil {
		c.fail("save collection", err)
	}
}

// CopyCollection puts the extended selection into the clipboard
func (c *Controller) CopyCollection() {
	data := c.repo.ExtendedSelection()
	if data.IsEmpty() {
		return
	}
	c.model.SetCopiedCollection(data)
	c.updateActionStates()
}

// PasteCollection inserts the copied collection and selects it
func (c *Controller) PasteCollection() {
	data, ok := c.model.CopiedCollection()
	if !ok {
		return
	}
	c.repo.AddAndSelect(data, c.model.PositionDeltaForNewEntity())
	c.notifyChanged()
}

// DeleteSelection removes the selected cells and particles
func (c *Controller) DeleteSelection() {
	c.repo.DeleteSelection()
	c.notifyChanged()
}

// DeleteCollection removes every cluster touched by the selection together
// with the selected particles
func (c *Controller) DeleteCollection() {
	c.repo.DeleteExtendedSelection()
	c.notifyChanged()
}

// Replication

// RandomMultiplier scatters copies of the extended selection over the
// universe
func (c *Controller) RandomMultiplier() {
	params, ok := c.dialogs.RandomMultiplier()
	if !ok {
		return
	}
	data := c.repo.ExtendedSelection()
	replicas := RandomReplicas(data, params, c.session.Config().UniverseSize, c.rng)
	c.repo.AddReplicas(replicas)
	log.Printf("ActionController: random multiplier added %d copies", len(replicas))
	c.notifyChanged()
}

// GridMultiplier lays out copies of the extended selection on a grid
func (c *Controller) GridMultiplier() {
	data := c.repo.ExtendedSelection()
	params, ok := c.dialogs.GridMultiplier(data.Center())
	if !ok {
		return
	}
	replicas := GridReplicas(data, params)
	c.repo.AddReplicas(replicas)
	log.Printf("ActionController: grid multiplier added %d copies", len(replicas))
	c.notifyChanged()
}

// Run executes the given action. Disabled actions are ignored.
func (c *Controller) Run(a Action) {
	if !c.states.Enabled(a) {
		log.Printf("ActionController: ignoring disabled action %s", a)
		return
	}
	switch a {
	case NewSimulation:
		c.NewSimulation()
	case LoadSimulation:
		c.LoadSimulation()
	case SaveSimulation:
		c.SaveSimulation()
	case EditParameters:
		c.EditParameters()
	case LoadParameters:
		c.LoadParameters()
	case SaveParameters:
		c.SaveParameters()
	case EditSymbols:
		c.EditSymbolTable()
	case LoadSymbols:
		c.LoadSymbolTable()
	case SaveSymbols:
		c.SaveSymbolTable()
	case ToggleEditor:
		c.ToggleEditMode(!c.model.IsEditMode())
	case NewCell:
		c.NewCell()
	case NewParticle:
		c.NewParticle()
	case CopyEntity:
		c.CopyEntity()
	case PasteEntity:
		c.PasteEntity()
	case DeleteEntity:
		c.DeleteEntity()
	case NewToken:
		c.NewToken()
	case CopyToken:
		c.CopyToken()
	case PasteToken:
		c.PasteToken()
	case DeleteToken:
		c.DeleteToken()
	case NewRectangle:
		c.NewRectangle()
	case NewHexagon:
		c.NewHexagon()
	case NewParticles:
		c.NewParticles()
	case LoadCollection:
		c.LoadCollection()
	case SaveCollection:
		c.SaveCollection()
	case CopyCollection:
		c.CopyCollection()
	case PasteCollection:
		c.PasteCollection()
	case DeleteSelection:
		c.DeleteSelection()
	case DeleteCollection:
		c.DeleteCollection()
	case RandomMultiplier:
		c.RandomMultiplier()
	case GridMultiplier:
		c.GridMultiplier()
	default:
		// toggles carrying their own state are driven by the front-end
		log.Printf("ActionController: action %s has no direct handler", a)
	}
}
