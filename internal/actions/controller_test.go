package actions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"alien/internal/domain"
	"alien/internal/eventbus"
	"alien/internal/random"
	"alien/internal/repository"
	"alien/internal/serializer"
	"alien/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDialogs struct {
	openPath  string
	savePath  string
	simConfig *domain.SimulationConfig
	params    *domain.SimulationParameters
	symbols   domain.SymbolTable
	rectangle *domain.RectangleParams
	hexagon   *domain.HexagonParams
	particles *domain.ParticlesParams
	random    *domain.RandomMultiplierParams
	grid      *domain.GridMultiplierParams

	gridCenter domain.Vec2
}

func (d *fakeDialogs) OpenFile(title, ext string) (string, bool) {
	return d.openPath, d.openPath != ""
}

func (d *fakeDialogs) SaveFile(title, ext string) (string, bool) {
	return d.savePath, d.savePath != ""
}

func (d *fakeDialogs) NewSimulation(current domain.SimulationConfig) (domain.SimulationConfig, bool) {
	if d.simConfig == nil {
		return current, false
	}
	return *d.simConfig, true
}

func (d *fakeDialogs) EditParameters(current domain.SimulationParameters) (domain.SimulationParameters, bool) {
	if d.params == nil {
		return current, false
	}
	return *d.params, true
}

func (d *fakeDialogs) EditSymbols(current domain.SymbolTable) (domain.SymbolTable, bool) {
	if d.symbols == nil {
		return current, false
	}
	return d.symbols, true
}

func (d *fakeDialogs) NewRectangle() (domain.RectangleParams, bool) {
	if d.rectangle == nil {
		return domain.RectangleParams{}, false
	}
	return *d.rectangle, true
}

func (d *fakeDialogs) NewHexagon() (domain.HexagonParams, bool) {
	if d.hexagon == nil {
		return domain.HexagonParams{}, false
	}
	return *d.hexagon, true
}

func (d *fakeDialogs) NewParticles() (domain.ParticlesParams, bool) {
	if d.particles == nil {
		return domain.ParticlesParams{}, false
	}
	return *d.particles, true
}

func (d *fakeDialogs) RandomMultiplier() (domain.RandomMultiplierParams, bool) {
	if d.random == nil {
		return domain.RandomMultiplierParams{}, false
	}
	return *d.random, true
}

func (d *fakeDialogs) GridMultiplier(center domain.Vec2) (domain.GridMultiplierParams, bool) {
	d.gridCenter = center
	if d.grid == nil {
		return domain.GridMultiplierParams{}, false
	}
	return *d.grid, true
}

type fakeNotices struct {
	operations []string
	errs       []error
}

func (n *fakeNotices) ShowError(operation string, err error) {
	n.operations = append(n.operations, operation)
	n.errs = append(n.errs, err)
}

type fixture struct {
	bus     eventbus.EventBus
	store   *repository.Store
	session *session.Session
	dialogs *fakeDialogs
	notices *fakeNotices
	ctrl    *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bus := eventbus.New()
	cfg := domain.DefaultSimulationConfig()
	sess := session.New(bus, cfg)
	store := repository.NewStore(repository.Options{
		UniverseSize: cfg.UniverseSize,
		Parameters:   sess.Parameters,
		Rand:         random.New(7),
	})
	f := &fixture{
		bus:     bus,
		store:   store,
		session: sess,
		dialogs: &fakeDialogs{},
		notices: &fakeNotices{},
	}
	f.ctrl = NewController(Deps{
		Repository: store,
		Bus:        bus,
		Serializer: serializer.New(),
		Session:    sess,
		Dialogs:    f.dialogs,
		Notices:    f.notices,
		Rand:       random.New(11),
		Model:      NewModel(0.5, 10),
	})
	t.Cleanup(f.ctrl.Close)
	t.Cleanup(sess.Close)
	return f
}

var allEventTypes = []eventbus.EventType{
	eventbus.EventRepositoryChanged,
	eventbus.EventActionsChanged,
	eventbus.EventMonitorToggled,
	eventbus.EventMonitorUpdated,
	eventbus.EventCellInfoToggled,
	eventbus.EventEditModeChanged,
	eventbus.EventSimulationLoaded,
	eventbus.EventParametersChanged,
	eventbus.EventSymbolsChanged,
	eventbus.EventError,
}

func (f *fixture) record(t *testing.T) *[]eventbus.DomainEvent {
	events := &[]eventbus.DomainEvent{}
	for _, eventType := range allEventTypes {
		unsubscribe := f.bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			*events = append(*events, e)
		})
		t.Cleanup(unsubscribe)
	}
	return events
}

func ofType[T eventbus.DomainEvent](events []eventbus.DomainEvent) []T {
	var result []T
	for _, e := range events {
		if typed, ok := e.(T); ok {
			result = append(result, typed)
		}
	}
	return result
}

func TestNewCellNotifiesStandardReceivers(t *testing.T) {
	f := newFixture(t)
	events := f.record(t)

	f.ctrl.NewCell()

	changes := ofType[eventbus.RepositoryChangedEvent](*events)
	require.Len(t, changes, 1)
	for _, r := range []domain.Receiver{
		domain.ReceiverDataEditor, domain.ReceiverSimulation,
		domain.ReceiverVisualEditor, domain.ReceiverActionController,
	} {
		assert.True(t, changes[0].Targets.Has(r), r.String())
	}
	assert.Equal(t, domain.UpdateAll, changes[0].Update)
	assert.Len(t, ofType[eventbus.ActionsChangedEvent](*events), 1)
	assert.True(t, f.ctrl.Model().IsEntitySelected())
	assert.True(t, f.ctrl.Model().IsCollectionSelected())
	assert.Equal(t, 1, f.session.Revision())
}

func TestCopyPasteEntity(t *testing.T) {
	f := newFixture(t)
	f.ctrl.ToggleEditMode(true)
	f.ctrl.NewCell()
	original := f.store.SelectedCellIDs()[0]

	assert.False(t, f.ctrl.ActionStates().Enabled(PasteEntity))
	f.ctrl.CopyEntity()
	assert.True(t, f.ctrl.ActionStates().Enabled(PasteEntity))

	f.ctrl.PasteEntity()
	data := f.store.Data()
	assert.Equal(t, 2, data.CellCount())

	selected := f.store.SelectedCellIDs()
	require.Len(t, selected, 1)
	assert.NotEqual(t, original, selected[0])
	pasted, ok := f.store.Cell(selected[0])
	require.True(t, ok)
	assert.Equal(t, f.session.Parameters().CellCreationEnergy, pasted.Energy)
}

func TestCopyEntityKeepsClusterVelocity(t *testing.T) {
	f := newFixture(t)
	f.store.AddAndSelect(domain.DataDescription{
		Clusters: []domain.ClusterDescription{{
			Pos:        domain.Vec2{X: 0},
			Vel:        domain.Vec2{X: 1, Y: 2},
			AngularVel: 0,
			Cells:      []domain.CellDescription{{ID: 1, Pos: domain.Vec2{X: 0}}},
		}},
	}, domain.Vec2{})

	f.ctrl.CopyEntity()
	data, ok := f.ctrl.Model().CopiedEntity()
	require.True(t, ok)
	require.Len(t, data.Clusters, 1)
	assert.Equal(t, domain.Vec2{X: 1, Y: 2}, data.Clusters[0].Vel)
	assert.Equal(t, 0.0, data.Clusters[0].AngularVel)
}

func TestCopyEntityWithoutSelectionIsNoop(t *testing.T) {
	f := newFixture(t)
	events := f.record(t)
	f.ctrl.CopyEntity()
	assert.False(t, f.ctrl.Model().IsEntityCopied())
	assert.Empty(t, *events)
}

func TestPasteEntityDisabledWithoutSelection(t *testing.T) {
	f := newFixture(t)
	f.ctrl.ToggleEditMode(true)
	f.ctrl.NewCell()
	f.ctrl.CopyEntity()
	require.True(t, f.ctrl.ActionStates().Enabled(PasteEntity))

	f.store.ClearSelection()
	f.bus.Publish(eventbus.RepositoryChangedEvent{Targets: domain.StandardReceivers})

	states := f.ctrl.ActionStates()
	assert.False(t, states.Enabled(PasteEntity))
	assert.False(t, states.Enabled(CopyEntity))
	assert.False(t, states.Enabled(DeleteSelection))
	assert.True(t, states.Enabled(NewCell))
}

func TestTokenFlagsFollowSelectedCell(t *testing.T) {
	f := newFixture(t)
	params := f.session.Parameters()
	params.CellMaxToken = 5
	f.session.SetParameters(params)

	f.ctrl.ToggleEditMode(true)
	f.ctrl.NewCell()
	assert.False(t, f.ctrl.Model().IsCellWithTokenSelected())
	assert.True(t, f.ctrl.Model().IsCellWithFreeTokenSelected())

	for range 3 {
		f.ctrl.NewToken()
	}
	cell, ok := f.store.Cell(f.store.SelectedCellIDs()[0])
	require.True(t, ok)
	assert.Len(t, cell.Tokens, 3)

	m := f.ctrl.Model()
	assert.True(t, m.IsEntitySelected())
	assert.True(t, m.IsCellWithTokenSelected())
	assert.True(t, m.IsCellWithFreeTokenSelected())
	assert.True(t, f.ctrl.ActionStates().Enabled(CopyToken))

	f.ctrl.NewToken()
	f.ctrl.NewToken()
	assert.False(t, m.IsCellWithFreeTokenSelected())

	events := f.record(t)
	f.ctrl.NewToken()
	assert.Empty(t, *events, "a full cell takes no more tokens")
}

func TestCopyPasteDeleteToken(t *testing.T) {
	f := newFixture(t)
	f.ctrl.ToggleEditMode(true)
	f.ctrl.NewCell()
	f.ctrl.NewToken()

	f.ctrl.CopyToken()
	require.True(t, f.ctrl.Model().IsTokenCopied())
	assert.True(t, f.ctrl.ActionStates().Enabled(PasteToken))

	f.ctrl.PasteToken()
	cell, _ := f.store.Cell(f.store.SelectedCellIDs()[0])
	assert.Len(t, cell.Tokens, 2)

	f.ctrl.DeleteToken()
	f.ctrl.DeleteToken()
	cell, _ = f.store.Cell(f.store.SelectedCellIDs()[0])
	assert.Empty(t, cell.Tokens)
	assert.False(t, f.ctrl.ActionStates().Enabled(DeleteToken))

	events := f.record(t)
	f.ctrl.DeleteToken()
	assert.Empty(t, *events)
}

func TestChangesForOtherReceiversAreIgnored(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewCell()
	before := f.ctrl.Model().Flags()

	f.store.ClearSelection()
	events := f.record(t)
	f.bus.Publish(eventbus.RepositoryChangedEvent{
		Targets: domain.Receivers(domain.ReceiverDataEditor, domain.ReceiverMonitor),
	})
	f.ctrl.HandleRepositoryChanged(eventbus.RepositoryChangedEvent{
		Targets: domain.Receivers(domain.ReceiverVisualEditor),
	})

	assert.Equal(t, before, f.ctrl.Model().Flags())
	assert.Empty(t, ofType[eventbus.ActionsChangedEvent](*events))
}

func TestCollectionClipboardAndFiles(t *testing.T) {
	f := newFixture(t)
	f.ctrl.ToggleEditMode(true)
	f.dialogs.rectangle = &domain.RectangleParams{Width: 2, Height: 2, Distance: 1, Energy: 10}
	f.ctrl.NewRectangle()
	require.Equal(t, 4, f.store.Data().CellCount())
	assert.Len(t, f.store.SelectedCellIDs(), 4)

	assert.False(t, f.ctrl.ActionStates().Enabled(PasteCollection))
	f.ctrl.CopyCollection()
	assert.True(t, f.ctrl.ActionStates().Enabled(PasteCollection))
	f.ctrl.PasteCollection()
	assert.Equal(t, 8, f.store.Data().CellCount())

	path := filepath.Join(t.TempDir(), "block")
	f.dialogs.savePath = path
	f.ctrl.SaveCollection()
	require.Empty(t, f.notices.errs)

	f.ctrl.DeleteCollection()
	assert.Equal(t, 4, f.store.Data().CellCount())
	assert.Empty(t, f.store.SelectedCellIDs())

	f.dialogs.openPath = path + serializer.ExtCollection
	f.ctrl.LoadCollection()
	require.Empty(t, f.notices.errs)
	assert.Equal(t, 8, f.store.Data().CellCount())
	assert.Len(t, f.store.SelectedCellIDs(), 4)
}

func TestDeleteSelection(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewParticle()
	f.ctrl.NewCell()
	f.ctrl.DeleteEntity()

	data := f.store.Data()
	assert.Equal(t, 0, data.CellCount())
	assert.Len(t, data.Particles, 1)
	assert.False(t, f.ctrl.Model().IsCollectionSelected())
}

func TestGridMultiplierAddsCopies(t *testing.T) {
	f := newFixture(t)
	f.dialogs.hexagon = &domain.HexagonParams{Layers: 2, Distance: 1, Energy: 10}
	f.ctrl.NewHexagon()
	center := f.store.ExtendedSelection().Center()

	f.dialogs.grid = &domain.GridMultiplierParams{
		InitialPos:         center,
		HorizontalNumber:   3,
		VerticalNumber:     2,
		HorizontalInterval: 10,
		VerticalInterval:   10,
	}
	f.ctrl.GridMultiplier()

	assert.InDelta(t, center.X, f.dialogs.gridCenter.X, 1e-9)
	assert.Len(t, f.store.Data().Clusters, 1+3*2-1)
	assert.Len(t, f.store.SelectedCellIDs(), 7, "selection stays on the original")
}

func TestRandomMultiplierAddsCopiesInsideUniverse(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewCell()
	f.dialogs.random = &domain.RandomMultiplierParams{Copies: 4}
	f.ctrl.RandomMultiplier()

	data := f.store.Data()
	require.Len(t, data.Clusters, 5)
	universe := f.session.Config().UniverseSize
	for _, cluster := range data.Clusters {
		pos := cluster.Cells[0].Pos
		assert.GreaterOrEqual(t, pos.X, 0.0)
		assert.Less(t, pos.X, float64(universe.X))
		assert.GreaterOrEqual(t, pos.Y, 0.0)
		assert.Less(t, pos.Y, float64(universe.Y))
	}
}

func TestNewParticles(t *testing.T) {
	f := newFixture(t)
	f.dialogs.particles = &domain.ParticlesParams{TotalEnergy: 100, MaxEnergyPerParticle: 30}
	f.ctrl.NewParticles()
	assert.Len(t, f.store.Data().Particles, 4)
	assert.True(t, f.ctrl.Model().IsCollectionSelected())

	f.dialogs.particles = &domain.ParticlesParams{TotalEnergy: 100}
	f.ctrl.NewParticles()
	assert.Len(t, f.notices.errs, 1)
}

func TestLoadFailureLeavesRepositoryUnchanged(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewCell()
	before := f.store.Data()

	events := f.record(t)
	f.dialogs.openPath = filepath.Join(t.TempDir(), "missing.sim")
	f.ctrl.LoadSimulation()

	assert.Equal(t, before, f.store.Data())
	require.Len(t, f.notices.errs, 1)
	assert.Equal(t, "load simulation", f.notices.operations[0])
	assert.Empty(t, ofType[eventbus.RepositoryChangedEvent](*events))

	f.ctrl.LoadCollection()
	assert.Equal(t, before, f.store.Data())
	assert.Len(t, f.notices.errs, 2)
}

func TestCancelledDialogsChangeNothing(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewCell()
	before := f.store.Data()
	events := f.record(t)

	for _, op := range []func(){
		f.ctrl.NewSimulation, f.ctrl.LoadSimulation, f.ctrl.SaveSimulation,
		f.ctrl.EditParameters, f.ctrl.LoadParameters, f.ctrl.SaveParameters,
		f.ctrl.EditSymbolTable, f.ctrl.LoadSymbolTable, f.ctrl.SaveSymbolTable,
		f.ctrl.NewRectangle, f.ctrl.NewHexagon, f.ctrl.NewParticles,
		f.ctrl.LoadCollection, f.ctrl.SaveCollection,
		f.ctrl.RandomMultiplier, f.ctrl.GridMultiplier,
	} {
		op()
	}

	assert.Empty(t, *events)
	assert.Empty(t, f.notices.errs)
	assert.Equal(t, before, f.store.Data())
}

func TestSaveNewAndLoadSimulation(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewCell()
	f.dialogs.symbols = domain.SymbolTable{"MEM": "[1]"}
	f.ctrl.EditSymbolTable()
	require.True(t, f.session.Dirty())

	path := filepath.Join(t.TempDir(), "world")
	f.dialogs.savePath = path
	f.ctrl.SaveSimulation()
	require.Empty(t, f.notices.errs)
	assert.False(t, f.session.Dirty())
	assert.Equal(t, path+serializer.ExtSimulation, f.session.Path())

	small := domain.DefaultSimulationConfig()
	small.UniverseSize = domain.IntVec2{X: 100, Y: 100}
	f.dialogs.simConfig = &small
	f.ctrl.NewSimulation()
	assert.True(t, f.store.Data().IsEmpty())
	assert.Empty(t, f.session.Symbols())
	assert.Equal(t, small.UniverseSize, f.store.UniverseSize())

	events := f.record(t)
	f.dialogs.openPath = path + serializer.ExtSimulation
	f.ctrl.LoadSimulation()
	require.Empty(t, f.notices.errs)

	assert.Equal(t, 1, f.store.Data().CellCount())
	assert.Equal(t, domain.DefaultSimulationConfig().UniverseSize, f.session.Config().UniverseSize)
	assert.Equal(t, "[1]", f.session.Symbols()["MEM"])
	assert.False(t, f.session.Dirty())

	loaded := ofType[eventbus.SimulationLoadedEvent](*events)
	require.Len(t, loaded, 1)
	assert.Equal(t, path+serializer.ExtSimulation, loaded[0].Path)
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	f := newFixture(t)
	f.dialogs.simConfig = &domain.SimulationConfig{}
	f.ctrl.NewSimulation()
	require.Len(t, f.notices.errs, 1)
	assert.True(t, errors.Is(f.notices.errs[0], domain.ErrInvalidParameters))
}

func TestLoadParameters(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.par")
	require.NoError(t, os.WriteFile(invalid, []byte("cell_min_distance = -1.0\n"), 0644))
	valid := filepath.Join(dir, "valid.par")
	require.NoError(t, os.WriteFile(valid, []byte("cell_max_token = 7\n"), 0644))

	events := f.record(t)
	f.dialogs.openPath = invalid
	f.ctrl.LoadParameters()
	require.Len(t, f.notices.errs, 1)
	assert.True(t, errors.Is(f.notices.errs[0], domain.ErrInvalidParameters))
	assert.Equal(t, domain.DefaultParameters(), f.session.Parameters())
	assert.Empty(t, ofType[eventbus.ParametersChangedEvent](*events))

	f.dialogs.openPath = valid
	f.ctrl.LoadParameters()
	assert.Len(t, f.notices.errs, 1)
	assert.Equal(t, 7, f.session.Parameters().CellMaxToken)
	assert.Len(t, ofType[eventbus.ParametersChangedEvent](*events), 1)
}

func TestSaveAndEditParameters(t *testing.T) {
	f := newFixture(t)
	params := domain.DefaultParameters()
	params.CellMaxBonds = 4
	f.dialogs.params = &params
	f.ctrl.EditParameters()
	assert.Equal(t, 4, f.session.Parameters().CellMaxBonds)

	path := filepath.Join(t.TempDir(), "params")
	f.dialogs.savePath = path
	f.ctrl.SaveParameters()
	require.Empty(t, f.notices.errs)

	loaded, err := serializer.New().LoadParameters(path + serializer.ExtParameters)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.CellMaxBonds)
}

func TestSymbolChangesRefreshDataEditorOnly(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "symbols.sym")
	require.NoError(t, serializer.New().SaveSymbols(path, domain.SymbolTable{"B": "2"}))

	events := f.record(t)
	f.dialogs.symbols = domain.SymbolTable{"A": "1"}
	f.ctrl.EditSymbolTable()
	f.dialogs.openPath = path
	f.ctrl.LoadSymbolTable()

	assert.Equal(t, domain.SymbolTable{"A": "1", "B": "2"}, f.session.Symbols())
	changes := ofType[eventbus.RepositoryChangedEvent](*events)
	require.Len(t, changes, 2)
	for _, change := range changes {
		assert.Equal(t, domain.Receivers(domain.ReceiverDataEditor), change.Targets)
	}
	symbolEvents := ofType[eventbus.SymbolsChangedEvent](*events)
	require.Len(t, symbolEvents, 2)
	assert.Equal(t, 2, symbolEvents[1].Count)
}

func TestRunSkipsDisabledActions(t *testing.T) {
	f := newFixture(t)
	f.ctrl.NewCell()

	f.ctrl.Run(CopyEntity)
	assert.False(t, f.ctrl.Model().IsEntityCopied())

	f.ctrl.Run(ToggleEditor)
	assert.True(t, f.ctrl.Model().IsEditMode())
	f.ctrl.Run(CopyEntity)
	assert.True(t, f.ctrl.Model().IsEntityCopied())
}

func TestTogglesPublish(t *testing.T) {
	f := newFixture(t)
	events := f.record(t)

	f.ctrl.ToggleMonitor(true)
	f.ctrl.ToggleCellInfo(false)
	f.ctrl.ToggleEditMode(true)

	require.Len(t, ofType[eventbus.MonitorToggledEvent](*events), 1)
	assert.True(t, ofType[eventbus.MonitorToggledEvent](*events)[0].Show)
	assert.Len(t, ofType[eventbus.CellInfoToggledEvent](*events), 1)
	assert.True(t, ofType[eventbus.EditModeChangedEvent](*events)[0].EditMode)
	assert.True(t, f.ctrl.ActionStates().Enabled(ShowCellInfo))
}

func TestBusNoticesPublishErrors(t *testing.T) {
	bus := eventbus.New()
	var got []eventbus.ErrorEvent
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		got = append(got, e.(eventbus.ErrorEvent))
	})

	BusNotices{Bus: bus}.ShowError("save", errors.New("disk full"))
	require.Len(t, got, 1)
	assert.Equal(t, "save", got[0].Operation)
	assert.EqualError(t, got[0].Err, "disk full")
}

func TestActionStatesDependOnFlagsNotHistory(t *testing.T) {
	direct := newFixture(t)
	direct.ctrl.ToggleEditMode(true)
	direct.ctrl.NewParticle()
	direct.ctrl.CopyEntity()

	detour := newFixture(t)
	detour.ctrl.NewCell()
	detour.ctrl.NewCell()
	detour.ctrl.ToggleEditMode(true)
	detour.ctrl.CopyEntity()
	detour.ctrl.DeleteSelection()
	detour.ctrl.NewParticle()
	detour.ctrl.ToggleEditMode(false)
	detour.ctrl.ToggleEditMode(true)

	require.Equal(t, direct.ctrl.Model().Flags(), detour.ctrl.Model().Flags())
	assert.Equal(t, direct.ctrl.ActionStates(), detour.ctrl.ActionStates())
	assert.True(t, detour.ctrl.ActionStates().Enabled(PasteEntity))
	assert.False(t, detour.ctrl.ActionStates().Enabled(PasteCollection))
}
