package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"alien/internal/actions"
	"alien/internal/config"
	"alien/internal/domain"
	"alien/internal/eventbus"
	"alien/internal/monitor"
	"alien/internal/repository"
	"alien/internal/session"
	"alien/internal/ui/views"
)

// Deps are the collaborators of the UI model
type Deps struct {
	Bus           eventbus.EventBus
	Controller    *actions.Controller
	Store         *repository.Store
	Session       *session.Session
	Monitor       *monitor.Monitor
	Dialogs       *PromptDialogs
	Config        *config.Config
	ConfigService config.ConfigService
}

// inputMode tells what the prompt line is used for
type inputMode int

const (
	modeNormal inputMode = iota
	modeCommand
	modeAnswer
)

// Model represents the editor UI
type Model struct {
	bus           eventbus.EventBus
	controller    *actions.Controller
	store         *repository.Store
	session       *session.Session
	monitor       *monitor.Monitor
	dialogs       *PromptDialogs
	config        *config.Config
	configService config.ConfigService

	renderer *views.Renderer
	pager    *Pager
	keys     KeyMap
	help     help.Model
	input    textinput.Model

	width          int
	height         int
	rows           []views.EntityRow
	cursor         int
	viewportOffset int
	viewportHeight int

	editMode      bool
	enabled       map[string]bool
	symbols       []string
	showCellInfo  bool
	statusMessage string
	statusLevel   views.StatusLevel

	mode          inputMode
	pendingAction actions.Action
	quitPending   bool
}

// NewModel creates a new UI model
func NewModel(deps Deps) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 512

	m := &Model{
		bus:            deps.Bus,
		controller:     deps.Controller,
		store:          deps.Store,
		session:        deps.Session,
		monitor:        deps.Monitor,
		dialogs:        deps.Dialogs,
		config:         deps.Config,
		configService:  deps.ConfigService,
		renderer:       views.NewRenderer(),
		pager:          NewPager(),
		keys:           DefaultKeyMap(),
		help:           help.New(),
		input:          ti,
		viewportHeight: 20,
		editMode:       deps.Controller.Model().IsEditMode(),
		enabled:        deps.Controller.ActionStates().Names(),
		symbols:        deps.Session.Symbols().Names(),
	}
	m.refresh()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()

	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			m.setStatus(views.StatusError, fmt.Sprintf("%s: %v", msg.title, msg.err))
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitPending = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(msg.String() == "ctrl+c")
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.rows))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.rows))
	case key.Matches(msg, m.keys.Select):
		m.toggleSelection()
	case key.Matches(msg, m.keys.Only):
		m.selectOnly()
	case key.Matches(msg, m.keys.Clear):
		m.clearSelection()
	case key.Matches(msg, m.keys.NextToken):
		m.nextToken()
	case key.Matches(msg, m.keys.Command):
		return m, m.openPrompt(modeCommand, 0, "")
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.HelpPager):
		return m, m.pager.command("help", HelpContent(m.keys))
	case key.Matches(msg, m.keys.Inspect):
		content, err := SelectionContent(m.store.ExtendedSelection())
		if err != nil {
			m.setStatus(views.StatusError, err.Error())
			return m, nil
		}
		return m, m.pager.command("inspect", content)
	default:
		if a, ok := actionForKey(msg.String()); ok {
			return m, m.startAction(a, "", false)
		}
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		m.setStatus(views.StatusInfo, "cancelled")
		return m, nil
	case "enter":
		text := m.input.Value()
		mode, action := m.mode, m.pendingAction
		m.closePrompt()
		if mode == modeCommand {
			return m, m.runCommand(text)
		}
		m.dialogs.Answer(text)
		m.execute(action)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runCommand runs "action [argument]" typed into the command prompt
func (m *Model) runCommand(text string) tea.Cmd {
	name, arg, _ := strings.Cut(strings.TrimSpace(text), " ")
	if name == "" {
		return nil
	}
	a, ok := actions.Parse(name)
	if !ok {
		m.setStatus(views.StatusError, fmt.Sprintf("unknown action %q", name))
		return nil
	}
	arg = strings.TrimSpace(arg)
	return m.startAction(a, arg, arg != "")
}

// startAction runs an action, asking for its argument first when needed
func (m *Model) startAction(a actions.Action, arg string, hasArg bool) tea.Cmd {
	if !m.controller.ActionStates().Enabled(a) {
		m.setStatus(views.StatusWarning, fmt.Sprintf("%s is not available", a))
		return nil
	}

	switch a {
	case actions.ToggleMonitor:
		m.controller.ToggleMonitor(!m.monitor.Shown())
		return nil
	case actions.ShowCellInfo:
		m.showCellInfo = !m.showCellInfo
		m.controller.ToggleCellInfo(m.showCellInfo)
		return nil
	case actions.CenterSelection:
		m.centerSelection()
		return nil
	}

	if hasArg {
		m.dialogs.Answer(arg)
	} else if needsPrompt(a) {
		return m.openPrompt(modeAnswer, a, m.promptDefault(a))
	}
	m.execute(a)
	return nil
}

// execute runs an action through the controller and reports the outcome
func (m *Model) execute(a actions.Action) {
	// failures reported through ErrorEvents replace this status
	m.setStatus(views.StatusSuccess, a.String())
	m.controller.Run(a)
	m.dialogs.Clear()
	if err := m.dialogs.Err(); err != nil {
		m.setStatus(views.StatusError, fmt.Sprintf("%s: %v", a, err))
	}
	m.refresh()
}

func (m *Model) openPrompt(mode inputMode, a actions.Action, value string) tea.Cmd {
	m.mode = mode
	m.pendingAction = a
	m.input.Reset()
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
	return textinput.Blink
}

func (m *Model) closePrompt() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) promptDefault(a actions.Action) string {
	switch a {
	case actions.SaveSimulation:
		return m.session.Path()
	case actions.NewSimulation:
		size := m.store.UniverseSize()
		return fmt.Sprintf("%dx%d", size.X, size.Y)
	}
	return ""
}

func (m *Model) promptTitle() string {
	if m.mode == modeCommand {
		return "command"
	}
	switch m.pendingAction {
	case actions.EditParameters:
		return "parameters (key = value; ...)"
	case actions.EditSymbols:
		return "symbols (NAME=VALUE; ...)"
	case actions.NewSimulation:
		if m.session.Dirty() {
			return "new-simulation size (WxH, discards unsaved changes)"
		}
		return "new-simulation size (WxH)"
	}
	return m.pendingAction.String() + " path"
}

// Selection

// publishSelection tells the editor and the action controller about a
// selection change
func (m *Model) publishSelection(update domain.UpdateDescription) {
	m.bus.Publish(eventbus.RepositoryChangedEvent{
		Targets: domain.Receivers(domain.ReceiverDataEditor, domain.ReceiverActionController),
		Update:  update,
	})
	m.refresh()
}

func (m *Model) toggleSelection() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if row.Kind == views.KindCell {
		m.store.ToggleCell(row.ID)
	} else {
		m.store.ToggleParticle(row.ID)
	}
	m.publishSelection(domain.UpdateAllExceptSymbols)
}

// selectOnly replaces the selection by the entity under the cursor
func (m *Model) selectOnly() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if row.Kind == views.KindCell {
		m.store.SelectCells(row.ID)
	} else {
		m.store.SelectParticles(row.ID)
	}
	m.publishSelection(domain.UpdateAllExceptSymbols)
}

func (m *Model) clearSelection() {
	m.store.ClearSelection()
	m.publishSelection(domain.UpdateAllExceptSymbols)
}

// nextToken selects the next token of the single selected cell
func (m *Model) nextToken() {
	cellIDs := m.store.SelectedCellIDs()
	if len(cellIDs) != 1 || len(m.store.SelectedParticleIDs()) != 0 {
		m.setStatus(views.StatusWarning, "select a single cell to cycle its tokens")
		return
	}
	cell, ok := m.store.Cell(cellIDs[0])
	if !ok || len(cell.Tokens) == 0 {
		m.setStatus(views.StatusWarning, "the selected cell has no tokens")
		return
	}
	next := 0
	if current, ok := m.store.SelectedTokenIndex(); ok {
		next = (current + 1) % len(cell.Tokens)
	}
	m.store.SelectToken(next)
	m.publishSelection(domain.UpdateAllExceptToken)
}

// centerSelection moves the cursor onto the selection and makes its center
// the insert position of new entities
func (m *Model) centerSelection() {
	selection := m.store.ExtendedSelection()
	if selection.IsEmpty() {
		m.setStatus(views.StatusWarning, "nothing selected")
		return
	}
	center := selection.Center()
	m.store.SetInsertPosition(center)
	for i, row := range m.rows {
		if row.Selected {
			m.cursor = i
			m.ensureCursorVisible()
			break
		}
	}
	m.setStatus(views.StatusInfo, fmt.Sprintf("centered on (%.1f, %.1f)", center.X, center.Y))
}

// Events

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.ErrorEvent:
		m.setStatus(views.StatusError, fmt.Sprintf("%s failed: %v", e.Operation, e.Err))
	case eventbus.RepositoryChangedEvent:
		if !e.Targets.Has(domain.ReceiverDataEditor) {
			return
		}
		if e.Update != domain.UpdateAllExceptSymbols {
			m.symbols = m.session.Symbols().Names()
		}
		m.refresh()
	case eventbus.ActionsChangedEvent:
		m.enabled = e.Enabled
	case eventbus.EditModeChangedEvent:
		m.editMode = e.EditMode
	case eventbus.SimulationLoadedEvent:
		m.cursor = 0
		m.viewportOffset = 0
		m.refresh()
		name := "new simulation"
		if e.Path != "" {
			name = filepath.Base(e.Path)
		}
		m.setStatus(views.StatusSuccess, fmt.Sprintf("%s (%dx%d)", name, e.Config.UniverseSize.X, e.Config.UniverseSize.Y))
	case eventbus.CellInfoToggledEvent:
		m.showCellInfo = e.Show
	case eventbus.ParametersChangedEvent:
		m.setStatus(views.StatusSuccess, "simulation parameters updated")
	case eventbus.SymbolsChangedEvent:
		m.setStatus(views.StatusSuccess, fmt.Sprintf("symbol table has %d entries", e.Count))
	case eventbus.ConfigSavedEvent:
		log.Printf("UI: config saved to %s", e.Path)
	}
}

func (m *Model) setStatus(level views.StatusLevel, message string) {
	m.statusLevel = level
	m.statusMessage = message
}

// refresh rebuilds the entity rows from the store
func (m *Model) refresh() {
	m.rows = views.Rows(m.store.Data(), m.store.IsCellSelected, m.store.IsParticleSelected)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// Navigation

func (m *Model) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.ensureCursorVisible()
}

func (m *Model) updateViewportHeight() {
	m.viewportHeight = m.height - 12
	if m.viewportHeight < 5 {
		m.viewportHeight = 5
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.cursor < m.viewportOffset {
		m.viewportOffset = m.cursor
	}
	if m.cursor >= m.viewportOffset+m.viewportHeight {
		m.viewportOffset = m.cursor - m.viewportHeight + 1
	}
	if m.viewportOffset < 0 {
		m.viewportOffset = 0
	}
}

// quit leaves the program. Unsaved changes need a second request unless
// forced.
func (m *Model) quit(force bool) tea.Cmd {
	if !force && m.session.Dirty() && !m.quitPending {
		m.quitPending = true
		m.setStatus(views.StatusWarning, "unsaved changes, press q again to quit")
		return nil
	}
	m.saveEditorSettings()
	return tea.Quit
}

func (m *Model) saveEditorSettings() {
	if m.configService == nil {
		return
	}
	m.config.Editor.StartInEditMode = m.controller.Model().IsEditMode()
	m.config.Editor.ShowMonitor = m.monitor.Shown()
	if err := m.configService.Save(m.config); err != nil {
		log.Printf("UI: failed to save config: %v", err)
	}
}

// View renders the UI
func (m *Model) View() string {
	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		EditMode:       m.editMode,
		SimulationPath: m.session.Path(),
		Dirty:          m.session.Dirty(),
		Revision:       m.session.Revision(),
		InsertPosition: m.store.InsertPosition(),
		Rows:           m.rows,
		Cursor:         m.cursor,
		ViewportOffset: m.viewportOffset,
		ViewportHeight: m.viewportHeight,
		Actions:        m.actionEntries(),
		ShowMonitor:    m.monitor.Shown(),
		Monitor:        m.monitor.Data(),
		Symbols:        m.symbols,
		CellInfo:       m.cellInfo(),
		StatusMessage:  m.statusMessage,
		StatusLevel:    m.statusLevel,
		HelpView:       m.help.View(m.keys),
	}
	if m.mode != modeNormal {
		state.Prompt = m.renderer.RenderPrompt(m.promptTitle(), m.input.View())
	}
	return m.renderer.Render(state)
}

// actionEntries lists every action with the enabled state last announced
// by the controller
func (m *Model) actionEntries() []views.ActionEntry {
	all := actions.All()
	entries := make([]views.ActionEntry, 0, len(all))
	for _, a := range all {
		k, ok := actionKeys[a]
		if !ok {
			k = ":"
		}
		entries = append(entries, views.ActionEntry{
			Name:    a.String(),
			Key:     k,
			Enabled: m.enabled[a.String()],
		})
	}
	return entries
}

func (m *Model) cellInfo() string {
	if !m.showCellInfo || m.cursor >= len(m.rows) {
		return ""
	}
	row := m.rows[m.cursor]
	if row.Kind != views.KindCell {
		return ""
	}
	cell, ok := m.store.Cell(row.ID)
	if !ok {
		return ""
	}
	token, hasToken := m.store.SelectedTokenIndex()
	return m.renderer.Entities().RenderCellInfo(cell, token, hasToken && m.store.IsCellSelected(cell.ID))
}

// needsPrompt reports whether an action reads a prompt answer
func needsPrompt(a actions.Action) bool {
	switch a {
	case actions.NewSimulation, actions.LoadSimulation, actions.SaveSimulation,
		actions.EditParameters, actions.LoadParameters, actions.SaveParameters,
		actions.EditSymbols, actions.LoadSymbols, actions.SaveSymbols,
		actions.LoadCollection, actions.SaveCollection:
		return true
	}
	return false
}
