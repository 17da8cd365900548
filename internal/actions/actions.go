package actions

// Action identifies a user-triggerable editor action
type Action int

// Editor actions
const (
	NewSimulation Action = iota
	LoadSimulation
	SaveSimulation
	EditParameters
	LoadParameters
	SaveParameters
	EditSymbols
	LoadSymbols
	SaveSymbols
	ToggleEditor
	ToggleMonitor

	ShowCellInfo
	CenterSelection

	NewCell
	NewParticle
	CopyEntity
	PasteEntity
	DeleteEntity
	NewToken
	CopyToken
	PasteToken
	DeleteToken

	NewRectangle
	NewHexagon
	NewParticles
	LoadCollection
	SaveCollection
	CopyCollection
	PasteCollection
	DeleteSelection
	DeleteCollection
	RandomMultiplier
	GridMultiplier

	actionCount
)

var actionNames = [actionCount]string{
	NewSimulation:    "new-simulation",
	LoadSimulation:   "load-simulation",
	SaveSimulation:   "save-simulation",
	EditParameters:   "edit-parameters",
	LoadParameters:   "load-parameters",
	SaveParameters:   "save-parameters",
	EditSymbols:      "edit-symbols",
	LoadSymbols:      "load-symbols",
	SaveSymbols:      "save-symbols",
	ToggleEditor:     "toggle-editor",
	ToggleMonitor:    "toggle-monitor",
	ShowCellInfo:     "show-cell-info",
	CenterSelection:  "center-selection",
	NewCell:          "new-cell",
	NewParticle:      "new-particle",
	CopyEntity:       "copy-entity",
	PasteEntity:      "paste-entity",
	DeleteEntity:     "delete-entity",
	NewToken:         "new-token",
	CopyToken:        "copy-token",
	PasteToken:       "paste-token",
	DeleteToken:      "delete-token",
	NewRectangle:     "new-rectangle",
	NewHexagon:       "new-hexagon",
	NewParticles:     "new-particles",
	LoadCollection:   "load-collection",
	SaveCollection:   "save-collection",
	CopyCollection:   "copy-collection",
	PasteCollection:  "paste-collection",
	DeleteSelection:  "delete-selection",
	DeleteCollection: "delete-collection",
	RandomMultiplier: "random-multiplier",
	GridMultiplier:   "grid-multiplier",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Parse looks up an action by its name
func Parse(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return 0, false
}

// All returns every action in declaration order
func All() []Action {
	result := make([]Action, actionCount)
	for i := range result {
		result[i] = Action(i)
	}
	return result
}

// Flags is the state the enablement policy is computed from
type Flags struct {
	EditMode                  bool
	EntitySelected            bool
	EntityCopied              bool
	CellWithTokenSelected     bool
	CellWithFreeTokenSelected bool
	TokenCopied               bool
	CollectionSelected        bool
	CollectionCopied          bool
}

// ActionStates holds the enabled state of every action. It is comparable,
// so two states can be checked for equality with ==.
type ActionStates [actionCount]bool

// Enabled reports whether a is enabled
func (s ActionStates) Enabled(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s[a]
}

// Names returns the enabled state keyed by action name
func (s ActionStates) Names() map[string]bool {
	result := make(map[string]bool, actionCount)
	for i, enabled := range s {
		result[Action(i).String()] = enabled
	}
	return result
}

// EnabledActions computes which actions are available. It depends on f
// alone.
func EnabledActions(f Flags) ActionStates {
	var s ActionStates

	for _, a := range []Action{
		NewSimulation, LoadSimulation, SaveSimulation,
		EditParameters, LoadParameters, SaveParameters,
		EditSymbols, LoadSymbols, SaveSymbols,
		ToggleEditor, ToggleMonitor,
		NewCell, NewParticle,
		NewRectangle, NewHexagon, NewParticles, LoadCollection,
	} {
		s[a] = true
	}

	s[ShowCellInfo] = f.EditMode
	s[CenterSelection] = f.EditMode

	s[CopyEntity] = f.EditMode && f.EntitySelected
	s[PasteEntity] = f.EditMode && f.EntitySelected && f.EntityCopied
	s[DeleteEntity] = f.EditMode && f.EntitySelected
	s[NewToken] = f.EditMode && f.EntitySelected
	s[CopyToken] = f.EditMode && f.CellWithTokenSelected
	s[PasteToken] = f.EditMode && f.EntitySelected && f.TokenCopied
	s[DeleteToken] = f.EditMode && f.CellWithTokenSelected

	s[SaveCollection] = f.EditMode && f.CollectionSelected
	s[CopyCollection] = f.EditMode && f.CollectionSelected
	s[PasteCollection] = f.CollectionCopied
	s[DeleteSelection] = f.EditMode && f.CollectionSelected
	s[DeleteCollection] = f.EditMode && f.CollectionSelected
	s[RandomMultiplier] = f.CollectionSelected
	s[GridMultiplier] = f.CollectionSelected

	return s
}
