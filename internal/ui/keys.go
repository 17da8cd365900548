package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"alien/internal/actions"
)

// KeyMap holds the navigation bindings of the entity list
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Select    key.Binding
	Only      key.Binding
	Clear     key.Binding
	NextToken key.Binding
	Command   key.Binding
	Inspect   key.Binding
	Help      key.Binding
	HelpPager key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the navigation bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("end", "ctrl+g"), key.WithHelp("ctrl+g", "bottom")),
		Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Only:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select only this")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		NextToken: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next token")),
		Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Inspect:   key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "inspect selection")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		HelpPager: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help pager")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Command, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Select, k.Only, k.Clear, k.NextToken, k.Inspect},
		{k.Command, k.Help, k.HelpPager, k.Quit},
	}
}

// actionKeys binds editor actions to keys. Actions without a binding are
// reachable through the command prompt.
var actionKeys = map[actions.Action]string{
	actions.NewSimulation:    "ctrl+n",
	actions.LoadSimulation:   "ctrl+o",
	actions.SaveSimulation:   "ctrl+s",
	actions.EditParameters:   "E",
	actions.EditSymbols:      "S",
	actions.ToggleEditor:     "e",
	actions.ToggleMonitor:    "m",
	actions.ShowCellInfo:     "i",
	actions.CenterSelection:  "z",
	actions.NewCell:          "n",
	actions.NewParticle:      "p",
	actions.CopyEntity:       "c",
	actions.PasteEntity:      "v",
	actions.DeleteEntity:     "x",
	actions.NewToken:         "t",
	actions.CopyToken:        "y",
	actions.PasteToken:       "u",
	actions.DeleteToken:      "T",
	actions.NewRectangle:     "r",
	actions.NewHexagon:       "h",
	actions.NewParticles:     "P",
	actions.LoadCollection:   "o",
	actions.SaveCollection:   "w",
	actions.CopyCollection:   "C",
	actions.PasteCollection:  "V",
	actions.DeleteSelection:  "d",
	actions.DeleteCollection: "D",
	actions.RandomMultiplier: "R",
	actions.GridMultiplier:   "G",
}

// actionForKey returns the action bound to a key
func actionForKey(k string) (actions.Action, bool) {
	for a, bound := range actionKeys {
		if bound == k {
			return a, true
		}
	}
	return 0, false
}
