package domain

import (
	"sort"
	"strings"
)

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRepositoryChanged EventType = "RepositoryChanged"
	EventActionsChanged    EventType = "ActionsChanged"
	EventMonitorToggled    EventType = "MonitorToggled"
	EventMonitorUpdated    EventType = "MonitorUpdated"
	EventCellInfoToggled   EventType = "CellInfoToggled"
	EventEditModeChanged   EventType = "EditModeChanged"
	EventSimulationLoaded  EventType = "SimulationLoaded"
	EventParametersChanged EventType = "ParametersChanged"
	EventSymbolsChanged    EventType = "SymbolsChanged"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// Receiver is one of the components that can be told to refresh after a
// repository change
type Receiver uint8

// Receivers
const (
	ReceiverDataEditor Receiver = 1 << iota
	ReceiverSimulation
	ReceiverVisualEditor
	ReceiverActionController
	ReceiverMonitor
)

var receiverNames = map[Receiver]string{
	ReceiverDataEditor:       "DataEditor",
	ReceiverSimulation:       "Simulation",
	ReceiverVisualEditor:     "VisualEditor",
	ReceiverActionController: "ActionController",
	ReceiverMonitor:          "Monitor",
}

func (r Receiver) String() string {
	if name, ok := receiverNames[r]; ok {
		return name
	}
	return "Unknown"
}

// ReceiverSet is a set of receivers
type ReceiverSet uint8

// StandardReceivers must be notified after every change of entity
// membership or attributes
const StandardReceivers = ReceiverSet(ReceiverDataEditor | ReceiverSimulation | ReceiverVisualEditor | ReceiverActionController)

// Receivers builds a set from individual receivers
func Receivers(rs ...Receiver) ReceiverSet {
	var set ReceiverSet
	for _, r := range rs {
		set |= ReceiverSet(r)
	}
	return set
}

// Has reports whether r is in the set
func (s ReceiverSet) Has(r Receiver) bool { return s&ReceiverSet(r) != 0 }

// With returns the set extended by r
func (s ReceiverSet) With(r Receiver) ReceiverSet { return s | ReceiverSet(r) }

func (s ReceiverSet) String() string {
	var names []string
	for r, name := range receiverNames {
		if s.Has(r) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return "{" + strings.Join(names, ",") + "}"
}

// UpdateDescription tells receivers how much of their view is stale
type UpdateDescription int

// Update descriptions
const (
	UpdateAll UpdateDescription = iota
	UpdateAllExceptToken
	UpdateAllExceptSymbols
)

func (u UpdateDescription) String() string {
	switch u {
	case UpdateAll:
		return "All"
	case UpdateAllExceptToken:
		return "AllExceptToken"
	case UpdateAllExceptSymbols:
		return "AllExceptSymbols"
	}
	return "Unknown"
}

// RepositoryChangedEvent is emitted after the entity repository was mutated
type RepositoryChangedEvent struct {
	Targets ReceiverSet
	Update  UpdateDescription
}

func (e RepositoryChangedEvent) Type() EventType { return EventRepositoryChanged }

// ActionsChangedEvent is emitted when the enabled state of actions was
// recomputed
type ActionsChangedEvent struct {
	Enabled map[string]bool
}

func (e ActionsChangedEvent) Type() EventType { return EventActionsChanged }

// MonitorToggledEvent is emitted when the monitor is shown or hidden
type MonitorToggledEvent struct {
	Show bool
}

func (e MonitorToggledEvent) Type() EventType { return EventMonitorToggled }

// MonitorUpdatedEvent carries freshly computed statistics
type MonitorUpdatedEvent struct {
	Data MonitorData
}

func (e MonitorUpdatedEvent) Type() EventType { return EventMonitorUpdated }

// CellInfoToggledEvent is emitted when cell info overlays are toggled
type CellInfoToggledEvent struct {
	Show bool
}

func (e CellInfoToggledEvent) Type() EventType { return EventCellInfoToggled }

// EditModeChangedEvent is emitted when switching between editor and
// pixel view
type EditModeChangedEvent struct {
	EditMode bool
}

func (e EditModeChangedEvent) Type() EventType { return EventEditModeChanged }

// SimulationLoadedEvent is emitted when a new simulation replaced the
// current one
type SimulationLoadedEvent struct {
	Path   string // empty for a freshly created simulation
	Config SimulationConfig
}

func (e SimulationLoadedEvent) Type() EventType { return EventSimulationLoaded }

// ParametersChangedEvent is emitted when simulation parameters were replaced
type ParametersChangedEvent struct {
	Parameters SimulationParameters
}

func (e ParametersChangedEvent) Type() EventType { return EventParametersChanged }

// SymbolsChangedEvent is emitted when the symbol table was replaced
type SymbolsChangedEvent struct {
	Count int
}

func (e SymbolsChangedEvent) Type() EventType { return EventSymbolsChanged }

// ErrorEvent is emitted when an operation failed and the user must be told
type ErrorEvent struct {
	Operation string
	Err       error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
