package ui

import (
	"alien/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// Events are the domain events the UI reacts to. They reach the model as
// EventMsg.
var Events = []eventbus.EventType{
	eventbus.EventRepositoryChanged,
	eventbus.EventActionsChanged,
	eventbus.EventEditModeChanged,
	eventbus.EventSimulationLoaded,
	eventbus.EventParametersChanged,
	eventbus.EventSymbolsChanged,
	eventbus.EventCellInfoToggled,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}
