package eventbus

import (
	"alien/internal/domain"
	"log"
	"runtime/debug"
	"sync"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventRepositoryChanged = domain.EventRepositoryChanged
	EventActionsChanged    = domain.EventActionsChanged
	EventMonitorToggled    = domain.EventMonitorToggled
	EventMonitorUpdated    = domain.EventMonitorUpdated
	EventCellInfoToggled   = domain.EventCellInfoToggled
	EventEditModeChanged   = domain.EventEditModeChanged
	EventSimulationLoaded  = domain.EventSimulationLoaded
	EventParametersChanged = domain.EventParametersChanged
	EventSymbolsChanged    = domain.EventSymbolsChanged
	EventError             = domain.EventError
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
)

// Re-export domain event types
type RepositoryChangedEvent = domain.RepositoryChangedEvent
type ActionsChangedEvent = domain.ActionsChangedEvent
type MonitorToggledEvent = domain.MonitorToggledEvent
type MonitorUpdatedEvent = domain.MonitorUpdatedEvent
type CellInfoToggledEvent = domain.CellInfoToggledEvent
type EditModeChangedEvent = domain.EditModeChangedEvent
type SimulationLoadedEvent = domain.SimulationLoadedEvent
type ParametersChangedEvent = domain.ParametersChangedEvent
type SymbolsChangedEvent = domain.SymbolsChangedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// ChangeHandler handles repository changes addressed to a receiver
type ChangeHandler func(RepositoryChangedEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	SubscribeReceiver(receiver domain.Receiver, handler ChangeHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers every event synchronously on the publishing goroutine.
// Handlers may publish further events; those are delivered before the outer
// Publish returns.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	switch e := event.(type) {
	case RepositoryChangedEvent:
		log.Printf("EventBus: Publishing event %s targets=%s update=%s", e.Type(), e.Targets, e.Update)
	case MonitorUpdatedEvent, ActionsChangedEvent:
		// Too frequent to log
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Copy handlers so that subscribing from inside a handler is safe
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(sub.handler, event)
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// SubscribeReceiver subscribes to repository changes whose target set
// contains the given receiver. Changes addressed to other receivers never
// reach the handler.
func (b *bus) SubscribeReceiver(receiver domain.Receiver, handler ChangeHandler) func() {
	return b.Subscribe(EventRepositoryChanged, func(e DomainEvent) {
		event, ok := e.(RepositoryChangedEvent)
		if !ok || !event.Targets.Has(receiver) {
			return
		}
		handler(event)
	})
}
