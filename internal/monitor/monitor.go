package monitor

import (
	"log"
	"sync"

	"alien/internal/domain"
	"alien/internal/eventbus"
)

// Source provides the entity graph to measure
type Source interface {
	Data() domain.DataDescription
}

// Monitor keeps aggregate statistics of the entity graph up to date while
// it is shown
type Monitor struct {
	mu     sync.RWMutex
	source Source
	bus    eventbus.EventBus
	shown  bool
	data   domain.MonitorData

	unsubscribe []func()
}

// New creates a monitor and subscribes it to repository changes and toggle
// events
func New(bus eventbus.EventBus, source Source) *Monitor {
	m := &Monitor{source: source, bus: bus}
	m.unsubscribe = []func(){
		bus.SubscribeReceiver(domain.ReceiverMonitor, m.onChanged),
		bus.Subscribe(eventbus.EventMonitorToggled, m.onToggled),
	}
	return m
}

// Close detaches the monitor from the bus
func (m *Monitor) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
}

// Shown reports whether the monitor is visible
func (m *Monitor) Shown() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shown
}

// Data returns the most recent statistics
func (m *Monitor) Data() domain.MonitorData {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data
}

func (m *Monitor) onToggled(e eventbus.DomainEvent) {
	event, ok := e.(eventbus.MonitorToggledEvent)
	if !ok {
		return
	}
	m.mu.Lock()
	m.shown = event.Show
	m.mu.Unlock()
	log.Printf("Monitor: shown=%v", event.Show)
	if event.Show {
		m.Refresh()
	}
}

func (m *Monitor) onChanged(eventbus.RepositoryChangedEvent) {
	if !m.Shown() {
		return
	}
	m.Refresh()
}

// Refresh measures the current entity graph and publishes the result
func (m *Monitor) Refresh() {
	data := domain.Measure(m.source.Data())
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	m.bus.Publish(eventbus.MonitorUpdatedEvent{Data: data})
}
