package session

import (
	"log"
	"sync"

	"alien/internal/domain"
	"alien/internal/eventbus"
)

// Session holds the state of the running simulation that is not part of
// the entity graph: universe config, parameters and the symbol table.
// It is also the Simulation receiver: every change addressed to the
// simulation bumps the revision and marks the session dirty until saved.
type Session struct {
	mu sync.RWMutex

	config   domain.SimulationConfig
	symbols  domain.SymbolTable
	path     string // file the simulation was loaded from or saved to
	revision int
	dirty    bool

	unsubscribe func()
}

// New creates a session and subscribes it to simulation changes
func New(bus eventbus.EventBus, cfg domain.SimulationConfig) *Session {
	s := &Session{
		config:  cfg,
		symbols: domain.SymbolTable{},
	}
	if bus != nil {
		s.unsubscribe = bus.SubscribeReceiver(domain.ReceiverSimulation, s.onChanged)
	}
	return s
}

func (s *Session) onChanged(e eventbus.RepositoryChangedEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision++
	s.dirty = true
	log.Printf("Session: simulation content changed (revision %d, update %s)", s.revision, e.Update)
}

// Close detaches the session from the bus
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Config returns the current simulation config
func (s *Session) Config() domain.SimulationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the simulation config
func (s *Session) SetConfig(cfg domain.SimulationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.dirty = true
}

// Parameters returns the current simulation parameters
func (s *Session) Parameters() domain.SimulationParameters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config.Parameters
}

// SetParameters replaces the simulation parameters
func (s *Session) SetParameters(params domain.SimulationParameters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Parameters = params
	s.dirty = true
}

// Symbols returns a copy of the symbol table
func (s *Session) Symbols() domain.SymbolTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbols.Clone()
}

// SetSymbols replaces the symbol table
func (s *Session) SetSymbols(symbols domain.SymbolTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = symbols.Clone()
	s.dirty = true
}

// MarkSaved records that the simulation was written to path
func (s *Session) MarkSaved(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.dirty = false
}

// MarkLoaded records that a fresh simulation was loaded from path (empty
// for a newly created one)
func (s *Session) MarkLoaded(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = path
	s.dirty = false
	s.revision = 0
}

// Path returns the file of the current simulation
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Revision returns the number of changes since the simulation was loaded
func (s *Session) Revision() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Dirty reports whether there are unsaved changes
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}
