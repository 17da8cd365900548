package repository

import (
	"log"
	"sort"
	"sync"

	"alien/internal/domain"
	"alien/internal/random"
)

// Options configures a Store
type Options struct {
	UniverseSize domain.IntVec2
	Parameters   func() domain.SimulationParameters
	Rand         *random.Generator
}

// Store is the in-memory entity graph together with the current selection.
// It is the single source of truth every receiver re-reads after a change
// notification.
type Store struct {
	mu sync.RWMutex

	data     domain.DataDescription
	universe domain.IntVec2
	insertAt domain.Vec2
	nextID   uint64

	selectedCells     map[uint64]bool
	selectedParticles map[uint64]bool
	selectedToken     int // -1 if none

	params func() domain.SimulationParameters
	rng    *random.Generator
}

// NewStore creates an empty store
func NewStore(opts Options) *Store {
	if opts.Parameters == nil {
		opts.Parameters = domain.DefaultParameters
	}
	if opts.Rand == nil {
		opts.Rand = random.New(1)
	}
	s := &Store{
		universe:          opts.UniverseSize,
		nextID:            1,
		selectedCells:     make(map[uint64]bool),
		selectedParticles: make(map[uint64]bool),
		selectedToken:     -1,
		params:            opts.Parameters,
		rng:               opts.Rand,
	}
	s.insertAt = domain.Vec2{X: float64(opts.UniverseSize.X) / 2, Y: float64(opts.UniverseSize.Y) / 2}
	return s
}

// Data returns a copy of the whole entity graph
func (s *Store) Data() domain.DataDescription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Replace swaps in a new entity graph and clears the selection. Ids of the
// new graph are kept.
func (s *Store) Replace(data domain.DataDescription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data.Clone()
	s.nextID = maxID(s.data) + 1
	s.clearSelectionLocked()
}

// SetUniverseSize updates the bounds used for random placement and moves
// the insert position to the new center
func (s *Store) SetUniverseSize(size domain.IntVec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.universe = size
	s.insertAt = domain.Vec2{X: float64(size.X) / 2, Y: float64(size.Y) / 2}
}

// UniverseSize returns the current universe bounds
func (s *Store) UniverseSize() domain.IntVec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.universe
}

// SetInsertPosition sets where new entities are centered
func (s *Store) SetInsertPosition(pos domain.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertAt = pos
}

// InsertPosition returns where new entities are centered
func (s *Store) InsertPosition() domain.Vec2 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.insertAt
}

// Selection operations

// SelectCells replaces the selection by the given cells
func (s *Store) SelectCells(ids ...uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionLocked()
	for _, id := range ids {
		s.selectedCells[id] = true
	}
}

// SelectParticles replaces the selection by the given particles
func (s *Store) SelectParticles(ids ...uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionLocked()
	for _, id := range ids {
		s.selectedParticles[id] = true
	}
}

// ToggleCell adds or removes a cell from the selection
func (s *Store) ToggleCell(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedCells[id] {
		delete(s.selectedCells, id)
	} else {
		s.selectedCells[id] = true
	}
	s.selectedToken = -1
}

// ToggleParticle adds or removes a particle from the selection
func (s *Store) ToggleParticle(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedParticles[id] {
		delete(s.selectedParticles, id)
	} else {
		s.selectedParticles[id] = true
	}
}

// ClearSelection deselects everything
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSelectionLocked()
}

func (s *Store) clearSelectionLocked() {
	s.selectedCells = make(map[uint64]bool)
	s.selectedParticles = make(map[uint64]bool)
	s.selectedToken = -1
}

// SelectToken marks a token of the single selected cell
func (s *Store) SelectToken(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedToken = index
}

// SelectedCellIDs returns the selected cells in ascending order
func (s *Store) SelectedCellIDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.selectedCells)
}

// SelectedParticleIDs returns the selected particles in ascending order
func (s *Store) SelectedParticleIDs() []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.selectedParticles)
}

// IsCellSelected checks if a cell is selected
func (s *Store) IsCellSelected(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedCells[id]
}

// IsParticleSelected checks if a particle is selected
func (s *Store) IsParticleSelected(id uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedParticles[id]
}

// SelectedTokenIndex returns the selected token of the selected cell, if any
func (s *Store) SelectedTokenIndex() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cell, ok := s.singleSelectedCellLocked()
	if !ok || s.selectedToken < 0 || s.selectedToken >= len(cell.Tokens) {
		return 0, false
	}
	return s.selectedToken, true
}

// Lookups

// Cell returns a copy of the cell with the given id
func (s *Store) Cell(id uint64) (domain.CellDescription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ci, cj, ok := s.findCellLocked(id)
	if !ok {
		return domain.CellDescription{}, false
	}
	return s.data.Clusters[ci].Cells[cj].Clone(), true
}

// ClusterOf returns a copy of the cluster owning the given cell
func (s *Store) ClusterOf(cellID uint64) (domain.ClusterDescription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ci, _, ok := s.findCellLocked(cellID)
	if !ok {
		return domain.ClusterDescription{}, false
	}
	return s.data.Clusters[ci].Clone(), true
}

// Particle returns a copy of the particle with the given id
func (s *Store) Particle(id uint64) (domain.ParticleDescription, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.data.Particles {
		if p.ID == id {
			return p, true
		}
	}
	return domain.ParticleDescription{}, false
}

func (s *Store) findCellLocked(id uint64) (int, int, bool) {
	for i, cluster := range s.data.Clusters {
		for j, cell := range cluster.Cells {
			if cell.ID == id {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func (s *Store) singleSelectedCellLocked() (*domain.CellDescription, bool) {
	if len(s.selectedCells) != 1 || len(s.selectedParticles) != 0 {
		return nil, false
	}
	for id := range s.selectedCells {
		if ci, cj, ok := s.findCellLocked(id); ok {
			return &s.data.Clusters[ci].Cells[cj], true
		}
	}
	return nil, false
}

// Insertion

// AddAndSelect inserts a copy of data centered at the insert position plus
// delta, assigns fresh ids and selects exactly the inserted entities
func (s *Store) AddAndSelect(data domain.DataDescription, delta domain.Vec2) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := data.Clone()
	added.Translate(s.insertAt.Add(delta).Sub(added.Center()))
	s.assignIDsLocked(&added)
	s.appendLocked(added)

	s.clearSelectionLocked()
	s.selectAllOfLocked(added)
}

// AddAndSelectCell inserts a single unconnected cell and selects it
func (s *Store) AddAndSelectCell(delta domain.Vec2) {
	params := s.params()
	cell := domain.CellDescription{
		Energy:         params.CellCreationEnergy,
		MaxConnections: params.CellMaxBonds,
	}
	s.AddAndSelect(domain.DataDescription{
		Clusters: []domain.ClusterDescription{{Cells: []domain.CellDescription{cell}}},
	}, delta)
}

// AddAndSelectParticle inserts a single particle and selects it
func (s *Store) AddAndSelectParticle(delta domain.Vec2) {
	params := s.params()
	s.AddAndSelect(domain.DataDescription{
		Particles: []domain.ParticleDescription{{Energy: params.ParticleCreationEnergy}},
	}, delta)
}

// AddReplicas inserts already positioned copies. Each copy is rotated around
// its own center first if an angle is given. The selection is left as is.
func (s *Store) AddReplicas(replicas []domain.Replica) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, replica := range replicas {
		added := replica.Data.Clone()
		if replica.Angle != nil {
			added.Rotate(*replica.Angle)
		}
		s.assignIDsLocked(&added)
		s.appendLocked(added)
	}
}

// AddRandomParticles sprays particles over the whole universe until
// totalEnergy is used up. The new particles become the selection.
func (s *Store) AddRandomParticles(totalEnergy, maxEnergyPerParticle float64) {
	if totalEnergy <= 0 || maxEnergyPerParticle <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var added domain.DataDescription
	for remaining := totalEnergy; remaining > 0; remaining -= maxEnergyPerParticle {
		energy := maxEnergyPerParticle
		if remaining < energy {
			energy = remaining
		}
		added.Particles = append(added.Particles, domain.ParticleDescription{
			Pos:    domain.Vec2{X: s.rng.Real(0, float64(s.universe.X)), Y: s.rng.Real(0, float64(s.universe.Y))},
			Vel:    domain.Vec2{X: s.rng.Real(-0.5, 0.5), Y: s.rng.Real(-0.5, 0.5)},
			Energy: energy,
		})
	}
	s.assignIDsLocked(&added)
	s.appendLocked(added)

	s.clearSelectionLocked()
	s.selectAllOfLocked(added)
}

func (s *Store) appendLocked(added domain.DataDescription) {
	s.data.Clusters = append(s.data.Clusters, added.Clusters...)
	s.data.Particles = append(s.data.Particles, added.Particles...)
}

func (s *Store) selectAllOfLocked(added domain.DataDescription) {
	for _, cluster := range added.Clusters {
		for _, cell := range cluster.Cells {
			s.selectedCells[cell.ID] = true
		}
	}
	for _, p := range added.Particles {
		s.selectedParticles[p.ID] = true
	}
}

// assignIDsLocked gives every entity of data a fresh id and rewrites cell
// connections. Connections to cells outside data are dropped.
func (s *Store) assignIDsLocked(data *domain.DataDescription) {
	mapping := make(map[uint64]uint64)
	for i := range data.Clusters {
		cluster := &data.Clusters[i]
		cluster.ID = s.newIDLocked()
		for j := range cluster.Cells {
			newID := s.newIDLocked()
			mapping[cluster.Cells[j].ID] = newID
			cluster.Cells[j].ID = newID
		}
	}
	for i := range data.Clusters {
		for j := range data.Clusters[i].Cells {
			cell := &data.Clusters[i].Cells[j]
			var connections []uint64
			for _, old := range cell.Connections {
				if id, ok := mapping[old]; ok {
					connections = append(connections, id)
				}
			}
			cell.Connections = connections
		}
	}
	for i := range data.Particles {
		data.Particles[i].ID = s.newIDLocked()
	}
}

func (s *Store) newIDLocked() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

// Deletion

// DeleteSelection removes the selected cells and particles. Connections to
// removed cells are cut and clusters left without cells disappear.
func (s *Store) DeleteSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clusters := s.data.Clusters[:0]
	for _, cluster := range s.data.Clusters {
		cells := cluster.Cells[:0]
		for _, cell := range cluster.Cells {
			if s.selectedCells[cell.ID] {
				continue
			}
			cell.Connections = withoutIDs(cell.Connections, s.selectedCells)
			cells = append(cells, cell)
		}
		if len(cells) == 0 {
			continue
		}
		cluster.Cells = cells
		clusters = append(clusters, cluster)
	}
	s.data.Clusters = clusters
	s.removeSelectedParticlesLocked()
	s.clearSelectionLocked()
}

// DeleteExtendedSelection removes every cluster touched by the selection
// together with the selected particles
func (s *Store) DeleteExtendedSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clusters := s.data.Clusters[:0]
	for _, cluster := range s.data.Clusters {
		if s.touchesSelectionLocked(cluster) {
			continue
		}
		clusters = append(clusters, cluster)
	}
	s.data.Clusters = clusters
	s.removeSelectedParticlesLocked()
	s.clearSelectionLocked()
}

func (s *Store) removeSelectedParticlesLocked() {
	particles := s.data.Particles[:0]
	for _, p := range s.data.Particles {
		if !s.selectedParticles[p.ID] {
			particles = append(particles, p)
		}
	}
	s.data.Particles = particles
}

func (s *Store) touchesSelectionLocked(cluster domain.ClusterDescription) bool {
	for _, cell := range cluster.Cells {
		if s.selectedCells[cell.ID] {
			return true
		}
	}
	return false
}

// ExtendedSelection returns whole clusters of the selected cells plus the
// selected particles
func (s *Store) ExtendedSelection() domain.DataDescription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result domain.DataDescription
	for _, cluster := range s.data.Clusters {
		if s.touchesSelectionLocked(cluster) {
			result.Clusters = append(result.Clusters, cluster.Clone())
		}
	}
	for _, p := range s.data.Particles {
		if s.selectedParticles[p.ID] {
			result.Particles = append(result.Particles, p)
		}
	}
	return result
}

// Tokens

// AddToken appends a token to the single selected cell, behind the selected
// token if there is one. A nil token creates a default one. Returns false if
// no single cell is selected or the cell is full.
func (s *Store) AddToken(token *domain.TokenDescription) bool {
	params := s.params()
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, ok := s.singleSelectedCellLocked()
	if !ok {
		return false
	}
	if len(cell.Tokens) >= params.CellMaxToken {
		log.Printf("Repository: cell %d already carries %d tokens", cell.ID, len(cell.Tokens))
		return false
	}

	var added domain.TokenDescription
	if token != nil {
		added = token.Clone()
	} else {
		added = domain.TokenDescription{
			Energy: params.TokenCreationEnergy,
			Data:   make([]byte, params.TokenMemorySize),
		}
	}

	index := len(cell.Tokens)
	if s.selectedToken >= 0 && s.selectedToken < len(cell.Tokens) {
		index = s.selectedToken + 1
	}
	cell.Tokens = append(cell.Tokens, domain.TokenDescription{})
	copy(cell.Tokens[index+1:], cell.Tokens[index:])
	cell.Tokens[index] = added
	s.selectedToken = index
	return true
}

// DeleteToken removes the selected token (or the last one) of the single
// selected cell. Returns false if there was nothing to delete.
func (s *Store) DeleteToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, ok := s.singleSelectedCellLocked()
	if !ok || len(cell.Tokens) == 0 {
		return false
	}
	index := len(cell.Tokens) - 1
	if s.selectedToken >= 0 && s.selectedToken < len(cell.Tokens) {
		index = s.selectedToken
	}
	cell.Tokens = append(cell.Tokens[:index], cell.Tokens[index+1:]...)

	switch {
	case len(cell.Tokens) == 0:
		s.selectedToken = -1
	case index >= len(cell.Tokens):
		s.selectedToken = len(cell.Tokens) - 1
	default:
		s.selectedToken = index
	}
	return true
}

func sortedIDs(set map[uint64]bool) []uint64 {
	ids := make([]uint64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func withoutIDs(ids []uint64, remove map[uint64]bool) []uint64 {
	var result []uint64
	for _, id := range ids {
		if !remove[id] {
			result = append(result, id)
		}
	}
	return result
}

func maxID(data domain.DataDescription) uint64 {
	var max uint64
	for _, cluster := range data.Clusters {
		if cluster.ID > max {
			max = cluster.ID
		}
		for _, cell := range cluster.Cells {
			if cell.ID > max {
				max = cell.ID
			}
		}
	}
	for _, p := range data.Particles {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}
