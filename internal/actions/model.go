package actions

import "alien/internal/domain"

type entityKind int

const (
	noEntity entityKind = iota
	cellEntity
	particleEntity
)

// Model holds the transient editor state: edit mode, clipboard and the
// selection flags. The selection flags are not derived here; the
// controller sets them every time it refreshes from the repository.
type Model struct {
	editMode bool

	copiedCell     *domain.CellDescription
	copiedCellVel  domain.Vec2
	copiedParticle *domain.ParticleDescription
	lastCopied     entityKind

	copiedToken      *domain.TokenDescription
	copiedCollection *domain.DataDescription

	entitySelected            bool
	cellWithTokenSelected     bool
	cellWithFreeTokenSelected bool
	collectionSelected        bool

	pasteOffset float64
	pasteStep   float64
	pasteMax    float64
}

// NewModel creates a model. pasteStep and pasteMax control how far apart
// consecutive inserts land.
func NewModel(pasteStep, pasteMax float64) *Model {
	return &Model{pasteStep: pasteStep, pasteMax: pasteMax}
}

// IsEditMode reports whether the item editor is active
func (m *Model) IsEditMode() bool { return m.editMode }

// SetEditMode switches between item editor and pixel view
func (m *Model) SetEditMode(on bool) { m.editMode = on }

// SetCellCopied puts a cell into the clipboard together with the velocity
// it had as part of its cluster
func (m *Model) SetCellCopied(cell domain.CellDescription, vel domain.Vec2) {
	c := cell.Clone()
	m.copiedCell = &c
	m.copiedCellVel = vel
	m.lastCopied = cellEntity
}

// SetParticleCopied puts a particle into the clipboard
func (m *Model) SetParticleCopied(particle domain.ParticleDescription) {
	p := particle
	m.copiedParticle = &p
	m.lastCopied = particleEntity
}

// CopiedEntity returns the most recently copied cell or particle as a
// description ready for insertion. A copied cell becomes a single-cell
// cluster moving with the cell's former velocity.
func (m *Model) CopiedEntity() (domain.DataDescription, bool) {
	switch m.lastCopied {
	case cellEntity:
		cell := m.copiedCell.Clone()
		cell.Connections = nil
		return domain.DataDescription{
			Clusters: []domain.ClusterDescription{{
				Pos:   cell.Pos,
				Vel:   m.copiedCellVel,
				Cells: []domain.CellDescription{cell},
			}},
		}, true
	case particleEntity:
		return domain.DataDescription{
			Particles: []domain.ParticleDescription{*m.copiedParticle},
		}, true
	}
	return domain.DataDescription{}, false
}

// SetCopiedToken puts a token into the clipboard
func (m *Model) SetCopiedToken(token domain.TokenDescription) {
	t := token.Clone()
	m.copiedToken = &t
}

// CopiedToken returns the token in the clipboard
func (m *Model) CopiedToken() (domain.TokenDescription, bool) {
	if m.copiedToken == nil {
		return domain.TokenDescription{}, false
	}
	return m.copiedToken.Clone(), true
}

// SetCopiedCollection puts a collection into the clipboard
func (m *Model) SetCopiedCollection(data domain.DataDescription) {
	d := data.Clone()
	m.copiedCollection = &d
}

// CopiedCollection returns the collection in the clipboard
func (m *Model) CopiedCollection() (domain.DataDescription, bool) {
	if m.copiedCollection == nil {
		return domain.DataDescription{}, false
	}
	return m.copiedCollection.Clone(), true
}

// IsEntityCopied reports whether a cell or particle is in the clipboard
func (m *Model) IsEntityCopied() bool { return m.lastCopied != noEntity }

// IsTokenCopied reports whether a token is in the clipboard
func (m *Model) IsTokenCopied() bool { return m.copiedToken != nil }

// IsCollectionCopied reports whether a collection is in the clipboard
func (m *Model) IsCollectionCopied() bool { return m.copiedCollection != nil }

// IsEntitySelected reports whether exactly one cell or particle is selected
func (m *Model) IsEntitySelected() bool { return m.entitySelected }

// SetEntitySelected records whether a single entity is selected
func (m *Model) SetEntitySelected(v bool) { m.entitySelected = v }

// IsCellWithTokenSelected reports whether the selected cell carries tokens
func (m *Model) IsCellWithTokenSelected() bool { return m.cellWithTokenSelected }

// SetCellWithTokenSelected records whether the selected cell carries tokens
func (m *Model) SetCellWithTokenSelected(v bool) { m.cellWithTokenSelected = v }

// IsCellWithFreeTokenSelected reports whether the selected cell can take
// another token
func (m *Model) IsCellWithFreeTokenSelected() bool { return m.cellWithFreeTokenSelected }

// SetCellWithFreeTokenSelected records whether the selected cell can take
// another token
func (m *Model) SetCellWithFreeTokenSelected(v bool) { m.cellWithFreeTokenSelected = v }

// IsCollectionSelected reports whether anything is selected
func (m *Model) IsCollectionSelected() bool { return m.collectionSelected }

// SetCollectionSelected records whether anything is selected
func (m *Model) SetCollectionSelected(v bool) { m.collectionSelected = v }

// Flags returns the current state the enablement policy works on
func (m *Model) Flags() Flags {
	return Flags{
		EditMode:                  m.editMode,
		EntitySelected:            m.entitySelected,
		EntityCopied:              m.IsEntityCopied(),
		CellWithTokenSelected:     m.cellWithTokenSelected,
		CellWithFreeTokenSelected: m.cellWithFreeTokenSelected,
		TokenCopied:               m.IsTokenCopied(),
		CollectionSelected:        m.collectionSelected,
		CollectionCopied:          m.IsCollectionCopied(),
	}
}

// PositionDeltaForNewEntity returns the offset for the next inserted
// entity. Every call moves it one step further so that repeated pastes do
// not stack on top of each other; beyond pasteMax it starts over.
func (m *Model) PositionDeltaForNewEntity() domain.Vec2 {
	m.pasteOffset += m.pasteStep
	if m.pasteOffset > m.pasteMax {
		m.pasteOffset = 0
	}
	return domain.Vec2{X: m.pasteOffset, Y: -m.pasteOffset}
}
