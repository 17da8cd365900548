package views

import (
	"testing"

	"alien/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsListCellsBeforeParticles(t *testing.T) {
	data := domain.DataDescription{
		Clusters: []domain.ClusterDescription{{
			ID:    1,
			Cells: []domain.CellDescription{{ID: 2, Tokens: []domain.TokenDescription{{}}}, {ID: 3}},
		}},
		Particles: []domain.ParticleDescription{{ID: 4}},
	}
	selected := func(id uint64) bool { return id == 3 || id == 4 }

	rows := Rows(data, selected, selected)
	require.Len(t, rows, 3)
	assert.Equal(t, KindCell, rows[0].Kind)
	assert.Equal(t, uint64(1), rows[0].ClusterID)
	assert.Equal(t, 1, rows[0].Tokens)
	assert.False(t, rows[0].Selected)
	assert.True(t, rows[1].Selected)
	assert.Equal(t, KindParticle, rows[2].Kind)
	assert.True(t, rows[2].Selected)
}

func TestRenderListWindow(t *testing.T) {
	r := NewRenderer()
	rows := make([]EntityRow, 10)
	for i := range rows {
		rows[i] = EntityRow{Kind: KindParticle, ID: uint64(i + 1)}
	}

	out := r.Entities().RenderList(rows, 4, 3, 4)
	assert.Contains(t, out, "↑ 3 more")
	assert.Contains(t, out, "↓ 3 more")
	assert.Contains(t, out, "particle 4")
	assert.NotContains(t, out, "particle 8 ")

	assert.Contains(t, r.Entities().RenderList(nil, 0, 0, 5), "No entities")
}

func TestRenderActionsAndMonitor(t *testing.T) {
	r := NewRenderer()
	out := r.RenderActions([]ActionEntry{
		{Name: "new-cell", Key: "n", Enabled: true},
		{Name: "paste-entity", Key: "v"},
	})
	assert.Contains(t, out, "new-cell")
	assert.Contains(t, out, "paste-entity")

	monitor := r.RenderMonitor(domain.MonitorData{NumCells: 12, TotalInternalEnergy: 3.5})
	assert.Contains(t, monitor, "cells      12")
	assert.Contains(t, monitor, "3.50")
}

func TestRenderCellInfo(t *testing.T) {
	r := NewRenderer()
	out := r.Entities().RenderCellInfo(domain.CellDescription{
		ID:             7,
		Energy:         100,
		MaxConnections: 4,
		Connections:    []uint64{1},
		Tokens:         []domain.TokenDescription{{Energy: 60, Data: make([]byte, 8)}},
	}, 0, true)
	assert.Contains(t, out, "Cell 7")
	assert.Contains(t, out, "bonds 1/4")
	assert.Contains(t, out, "memory 8 bytes")
}

func TestRenderTitleShowsModeAndFile(t *testing.T) {
	r := NewRenderer()
	out := r.Render(ViewState{
		Width:          120,
		EditMode:       true,
		SimulationPath: "/tmp/world.sim",
		Dirty:          true,
		Revision:       3,
		InsertPosition: domain.Vec2{X: 12, Y: -4.5},
		StatusMessage:  "saved",
	})
	assert.Contains(t, out, "[edit]")
	assert.Contains(t, out, "world.sim*")
	assert.Contains(t, out, "3 changes")
	assert.Contains(t, out, "insert 12.0,-4.5")
	assert.Contains(t, out, "saved")
}

func TestRenderSymbolsCapsList(t *testing.T) {
	r := NewRenderer()
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}

	out := r.RenderSymbols(names)

	assert.Contains(t, out, "Symbols")
	assert.Contains(t, out, "H")
	assert.NotContains(t, out, "J")
	assert.Contains(t, out, "+2 more")

	assert.NotContains(t, r.Render(ViewState{Width: 120}), "Symbols")
	assert.Contains(t, r.Render(ViewState{Width: 120, Symbols: []string{"MEM"}}), "MEM")
}
