package actions

import (
	"testing"

	"alien/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectangle(t *testing.T) {
	data := Rectangle(domain.RectangleParams{Width: 3, Height: 2, Distance: 1, Energy: 50})
	require.Len(t, data.Clusters, 1)
	cells := data.Clusters[0].Cells
	require.Len(t, cells, 6)

	bonds := 0
	for _, cell := range cells {
		assert.Equal(t, 50.0, cell.Energy)
		assert.Equal(t, len(cell.Connections), cell.MaxConnections)
		bonds += len(cell.Connections)
	}
	// 3x2 lattice has 7 edges, each counted from both ends
	assert.Equal(t, 14, bonds)
	assert.Equal(t, 2, cells[0].MaxConnections)
	assert.Equal(t, 3, cells[1].MaxConnections)
	assert.InDelta(t, 1, data.Clusters[0].Pos.X, 1e-9)
	assert.InDelta(t, 0.5, data.Clusters[0].Pos.Y, 1e-9)
}

func TestRectangleInvalidSize(t *testing.T) {
	assert.True(t, Rectangle(domain.RectangleParams{Width: 0, Height: 3}).IsEmpty())
}

func TestHexagon(t *testing.T) {
	single := Hexagon(domain.HexagonParams{Layers: 1, Distance: 1})
	require.Len(t, single.Clusters, 1)
	assert.Len(t, single.Clusters[0].Cells, 1)

	data := Hexagon(domain.HexagonParams{Layers: 2, Distance: 1, Energy: 20})
	cells := data.Clusters[0].Cells
	require.Len(t, cells, 7)

	center := data.Center()
	assert.InDelta(t, 0, center.X, 1e-9)
	assert.InDelta(t, 0, center.Y, 1e-9)

	for _, cell := range cells {
		if cell.Pos.LengthSquared() < 1e-9 {
			assert.Len(t, cell.Connections, 6)
			continue
		}
		assert.InDelta(t, 1, cell.Pos.LengthSquared(), 1e-9)
		assert.Len(t, cell.Connections, 3)
	}

	assert.Len(t, Hexagon(domain.HexagonParams{Layers: 3, Distance: 1}).Clusters[0].Cells, 19)
	assert.True(t, Hexagon(domain.HexagonParams{}).IsEmpty())
}
