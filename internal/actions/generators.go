package actions

import (
	"math"

	"alien/internal/domain"
)

// Rectangle builds a single cluster of width x height cells on a square
// lattice. Every cell is bonded to its horizontal and vertical neighbours.
func Rectangle(params domain.RectangleParams) domain.DataDescription {
	if params.Width <= 0 || params.Height <= 0 {
		return domain.DataDescription{}
	}
	id := func(x, y int) uint64 { return uint64(y*params.Width+x) + 1 }

	cells := make([]domain.CellDescription, 0, params.Width*params.Height)
	for y := range params.Height {
		for x := range params.Width {
			var connections []uint64
			if x > 0 {
				connections = append(connections, id(x-1, y))
			}
			if x < params.Width-1 {
				connections = append(connections, id(x+1, y))
			}
			if y > 0 {
				connections = append(connections, id(x, y-1))
			}
			if y < params.Height-1 {
				connections = append(connections, id(x, y+1))
			}
			cells = append(cells, domain.CellDescription{
				ID:             id(x, y),
				Pos:            domain.Vec2{X: float64(x) * params.Distance, Y: float64(y) * params.Distance},
				Energy:         params.Energy,
				MaxConnections: len(connections),
				Connections:    connections,
			})
		}
	}
	return singleCluster(cells)
}

type axial struct{ q, r int }

var hexNeighbours = []axial{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, -1}, {-1, 1}}

// Hexagon builds a single cluster on a triangular lattice: one center cell
// surrounded by layers-1 rings. Neighbouring cells are bonded.
func Hexagon(params domain.HexagonParams) domain.DataDescription {
	if params.Layers <= 0 {
		return domain.DataDescription{}
	}
	n := params.Layers - 1
	inside := func(a axial) bool {
		return abs(a.q) <= n && abs(a.r) <= n && abs(a.q+a.r) <= n
	}

	ids := map[axial]uint64{}
	var order []axial
	for r := -n; r <= n; r++ {
		for q := -n; q <= n; q++ {
			a := axial{q, r}
			if inside(a) {
				order = append(order, a)
				ids[a] = uint64(len(order))
			}
		}
	}

	cells := make([]domain.CellDescription, 0, len(order))
	for _, a := range order {
		var connections []uint64
		for _, d := range hexNeighbours {
			if id, ok := ids[axial{a.q + d.q, a.r + d.r}]; ok {
				connections = append(connections, id)
			}
		}
		cells = append(cells, domain.CellDescription{
			ID: ids[a],
			Pos: domain.Vec2{
				X: params.Distance * (float64(a.q) + float64(a.r)/2),
				Y: params.Distance * float64(a.r) * math.Sqrt(3) / 2,
			},
			Energy:         params.Energy,
			MaxConnections: len(connections),
			Connections:    connections,
		})
	}
	return singleCluster(cells)
}

func singleCluster(cells []domain.CellDescription) domain.DataDescription {
	cluster := domain.ClusterDescription{Cells: cells}
	cluster.Pos = domain.DataDescription{Clusters: []domain.ClusterDescription{cluster}}.Center()
	return domain.DataDescription{Clusters: []domain.ClusterDescription{cluster}}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
