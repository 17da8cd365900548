package views

import (
	"fmt"
	"strings"

	"alien/internal/domain"
)

// EntityKind tells cells and particles apart in the entity list
type EntityKind int

const (
	KindCell EntityKind = iota
	KindParticle
)

// EntityRow is one line of the entity list
type EntityRow struct {
	Kind      EntityKind
	ID        uint64
	ClusterID uint64
	Pos       domain.Vec2
	Energy    float64
	Tokens    int
	Selected  bool
}

// Rows flattens a description into list rows, cells first
func Rows(data domain.DataDescription, isCellSelected, isParticleSelected func(uint64) bool) []EntityRow {
	rows := make([]EntityRow, 0, data.CellCount()+len(data.Particles))
	for _, cluster := range data.Clusters {
		for _, cell := range cluster.Cells {
			rows = append(rows, EntityRow{
				Kind:      KindCell,
				ID:        cell.ID,
				ClusterID: cluster.ID,
				Pos:       cell.Pos,
				Energy:    cell.Energy,
				Tokens:    len(cell.Tokens),
				Selected:  isCellSelected(cell.ID),
			})
		}
	}
	for _, particle := range data.Particles {
		rows = append(rows, EntityRow{
			Kind:     KindParticle,
			ID:       particle.ID,
			Pos:      particle.Pos,
			Energy:   particle.Energy,
			Selected: isParticleSelected(particle.ID),
		})
	}
	return rows
}

// EntityRenderer handles rendering of the entity list
type EntityRenderer struct {
	styles *Styles
}

// NewEntityRenderer creates a new entity renderer
func NewEntityRenderer(styles *Styles) *EntityRenderer {
	return &EntityRenderer{styles: styles}
}

// RenderRow renders a single entity line
func (r *EntityRenderer) RenderRow(row EntityRow, atCursor bool) string {
	indicator := "[ ]"
	if row.Selected {
		indicator = r.styles.Selected.Render("[x]")
	}

	var label string
	switch row.Kind {
	case KindCell:
		label = r.styles.Cell.Render(fmt.Sprintf("cell %-5d", row.ID))
		label += r.styles.Dim.Render(fmt.Sprintf(" cluster %-4d", row.ClusterID))
	default:
		label = r.styles.Particle.Render(fmt.Sprintf("particle %-5d", row.ID))
		label += strings.Repeat(" ", 13)
	}

	details := fmt.Sprintf(" (%7.2f, %7.2f)  e=%.1f", row.Pos.X, row.Pos.Y, row.Energy)
	if row.Tokens > 0 {
		details += fmt.Sprintf("  tokens=%d", row.Tokens)
	}

	line := fmt.Sprintf("%s %s%s", indicator, label, details)
	if atCursor {
		return r.styles.Cursor.Render(line)
	}
	return line
}

// RenderList renders the visible window of the entity list
func (r *EntityRenderer) RenderList(rows []EntityRow, cursor, offset, height int) string {
	if len(rows) == 0 {
		return r.styles.Dim.Render("No entities. Press n for a new cell or p for a new particle.")
	}
	if height <= 0 {
		height = len(rows)
	}
	end := offset + height
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more", offset)))
	}
	for i := offset; i < end; i++ {
		lines = append(lines, r.RenderRow(rows[i], i == cursor))
	}
	if end < len(rows) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more", len(rows)-end)))
	}
	return strings.Join(lines, "\n")
}

// RenderCellInfo renders the details of a cell
func (r *EntityRenderer) RenderCellInfo(cell domain.CellDescription, selectedToken int, hasToken bool) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render(fmt.Sprintf("Cell %d", cell.ID)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "energy %.2f  bonds %d/%d  branch %d", cell.Energy, len(cell.Connections), cell.MaxConnections, cell.TokenBranchNumber)
	if cell.TokenBlocked {
		b.WriteString("  blocked")
	}
	if cell.Metadata.Name != "" {
		fmt.Fprintf(&b, "  name %q", cell.Metadata.Name)
	}
	for i, token := range cell.Tokens {
		marker := " "
		if hasToken && i == selectedToken {
			marker = r.styles.Selected.Render(">")
		}
		fmt.Fprintf(&b, "\n%s token %d  energy %.1f  memory %d bytes", marker, i, token.Energy, len(token.Data))
	}
	return b.String()
}
