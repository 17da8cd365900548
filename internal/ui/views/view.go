package views

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"alien/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	EditMode       bool
	SimulationPath string
	Dirty          bool
	Revision       int
	InsertPosition domain.Vec2
	Rows           []EntityRow
	Cursor         int
	ViewportOffset int
	ViewportHeight int
	Actions        []ActionEntry
	ShowMonitor    bool
	Monitor        domain.MonitorData
	Symbols        []string
	CellInfo       string
	StatusMessage  string
	StatusLevel    StatusLevel
	Prompt         string
	HelpView       string
}

// StatusLevel selects the style of the status line
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusSuccess
	StatusWarning
	StatusError
)

// Renderer handles all view rendering
type Renderer struct {
	styles   *Styles
	entities *EntityRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:   styles,
		entities: NewEntityRenderer(styles),
	}
}

// Entities returns the entity list renderer
func (r *Renderer) Entities() *EntityRenderer { return r.entities }

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n\n")

	left := r.entities.RenderList(state.Rows, state.Cursor, state.ViewportOffset, state.ViewportHeight)
	if state.CellInfo != "" {
		left += "\n\n" + state.CellInfo
	}

	right := r.RenderActions(state.Actions)
	if state.ShowMonitor {
		right = lipgloss.JoinVertical(lipgloss.Left, right, r.RenderMonitor(state.Monitor))
	}
	if len(state.Symbols) > 0 {
		right = lipgloss.JoinVertical(lipgloss.Left, right, r.RenderSymbols(state.Symbols))
	}

	leftWidth := state.Width - lipgloss.Width(right) - 8
	if leftWidth < 40 {
		leftWidth = 40
	}
	content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(left),
		right,
	))
	content.WriteString("\n")

	if state.StatusMessage != "" {
		content.WriteString(r.statusStyle(state.StatusLevel).Render(state.StatusMessage))
		content.WriteString("\n")
	}
	if state.Prompt != "" {
		content.WriteString(state.Prompt)
		content.WriteString("\n")
	}
	if state.HelpView != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	title := r.styles.Title.Render("alien")

	mode := r.styles.ModeView.Render("[view]")
	if state.EditMode {
		mode = r.styles.ModeEdit.Render("[edit]")
	}

	name := "untitled"
	if state.SimulationPath != "" {
		name = filepath.Base(state.SimulationPath)
	}
	if state.Dirty {
		name += "*"
	}
	details := fmt.Sprintf("insert %.1f,%.1f", state.InsertPosition.X, state.InsertPosition.Y)
	if state.Revision > 0 {
		details = fmt.Sprintf("%d changes  %s", state.Revision, details)
	}

	return fmt.Sprintf("%s %s %s  %s", title, mode, r.styles.Dim.Render(name), r.styles.Dim.Render(details))
}

func (r *Renderer) statusStyle(level StatusLevel) lipgloss.Style {
	switch level {
	case StatusError:
		return r.styles.StatusError
	case StatusWarning:
		return r.styles.StatusWarning
	case StatusSuccess:
		return r.styles.StatusSuccess
	}
	return r.styles.Status
}

// RenderPrompt renders a text prompt line
func (r *Renderer) RenderPrompt(title, input string) string {
	return r.styles.Prompt.Render(title+": ") + input
}
