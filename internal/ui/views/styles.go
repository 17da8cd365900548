package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Section       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Prompt        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Panel         lipgloss.Style
	Scroll        lipgloss.Style
	Key           lipgloss.Style
	Enabled       lipgloss.Style
	Disabled      lipgloss.Style
	Cursor        lipgloss.Style
	Selected      lipgloss.Style
	Cell          lipgloss.Style
	Particle      lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	ModeEdit      lipgloss.Style
	ModeView      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Help:   lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Key:           lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Enabled:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Disabled:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
		Cursor:        lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cell:          lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Particle:      lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		ModeEdit:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		ModeView:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	}
}
