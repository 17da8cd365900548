package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
	"gopkg.in/yaml.v3"

	"alien/internal/actions"
	"alien/internal/domain"
)

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title string
	err   error
}

// Pager shows long content in ov while the program is suspended
type Pager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPager creates a new pager
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram sets the program whose terminal the pager borrows
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show pages the content with ov
func (p *Pager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// command runs the pager as a tea command
func (p *Pager) command(title, content string) tea.Cmd {
	return func() tea.Msg {
		return pagerMsg{title: title, err: p.Show(content)}
	}
}

// HelpContent renders the full key reference
func HelpContent(keys KeyMap) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("alien editor help"))
	help.WriteString("\n\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			fmt.Fprintf(&help, "  %-10s %s\n", keyStyle.Render(b.Help().Key), b.Help().Desc)
		}
	}

	help.WriteString("\n")
	help.WriteString(sectionStyle.Render("Actions"))
	help.WriteString("\n")
	for _, a := range actions.All() {
		k, ok := actionKeys[a]
		if !ok {
			k = ":" + a.String()
		}
		fmt.Fprintf(&help, "  %-10s %s\n", keyStyle.Render(k), a)
	}

	help.WriteString("\n")
	help.WriteString(sectionStyle.Render("Command prompt"))
	help.WriteString("\n")
	help.WriteString("  :<action> [argument] runs any action. File actions take a path,\n")
	help.WriteString("  edit-parameters takes TOML (key = value; ...), edit-symbols takes\n")
	help.WriteString("  NAME=VALUE;... and new-simulation takes WIDTHxHEIGHT.\n")
	return help.String()
}

// SelectionContent renders the extended selection as YAML
func SelectionContent(data domain.DataDescription) (string, error) {
	if data.IsEmpty() {
		return "# nothing selected\n", nil
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to render selection: %w", err)
	}
	header := fmt.Sprintf("# %d clusters, %d cells, %d particles\n",
		len(data.Clusters), data.CellCount(), len(data.Particles))
	return header + string(out), nil
}
