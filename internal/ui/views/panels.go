package views

import (
	"fmt"
	"strings"

	"alien/internal/domain"
)

// ActionEntry is one line of the action panel
type ActionEntry struct {
	Name    string
	Key     string
	Enabled bool
}

// RenderActions renders the action panel. Disabled actions stay visible but
// are struck through.
func (r *Renderer) RenderActions(entries []ActionEntry) string {
	var lines []string
	lines = append(lines, r.styles.Section.Render("Actions"))
	for _, entry := range entries {
		keyText := fmt.Sprintf("%-7s", entry.Key)
		if entry.Enabled {
			lines = append(lines, r.styles.Key.Render(keyText)+" "+r.styles.Enabled.Render(entry.Name))
		} else {
			lines = append(lines, r.styles.Dim.Render(keyText)+" "+r.styles.Disabled.Render(entry.Name))
		}
	}
	return r.styles.Panel.Render(strings.Join(lines, "\n"))
}

// RenderMonitor renders the aggregate statistics
func (r *Renderer) RenderMonitor(data domain.MonitorData) string {
	lines := []string{
		r.styles.Section.Render("Monitor"),
		fmt.Sprintf("clusters   %d", data.NumClusters),
		fmt.Sprintf("cells      %d", data.NumCells),
		fmt.Sprintf("particles  %d", data.NumParticles),
		fmt.Sprintf("tokens     %d", data.NumTokens),
		fmt.Sprintf("internal   %.2f", data.TotalInternalEnergy),
		fmt.Sprintf("linear     %.2f", data.TotalLinearKineticEnergy),
		fmt.Sprintf("rotational %.2f", data.TotalRotationalKineticEnergy),
	}
	return r.styles.Panel.Render(strings.Join(lines, "\n"))
}

// maxSymbolLines caps the symbol panel
const maxSymbolLines = 8

// RenderSymbols lists the symbol names of the simulation
func (r *Renderer) RenderSymbols(names []string) string {
	lines := []string{r.styles.Section.Render("Symbols")}
	shown := names
	if len(shown) > maxSymbolLines {
		shown = shown[:maxSymbolLines]
	}
	lines = append(lines, shown...)
	if rest := len(names) - len(shown); rest > 0 {
		lines = append(lines, r.styles.Dim.Render(fmt.Sprintf("+%d more", rest)))
	}
	return r.styles.Panel.Render(strings.Join(lines, "\n"))
}
