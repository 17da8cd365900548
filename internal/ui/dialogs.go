package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"alien/internal/config"
	"alien/internal/domain"
)

// ErrEmptySymbolName is reported for symbol assignments without a name
var ErrEmptySymbolName = errors.New("symbol name must not be empty")

// PromptDialogs answers the controller's dialog requests from text the user
// typed into the prompt line before the action ran. An answer is consumed by
// the first dialog that asks for it. Without a pending answer, file, parameter
// and symbol dialogs count as cancelled; generator and multiplier dialogs
// fall back to the configured presets.
type PromptDialogs struct {
	cfg     *config.Config
	answer  string
	pending bool
	err     error
}

// NewPromptDialogs creates dialogs backed by the given configuration
func NewPromptDialogs(cfg *config.Config) *PromptDialogs {
	return &PromptDialogs{cfg: cfg}
}

// Answer stores the text the next dialog will receive
func (d *PromptDialogs) Answer(text string) {
	d.answer = strings.TrimSpace(text)
	d.pending = true
	d.err = nil
}

// Err returns and clears the parse error of the last dialog
func (d *PromptDialogs) Err() error {
	err := d.err
	d.err = nil
	return err
}

// Clear drops an answer no dialog asked for
func (d *PromptDialogs) Clear() {
	d.take()
}

func (d *PromptDialogs) take() (string, bool) {
	if !d.pending {
		return "", false
	}
	answer := d.answer
	d.answer = ""
	d.pending = false
	return answer, true
}

func (d *PromptDialogs) resolve(path string) string {
	path = config.ExpandPath(path)
	if filepath.IsAbs(path) || d.cfg.WorkDir == "" {
		return path
	}
	return filepath.Join(d.cfg.WorkDir, path)
}

// OpenFile returns the answered path
func (d *PromptDialogs) OpenFile(title, ext string) (string, bool) {
	answer, ok := d.take()
	if !ok || answer == "" {
		return "", false
	}
	return d.resolve(answer), true
}

// SaveFile returns the answered path
func (d *PromptDialogs) SaveFile(title, ext string) (string, bool) {
	return d.OpenFile(title, ext)
}

// NewSimulation returns the configured simulation resized by an answer of
// the form WIDTHxHEIGHT. A missing or empty answer cancels.
func (d *PromptDialogs) NewSimulation(current domain.SimulationConfig) (domain.SimulationConfig, bool) {
	cfg := d.cfg.Simulation
	cfg.Parameters = current.Parameters
	answer, ok := d.take()
	if !ok || answer == "" {
		return current, false
	}
	size, err := parseSize(answer)
	if err != nil {
		d.err = err
		return cfg, false
	}
	cfg.UniverseSize = size
	return cfg, true
}

// EditParameters applies a TOML snippet to the current parameters. Lines may
// be separated by semicolons.
func (d *PromptDialogs) EditParameters(current domain.SimulationParameters) (domain.SimulationParameters, bool) {
	answer, ok := d.take()
	if !ok || answer == "" {
		return current, false
	}
	params := current
	doc := strings.ReplaceAll(answer, ";", "\n")
	if err := toml.Unmarshal([]byte(doc), &params); err != nil {
		d.err = fmt.Errorf("failed to parse parameters: %w", err)
		return current, false
	}
	return params, true
}

// EditSymbols applies NAME=VALUE assignments separated by semicolons to the
// current table. An empty value removes the symbol.
func (d *PromptDialogs) EditSymbols(current domain.SymbolTable) (domain.SymbolTable, bool) {
	answer, ok := d.take()
	if !ok || answer == "" {
		return current, false
	}
	symbols := current.Clone()
	for _, assignment := range strings.Split(answer, ";") {
		assignment = strings.TrimSpace(assignment)
		if assignment == "" {
			continue
		}
		name, value, _ := strings.Cut(assignment, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" {
			d.err = ErrEmptySymbolName
			return current, false
		}
		if value == "" {
			delete(symbols, name)
			continue
		}
		symbols[name] = value
	}
	return symbols, true
}

// NewRectangle returns the rectangle preset
func (d *PromptDialogs) NewRectangle() (domain.RectangleParams, bool) {
	d.take()
	return d.cfg.Presets.Rectangle, true
}

// NewHexagon returns the hexagon preset
func (d *PromptDialogs) NewHexagon() (domain.HexagonParams, bool) {
	d.take()
	return d.cfg.Presets.Hexagon, true
}

// NewParticles returns the particle preset
func (d *PromptDialogs) NewParticles() (domain.ParticlesParams, bool) {
	d.take()
	return d.cfg.Presets.Particles, true
}

// RandomMultiplier returns the random multiplier preset, with the number of
// copies optionally overridden by the answer
func (d *PromptDialogs) RandomMultiplier() (domain.RandomMultiplierParams, bool) {
	params := d.cfg.Presets.RandomMultiplier
	answer, _ := d.take()
	if answer == "" {
		return params, true
	}
	copies, err := strconv.Atoi(answer)
	if err != nil || copies < 0 {
		d.err = fmt.Errorf("invalid number of copies %q", answer)
		return params, false
	}
	params.Copies = copies
	return params, true
}

// GridMultiplier returns the grid multiplier preset anchored at the selection
// center
func (d *PromptDialogs) GridMultiplier(center domain.Vec2) (domain.GridMultiplierParams, bool) {
	d.take()
	params := d.cfg.Presets.GridMultiplier
	params.InitialPos = center
	return params, true
}

func parseSize(text string) (domain.IntVec2, error) {
	w, h, ok := strings.Cut(strings.ToLower(text), "x")
	if !ok {
		return domain.IntVec2{}, fmt.Errorf("invalid universe size %q, expected WIDTHxHEIGHT", text)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return domain.IntVec2{}, fmt.Errorf("invalid universe width %q", w)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return domain.IntVec2{}, fmt.Errorf("invalid universe height %q", h)
	}
	return domain.IntVec2{X: width, Y: height}, nil
}
