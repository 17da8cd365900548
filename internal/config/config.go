package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"alien/internal/domain"
	"alien/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version    int                     `toml:"version"`
	WorkDir    string                  `toml:"work_dir"` // default directory for file prompts
	Seed       uint64                  `toml:"seed"`
	Simulation domain.SimulationConfig `toml:"simulation"`
	Editor     EditorSettings          `toml:"editor"`
	Presets    Presets                 `toml:"presets"`
}

// EditorSettings represents editor-related configuration
type EditorSettings struct {
	StartInEditMode bool    `toml:"start_in_edit_mode"`
	ShowMonitor     bool    `toml:"show_monitor"`
	PasteStep       float64 `toml:"paste_step"` // growth of the paste offset per insert
	PasteMax        float64 `toml:"paste_max"`  // offset wraps to zero beyond this
}

// Presets are the values the terminal front-end answers generator and
// multiplier prompts with
type Presets struct {
	RandomMultiplier domain.RandomMultiplierParams `toml:"random_multiplier"`
	GridMultiplier   domain.GridMultiplierParams   `toml:"grid_multiplier"`
	Rectangle        domain.RectangleParams        `toml:"rectangle"`
	Hexagon          domain.HexagonParams          `toml:"hexagon"`
	Particles        domain.ParticlesParams        `toml:"particles"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the given file. An empty
// path selects alien/config.toml in the user config directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			// Fallback to home directory
			configDir, err = os.UserHomeDir()
			if err != nil {
				configDir = "."
			}
			configDir = filepath.Join(configDir, ".config")
		}
		path = filepath.Join(configDir, "alien", "config.toml")
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults if the
// file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation section: %w", err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	return &Config{
		Version:    1,
		WorkDir:    workDir,
		Seed:       1,
		Simulation: domain.DefaultSimulationConfig(),
		Editor: EditorSettings{
			StartInEditMode: true,
			ShowMonitor:     false,
			PasteStep:       0.5,
			PasteMax:        10,
		},
		Presets: Presets{
			RandomMultiplier: domain.RandomMultiplierParams{
				Copies:     10,
				VelX:       domain.Range{Min: -0.5, Max: 0.5},
				VelY:       domain.Range{Min: -0.5, Max: 0.5},
				Angle:      domain.Range{Min: 0, Max: 360},
				AngularVel: domain.Range{Min: -5, Max: 5},
			},
			GridMultiplier: domain.GridMultiplierParams{
				HorizontalNumber:   4,
				VerticalNumber:     4,
				HorizontalInterval: 20,
				VerticalInterval:   20,
			},
			Rectangle: domain.RectangleParams{Width: 10, Height: 10, Distance: 1, Energy: 100},
			Hexagon:   domain.HexagonParams{Layers: 5, Distance: 1, Energy: 100},
			Particles: domain.ParticlesParams{TotalEnergy: 10000, MaxEnergyPerParticle: 50},
		},
	}
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
