package serializer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"alien/internal/domain"
)

// File extensions of the persisted formats
const (
	ExtSimulation = ".sim"
	ExtParameters = ".par"
	ExtSymbols    = ".sym"
	ExtCollection = ".aco"
)

// FormatVersion is written into every simulation and collection file
const FormatVersion = 1

// ErrUnsupportedVersion is returned for files written by a newer format
var ErrUnsupportedVersion = errors.New("unsupported file format version")

// Serializer persists simulations, parameters, symbol tables and entity
// collections
type Serializer interface {
	SaveSimulation(path string, sim domain.Simulation) error
	LoadSimulation(path string) (domain.Simulation, error)
	SaveParameters(path string, params domain.SimulationParameters) error
	LoadParameters(path string) (domain.SimulationParameters, error)
	SaveSymbols(path string, symbols domain.SymbolTable) error
	LoadSymbols(path string) (domain.SymbolTable, error)
	SaveCollection(path string, data domain.DataDescription) error
	LoadCollection(path string) (domain.DataDescription, error)
}

// FileSerializer stores simulations and collections as versioned JSON,
// parameters as TOML and symbol tables as YAML
type FileSerializer struct{}

// New creates a file serializer
func New() *FileSerializer {
	return &FileSerializer{}
}

type simulationFile struct {
	Version int `json:"version"`
	domain.Simulation
}

type collectionFile struct {
	Version int                    `json:"version"`
	Data    domain.DataDescription `json:"data"`
}

type symbolsFile struct {
	Symbols map[string]string `yaml:"symbols"`
}

// SaveSimulation writes a whole simulation
func (f *FileSerializer) SaveSimulation(path string, sim domain.Simulation) error {
	data, err := json.MarshalIndent(simulationFile{Version: FormatVersion, Simulation: sim}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal simulation: %w", err)
	}
	return writeFile(path, data)
}

// LoadSimulation reads a whole simulation and validates its config
func (f *FileSerializer) LoadSimulation(path string) (domain.Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Simulation{}, fmt.Errorf("failed to read simulation file: %w", err)
	}
	var file simulationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return domain.Simulation{}, fmt.Errorf("failed to parse simulation: %w", err)
	}
	if err := checkVersion(file.Version); err != nil {
		return domain.Simulation{}, err
	}
	if err := file.Config.Validate(); err != nil {
		return domain.Simulation{}, err
	}
	if file.Symbols == nil {
		file.Symbols = domain.SymbolTable{}
	}
	return file.Simulation, nil
}

// SaveParameters writes simulation parameters
func (f *FileSerializer) SaveParameters(path string, params domain.SimulationParameters) error {
	data, err := toml.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	return writeFile(path, data)
}

// LoadParameters reads simulation parameters. Validation is left to the
// caller since it depends on the simulation they are applied to.
func (f *FileSerializer) LoadParameters(path string) (domain.SimulationParameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SimulationParameters{}, fmt.Errorf("failed to read parameter file: %w", err)
	}
	params := domain.DefaultParameters()
	if err := toml.Unmarshal(data, &params); err != nil {
		return domain.SimulationParameters{}, fmt.Errorf("failed to parse parameters: %w", err)
	}
	return params, nil
}

// SaveSymbols writes a symbol table
func (f *FileSerializer) SaveSymbols(path string, symbols domain.SymbolTable) error {
	data, err := yaml.Marshal(symbolsFile{Symbols: symbols})
	if err != nil {
		return fmt.Errorf("failed to marshal symbols: %w", err)
	}
	return writeFile(path, data)
}

// LoadSymbols reads a symbol table
func (f *FileSerializer) LoadSymbols(path string) (domain.SymbolTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol file: %w", err)
	}
	var file symbolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse symbols: %w", err)
	}
	if file.Symbols == nil {
		return domain.SymbolTable{}, nil
	}
	return domain.SymbolTable(file.Symbols), nil
}

// SaveCollection writes an entity collection
func (f *FileSerializer) SaveCollection(path string, data domain.DataDescription) error {
	raw, err := json.MarshalIndent(collectionFile{Version: FormatVersion, Data: data}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}
	return writeFile(path, raw)
}

// LoadCollection reads an entity collection
func (f *FileSerializer) LoadCollection(path string) (domain.DataDescription, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.DataDescription{}, fmt.Errorf("failed to read collection file: %w", err)
	}
	var file collectionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return domain.DataDescription{}, fmt.Errorf("failed to parse collection: %w", err)
	}
	if err := checkVersion(file.Version); err != nil {
		return domain.DataDescription{}, err
	}
	return file.Data, nil
}

// EnsureExtension appends ext to path unless it already ends with it
func EnsureExtension(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}

func checkVersion(version int) error {
	if version < 1 || version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
