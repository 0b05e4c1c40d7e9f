package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Simulation *SimulationConfig
	Scenario   *ScenarioConfig
}

// Loader loads game configuration from JSON or YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

var extensions = []string{".json", ".yaml", ".yml"}

// decode reads name with the first extension that exists and decodes it
// according to that extension.
func (l *Loader) decode(name string, v any) error {
	for _, ext := range extensions {
		file := name + ext
		data, err := fs.ReadFile(l.fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(data, v)
		} else {
			err = yaml.Unmarshal(data, v)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", file, err)
		}
		return nil
	}
	return fmt.Errorf("failed to read %s: %w", path.Join(l.basePath, name), fs.ErrNotExist)
}

// LoadSimulation loads simulation.json (or .yaml)
func (l *Loader) LoadSimulation() (*SimulationConfig, error) {
	var cfg SimulationConfig
	if err := l.decode("simulation", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	return &cfg, nil
}

// LoadScenario loads a scenario file from scenarios/
func (l *Loader) LoadScenario(name string) (*ScenarioConfig, error) {
	var cfg ScenarioConfig
	if err := l.decode("scenarios/"+name, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load scenario %s: %w", name, err)
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	return &cfg, nil
}

// LoadAll loads the simulation config and the named scenario
func (l *Loader) LoadAll(scenario string) (*GameConfig, error) {
	sim, err := l.LoadSimulation()
	if err != nil {
		return nil, err
	}

	sc, err := l.LoadScenario(scenario)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Simulation: sim,
		Scenario:   sc,
	}, nil
}
