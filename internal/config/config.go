package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTurns     = 1
	DefaultOffset    = 0
	DefaultNewtonH   = 1e-8
	DefaultTolerance = 1e-12
	DefaultMaxIters  = 50
)

// Config is the run configuration loaded from a scenario or CLI-assembled
// YAML document: which lattice to track, the starting phase-space point,
// and the knobs that control a track/orbit/m66 run.
type Config struct {
	Lattice string `yaml:"lattice"`
	Dialect string `yaml:"dialect"` // "trackcpp" (default) or "tracy"

	Mode string `yaml:"mode"` // "track", "orbit", "m66"

	InitPos    PosConfig `yaml:"init_pos"`
	Turns      int       `yaml:"turns"`
	Offset     int       `yaml:"offset"`
	Trajectory bool      `yaml:"trajectory"`

	RF bool `yaml:"rf"` // selects FindOrbit6 over FindOrbit4 for mode=orbit

	Newton NewtonConfig `yaml:"newton"`
}

// PosConfig is the six phase-space coordinates as loaded from YAML/CLI.
type PosConfig struct {
	Rx float64 `yaml:"rx"`
	Px float64 `yaml:"px"`
	Ry float64 `yaml:"ry"`
	Py float64 `yaml:"py"`
	De float64 `yaml:"de"`
	Dl float64 `yaml:"dl"`
}

// NewtonConfig overrides the closed-orbit solver's defaults.
type NewtonConfig struct {
	H             float64 `yaml:"h"`
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// Default returns a Config with the tracker's and solver's own documented
// defaults filled in, the common starting point before applying a preset or
// a user-supplied YAML file.
func Default() *Config {
	return &Config{
		Dialect:    "trackcpp",
		Mode:       "track",
		Turns:      DefaultTurns,
		Offset:     DefaultOffset,
		Trajectory: true,
		Newton: NewtonConfig{
			H:             DefaultNewtonH,
			Tolerance:     DefaultTolerance,
			MaxIterations: DefaultMaxIters,
		},
	}
}

// Load reads a Config from a YAML file, starting from Default() so that an
// incomplete file still produces a valid, runnable configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Array returns the initial position as the six-element array the track
// package's Pos type is built from.
func (p PosConfig) Array() [6]float64 {
	return [6]float64{p.Rx, p.Px, p.Ry, p.Py, p.De, p.Dl}
}
