// Package config provides configuration loading for the bubble grid engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"hexpop/pkg/engine/world"
	"hexpop/pkg/game/destruction"
	"hexpop/pkg/game/scoring"
	"hexpop/pkg/game/spawner"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds all engine configuration parameters.
type Config struct {
	Grid        GridConfig         `yaml:"grid"`
	Match       MatchConfig        `yaml:"match"`
	Attach      AttachConfig       `yaml:"attach"`
	Destruction destruction.Config `yaml:"destruction"`
	Spawner     spawner.Config     `yaml:"spawner"`
	Scoring     scoring.Config     `yaml:"scoring"`
	LoseLine    LoseLineConfig     `yaml:"lose_line"`
	Palette     PaletteConfig      `yaml:"palette"`
	Launcher    LauncherConfig     `yaml:"launcher"`
}

// GridConfig holds grid dimensions and geometry.
type GridConfig struct {
	Width       int     `yaml:"width"`
	InitialRows int     `yaml:"initial_rows"`
	CellSize    float64 `yaml:"cell_size"`  // horizontal distance between neighbors in a row
	RowHeight   float64 `yaml:"row_height"` // vertical distance between rows
}

// MatchConfig holds the match threshold.
type MatchConfig struct {
	MinCount int `yaml:"min_count"`
}

// AttachConfig holds attachment resolver parameters.
type AttachConfig struct {
	MaxRing int `yaml:"max_ring"` // neighbor rings searched before giving up
}

// LoseLineConfig places the lose line, in rows below the ceiling.
type LoseLineConfig struct {
	Row float64 `yaml:"row"`
}

// PaletteConfig holds the colors used for initial fills.
type PaletteConfig struct {
	Colors  []world.Color `yaml:"colors"`
	Weights []float64     `yaml:"weights"` // parallel to Colors
}

// LauncherConfig holds shot tracing parameters.
type LauncherConfig struct {
	Row        float64 `yaml:"row"`         // launcher position, in rows below the ceiling
	Step       float64 `yaml:"step"`        // trace step in world units
	MaxBounces int     `yaml:"max_bounces"` // side wall bounces before a shot is discarded
}

// Load reads the embedded defaults and overlays the file at path, if any.
// The result is validated.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Grid.Width < 1:
		return fmt.Errorf("%w: grid.width must be positive, got %d", ErrInvalid, c.Grid.Width)
	case c.Grid.InitialRows < 0:
		return fmt.Errorf("%w: grid.initial_rows must not be negative", ErrInvalid)
	case c.Grid.CellSize <= 0 || c.Grid.RowHeight <= 0:
		return fmt.Errorf("%w: grid.cell_size and grid.row_height must be positive", ErrInvalid)
	case c.Match.MinCount < 1:
		return fmt.Errorf("%w: match.min_count must be at least 1, got %d", ErrInvalid, c.Match.MinCount)
	case c.Destruction.BaseDelay < 0 || c.Destruction.DelayFloor < 0:
		return fmt.Errorf("%w: destruction delays must not be negative", ErrInvalid)
	case c.Destruction.DecayMultiplier <= 0 || c.Destruction.DecayMultiplier > 1:
		return fmt.Errorf("%w: destruction.decay_multiplier must be in (0, 1], got %v", ErrInvalid, c.Destruction.DecayMultiplier)
	case c.Spawner.Mode != spawner.ModeShots && c.Spawner.Mode != spawner.ModeTimed:
		return fmt.Errorf("%w: spawner.mode %q is not shots or timed", ErrInvalid, c.Spawner.Mode)
	case c.Spawner.ShotsPerRow < 1:
		return fmt.Errorf("%w: spawner.shots_per_row must be positive", ErrInvalid)
	case c.Spawner.Mode == spawner.ModeTimed && c.Spawner.SurvivalInterval <= 0:
		return fmt.Errorf("%w: spawner.survival_interval must be positive in timed mode", ErrInvalid)
	case c.LoseLine.Row <= 0:
		return fmt.Errorf("%w: lose_line.row must be positive", ErrInvalid)
	case c.Launcher.Row <= c.LoseLine.Row:
		return fmt.Errorf("%w: launcher.row must lie below lose_line.row", ErrInvalid)
	case c.Launcher.Step <= 0:
		return fmt.Errorf("%w: launcher.step must be positive", ErrInvalid)
	}

	for _, col := range c.Palette.Colors {
		if !col.IsValid() {
			return fmt.Errorf("%w: palette color %d", ErrInvalid, col)
		}
	}
	if len(c.Palette.Weights) > len(c.Palette.Colors) {
		return fmt.Errorf("%w: %d palette weights for %d colors", ErrInvalid, len(c.Palette.Weights), len(c.Palette.Colors))
	}
	return nil
}

// Layout returns the world layout of the grid, with the ceiling at y = 0.
func (c *Config) Layout() world.Layout {
	return world.Layout{
		Origin:    r2.Vec{},
		CellSize:  c.Grid.CellSize,
		RowHeight: c.Grid.RowHeight,
	}
}

// LoseLineY returns the world y coordinate of the lose line.
func (c *Config) LoseLineY() destruction.LoseLineY {
	return destruction.LoseLineY(c.LoseLine.Row * c.Grid.RowHeight)
}

// WriteYAML saves the configuration to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
