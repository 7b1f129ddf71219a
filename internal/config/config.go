// Package config loads atlas settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"scalemap/atlas/internal/filter"
	"scalemap/atlas/internal/graph"
	"scalemap/atlas/internal/items"
)

// Config holds atlas configuration.
type Config struct {
	Neighbors NeighborsConfig `toml:"neighbors"`
	Display   DisplayConfig   `toml:"display"`
	Edges     EdgesConfig     `toml:"edges"`
	Export    ExportConfig    `toml:"export"`
}

// NeighborsConfig controls neighbor ranking.
type NeighborsConfig struct {
	Cap int `toml:"cap"`
}

// DisplayConfig controls item panels and colouring.
type DisplayConfig struct {
	FocusItems     int    `toml:"focus_items"`
	NeighborItems  int    `toml:"neighbor_items"`
	HighlightColor string `toml:"highlight_color"`
	DimUnselected  bool   `toml:"dim_unselected"`
	DimColor       string `toml:"dim_color"`
	LabelWidth     int    `toml:"label_width"`
}

type EdgesConfig struct {
	Size float64 `toml:"size"`
}

// ExportConfig sizes SVG snapshots, in pixels.
type ExportConfig struct {
	Width   int `toml:"width"`
	Height  int `toml:"height"`
	Padding int `toml:"padding"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Neighbors: NeighborsConfig{Cap: items.DefaultCap},
		Display: DisplayConfig{
			FocusItems:     10,
			NeighborItems:  3,
			HighlightColor: filter.DefaultHighlightColor,
			DimColor:       filter.DefaultDimColor,
			LabelWidth:     40,
		},
		Edges:  EdgesConfig{Size: graph.DefaultEdgeSize},
		Export: ExportConfig{Width: 1200, Height: 900, Padding: 40},
	}
}

// Dir returns the atlas config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "atlas")
}

// Path is the default config file location
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path over the defaults. A missing file is not an
// error; a malformed one is. Empty path means Path().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.fill()
	return cfg, nil
}

// fill restores defaults for values a file zeroed out
func (c *Config) fill() {
	def := Default()
	if c.Neighbors.Cap <= 0 {
		c.Neighbors.Cap = def.Neighbors.Cap
	}
	if c.Display.HighlightColor == "" {
		c.Display.HighlightColor = def.Display.HighlightColor
	}
	if c.Display.DimColor == "" {
		c.Display.DimColor = def.Display.DimColor
	}
	if c.Display.LabelWidth <= 0 {
		c.Display.LabelWidth = def.Display.LabelWidth
	}
	if c.Edges.Size <= 0 {
		c.Edges.Size = def.Edges.Size
	}
	if c.Export.Width <= 0 {
		c.Export.Width = def.Export.Width
	}
	if c.Export.Height <= 0 {
		c.Export.Height = def.Export.Height
	}
	if c.Export.Padding < 0 {
		c.Export.Padding = def.Export.Padding
	}
}

// Save writes the config to path, or Path() when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Reducer returns the visibility reducer options
func (c *Config) Reducer() filter.Options {
	return filter.Options{
		HighlightColor: c.Display.HighlightColor,
		DimUnselected:  c.Display.DimUnselected,
		DimColor:       c.Display.DimColor,
	}
}
