package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/spritepack/internal/discover"
	"github.com/ironsheep/spritepack/internal/imaging"
	"github.com/ironsheep/spritepack/internal/sheet"
)

// Config holds the application configuration
type Config struct {
	Pack     PackConfig     `json:"pack"`
	Discover DiscoverConfig `json:"discover"`
	Output   OutputConfig   `json:"output"`
}

// PackConfig holds configuration for sheet layout
type PackConfig struct {
	MaxSize   int `json:"max_size"`
	Border    int `json:"border"`
	Workers   int `json:"workers"`
	ScanLimit int `json:"scan_limit"`
}

// DiscoverConfig holds configuration for finding input files
type DiscoverConfig struct {
	MaxDepth int `json:"max_depth"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Overlay      bool   `json:"overlay"`
	OverlayColor string `json:"overlay_color"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Pack: PackConfig{
			MaxSize:   sheet.DefaultMaxSize,
			Border:    sheet.DefaultBorder,
			Workers:   0,
			ScanLimit: 0,
		},
		Discover: DiscoverConfig{
			MaxDepth: discover.DefaultMaxDepth,
		},
		Output: OutputConfig{
			Overlay:      false,
			OverlayColor: imaging.DefaultOutlineColor,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Keys missing from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Pack.MaxSize <= sheet.MinMaxSize {
		return fmt.Errorf("pack.max_size must be greater than %d", sheet.MinMaxSize)
	}

	if c.Pack.Border < 0 {
		return fmt.Errorf("pack.border cannot be negative")
	}

	if c.Pack.Workers < 0 {
		return fmt.Errorf("pack.workers cannot be negative")
	}

	if c.Pack.ScanLimit < 0 {
		return fmt.Errorf("pack.scan_limit cannot be negative")
	}

	if c.Discover.MaxDepth < 1 {
		return fmt.Errorf("discover.max_depth must be at least 1")
	}

	if c.Output.OverlayColor != "" {
		if _, err := colorful.Hex(c.Output.OverlayColor); err != nil {
			return fmt.Errorf("output.overlay_color must be a #RRGGBB colour: %w", err)
		}
	}

	return nil
}

// Options converts the configuration into builder options
func (c *Config) Options() sheet.Options {
	return sheet.Options{
		MaxSize:      c.Pack.MaxSize,
		Border:       c.Pack.Border,
		Workers:      c.Pack.Workers,
		MaxTrials:    c.Pack.ScanLimit,
		Overlay:      c.Output.Overlay,
		OverlayColor: c.Output.OverlayColor,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./spritepack.json"
	}
	return filepath.Join(home, ".config", "spritepack", "config.json")
}
