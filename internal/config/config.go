// Package config loads rendering and pipeline defaults from a YAML file.
// Command-line flags layer on top of these values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// Pipeline parameters
	Pipeline struct {
		// ColX is the x column name to look up in measurement headers.
		// Empty means the first column.
		ColX string `yaml:"colX"`

		// ColY is the y column name. Empty means the second column.
		ColY string `yaml:"colY"`

		// XStep is the shared grid step size in degrees.
		XStep float64 `yaml:"xStep"`

		// Scale is the intensity scale mode: linear or log.
		Scale string `yaml:"scale"`

		// Sort is the series ordering: None, File or Similarity.
		Sort string `yaml:"sort"`
	} `yaml:"pipeline"`

	// Plot parameters
	Plot struct {
		// WidthCM and HeightCM are the plot dimensions in centimeters.
		WidthCM  float64 `yaml:"widthCm"`
		HeightCM float64 `yaml:"heightCm"`

		// DPI is the raster resolution for PNG output.
		DPI int `yaml:"dpi"`

		// Colormap is a ColorBrewer palette name, e.g. Blues, Greens, RdBu.
		Colormap string `yaml:"colormap"`

		// Format is the image format: png, jpeg, svg, pdf or tif.
		Format string `yaml:"format"`
	} `yaml:"plot"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Pipeline.XStep = 0.2
	cfg.Pipeline.Scale = "linear"
	cfg.Pipeline.Sort = "None"

	cfg.Plot.WidthCM = 25
	cfg.Plot.HeightCM = 10
	cfg.Plot.DPI = 72
	cfg.Plot.Colormap = "Blues"
	cfg.Plot.Format = "png"

	return cfg
}

// LoadConfig loads configuration from a YAML file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
