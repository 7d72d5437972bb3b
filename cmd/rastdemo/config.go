package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/rast/texture"
)

// Config is the demo configuration, loadable from a YAML file. Zero
// fields fall back to defaults.
type Config struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Workers int     `yaml:"workers"`
	Filter  string  `yaml:"filter"` // nearest, bilinear, trilinear
	Spin    float64 `yaml:"spin"`   // radians per second
}

func defaultConfig() Config {
	return Config{
		Width:  800,
		Height: 600,
		Filter: "trilinear",
		Spin:   0.8,
	}
}

// loadConfig reads path and overlays it on the defaults. An empty path
// returns the defaults unchanged.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("config: width and height must be positive")
	}
	return cfg, nil
}

// filterMode maps the config string onto a sampler filter.
func (c Config) filterMode() (texture.FilterMode, error) {
	switch c.Filter {
	case "", "trilinear":
		return texture.FilterTrilinear, nil
	case "bilinear":
		return texture.FilterBilinear, nil
	case "nearest":
		return texture.FilterNearest, nil
	default:
		return 0, fmt.Errorf("config: unknown filter %q", c.Filter)
	}
}
