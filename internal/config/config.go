/*
PURPOSE:
  Defines the configuration structure and loading logic for pch-reader.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of log output, output directory, and how
    complex results are turned into exported/plotted numbers.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Plot geometry and axis scales are needed by both `plot` and `report`.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - A missing default config file is not an error (defaults are used).

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults should be sensible (magnitude, linear axes, info logs).

USAGE:
  cfg, err := config.Load("pch-reader.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct, DefaultConfig() and Validate().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/pch-reader/internal/model"
)

// Config represents the full configuration for pch-reader.
type Config struct {
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	OutputDir string       `yaml:"output_dir"`
	Quantity  string       `yaml:"quantity"`
	Component string       `yaml:"component"`
	Plot      PlotConfig   `yaml:"plot"`
	Report    ReportConfig `yaml:"report"`
}

// ReportConfig controls the PDF report.
type ReportConfig struct {
	Title string `yaml:"title"`
}

// PlotConfig controls chart geometry, in points.
type PlotConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	XScale string  `yaml:"x_scale"`
	YScale string  `yaml:"y_scale"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		OutputDir: ".",
		Quantity:  string(model.QuantityMagnitude),
		Component: "tx",
		Plot: PlotConfig{
			Width:  800,
			Height: 400,
			XScale: "linear",
			YScale: "linear",
		},
		Report: ReportConfig{Title: "NASTRAN Punch Results"},
	}
}

// DefaultFiles are searched, in order, when no path is given.
var DefaultFiles = []string{"pch-reader.yaml", "pch_reader.yaml", ".pch-reader.yaml"}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches DefaultFiles in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		found := false
		for _, name := range DefaultFiles {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if _, err := model.ParseQuantity(c.Quantity); err != nil {
		errs = append(errs, err)
	}
	if _, err := model.ParseComponent(c.Component); err != nil {
		errs = append(errs, err)
	}
	for name, scale := range map[string]string{"plot.x_scale": c.Plot.XScale, "plot.y_scale": c.Plot.YScale} {
		if scale != "linear" && scale != "log" {
			errs = append(errs, fmt.Errorf("%s must be linear or log, got %q", name, scale))
		}
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		errs = append(errs, fmt.Errorf("plot size must be positive, got %gx%g", c.Plot.Width, c.Plot.Height))
	}
	return errors.Join(errs...)
}
