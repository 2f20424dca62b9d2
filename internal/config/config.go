// Package config holds per-query options and the optional config file format.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options controls a single query pipeline.
type Options struct {
	// Headless runs Chrome without a visible window. The target site is more
	// suspicious of headless sessions, so the default keeps a window.
	Headless bool
	// Timeout bounds each navigation and reload, not the whole query.
	Timeout time.Duration
	// SaveScreenshot writes a full-page PNG next to the HTML report.
	SaveScreenshot bool
	// Verbose enables debug-level pipeline logging.
	Verbose bool
}

// Default returns the baseline options used when the caller supplies nothing.
func Default() Options {
	return Options{
		Headless:       false,
		Timeout:        60 * time.Second,
		SaveScreenshot: true,
		Verbose:        false,
	}
}

// Overrides carries caller-supplied option fields. Nil fields fall back to
// the defaults, so a merged Options never has an unset field.
type Overrides struct {
	Headless       *bool `yaml:"headless"`
	TimeoutMs      *int  `yaml:"timeout_ms"`
	SaveScreenshot *bool `yaml:"save_screenshot"`
	Verbose        *bool `yaml:"verbose"`
}

// Apply merges o over base field by field.
func (o Overrides) Apply(base Options) Options {
	merged := base
	if o.Headless != nil {
		merged.Headless = *o.Headless
	}
	if o.TimeoutMs != nil {
		merged.Timeout = time.Duration(*o.TimeoutMs) * time.Millisecond
	}
	if o.SaveScreenshot != nil {
		merged.SaveScreenshot = *o.SaveScreenshot
	}
	if o.Verbose != nil {
		merged.Verbose = *o.Verbose
	}
	return merged
}

// File is the optional YAML configuration file read by the CLI.
type File struct {
	// OutputDir overrides the report directory (~/Documents/travel).
	OutputDir string `yaml:"output_dir"`
	// DataDir holds the airport code JSON files.
	DataDir string `yaml:"data_dir"`
	// Defaults are merged over the built-in option defaults.
	Defaults Overrides `yaml:"defaults"`
}

// LoadFile reads a config file. A missing file is not an error; the zero
// File leaves every built-in default in place.
func LoadFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}
