package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"project-setup/internal/logger"
	"project-setup/internal/preset"
	"project-setup/internal/project"
)

// Default returns the configuration used when no setup.yaml exists.
func Default() Config {
	return Config{
		Layout: project.DefaultLayout(),
		Tools: Tools{
			CMake: "cmake",
			Git:   "git",
		},
	}
}

// LoadConfig reads the YAML file at path and fills unset fields with defaults.
// A missing file is not an error and yields Default().
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("[DEBUG] No config at %s, using defaults\n", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded config %s with %d extra presets\n", path, len(cfg.Presets))
	return cfg, nil
}

// Parse decodes YAML data. Unknown keys are rejected so typos surface early.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}

	d := Default()
	cfg.Layout = cfg.Layout.WithDefaults()
	if cfg.Tools.CMake == "" {
		cfg.Tools.CMake = d.Tools.CMake
	}
	if cfg.Tools.Git == "" {
		cfg.Tools.Git = d.Tools.Git
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks presets and that default_preset names a known one.
func (c Config) Validate() error {
	reg, err := c.Registry()
	if err != nil {
		return err
	}
	if c.DefaultPreset != "" {
		if _, err := reg.Lookup(c.DefaultPreset); err != nil {
			return fmt.Errorf("default_preset: %w", err)
		}
	}
	return nil
}

// Registry returns the built-in presets merged with the configured ones.
func (c Config) Registry() (*preset.Registry, error) {
	return preset.NewRegistry(c.Presets)
}
