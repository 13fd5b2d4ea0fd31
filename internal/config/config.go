// Package config loads the qlight-osc server configuration.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Write-error policies for the receive loop.
const (
	WriteErrorLog  = "log"
	WriteErrorExit = "exit"
)

// Config is the server configuration.
type Config struct {
	Listen       string             `yaml:"listen"`
	Bindings     map[string]Binding `yaml:"bindings"`
	Log          LogConfig          `yaml:"log"`
	OnWriteError string             `yaml:"on_write_error"`
}

// Binding points a named device slot at a HID device path.
type Binding struct {
	Path string `yaml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	JSON   bool   `yaml:"json"`
	Colors bool   `yaml:"colors"`
}

// Load reads and parses the configuration file, applying defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.OnWriteError == "" {
		cfg.OnWriteError = WriteErrorLog
	}

	if cfg.Listen == "" {
		return nil, fmt.Errorf("%s: listen address is required", path)
	}
	if cfg.OnWriteError != WriteErrorLog && cfg.OnWriteError != WriteErrorExit {
		return nil, fmt.Errorf("%s: on_write_error must be %q or %q, got %q",
			path, WriteErrorLog, WriteErrorExit, cfg.OnWriteError)
	}

	// Binding paths may reference environment variables.
	for name, b := range cfg.Bindings {
		b.Path = os.ExpandEnv(b.Path)
		cfg.Bindings[name] = b
	}

	return &cfg, nil
}

// FirstBinding returns the active device binding. Map order is randomized
// in Go, so "first" means the lexicographically first binding name.
func (c *Config) FirstBinding() (string, Binding, error) {
	if len(c.Bindings) == 0 {
		return "", Binding{}, fmt.Errorf("no device bindings configured")
	}
	names := make([]string, 0, len(c.Bindings))
	for name := range c.Bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0], c.Bindings[names[0]], nil
}
