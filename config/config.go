// Package config holds the probe's own configuration: query timeouts,
// EDNS0 buffer size, logging, and the HTTP/metrics surface,
// loaded via creasty/defaults over a YAML document.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v2"

	"github.com/dnstrust/dnstrust/log"
)

// Duration wraps time.Duration so it can be written as "5s" in YAML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	d.Duration = parsed

	return nil
}

// HTTPConfig configures the reporting server (server package).
type HTTPConfig struct {
	Address string `yaml:"address" default:":8080"`
}

// Config is the probe's full configuration.
type Config struct {
	QueryTimeout Duration   `yaml:"queryTimeout" default:"5s"`
	UDPSize      uint16     `yaml:"udpSize" default:"4096"`
	Log          log.Config `yaml:"log"`
	HTTP         HTTPConfig `yaml:"http"`
}

// New returns a Config populated with its struct-tag defaults.
func New() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying config defaults: %w", err)
	}

	return cfg, nil
}

// Load reads and parses a YAML config file at path, applying defaults to
// fields the file doesn't set. A missing file is not an error: New() is
// returned instead, matching the CLI's "config is optional" contract.
func Load(path string) (*Config, error) {
	cfg, err := New()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
