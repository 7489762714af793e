// Package config loads the optional HCL file that sets simulation, watch
// and logging defaults for the klondike command.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Defaults
const (
	DefaultGames    = 10000
	DefaultMaxMoves = 5000
	DefaultDelay    = 150 * time.Millisecond
	DefaultLogLevel = "warn"
)

// Config represents the complete configuration file
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Watch      *WatchSettings      `hcl:"watch,block"`
	Logging    *LoggingSettings    `hcl:"logging,block"`
}

// SimulationSettings configures `klondike simulate`
type SimulationSettings struct {
	Games    int    `hcl:"games,optional"`
	Duration string `hcl:"duration,optional"`
	Workers  int    `hcl:"workers,optional"`
	Seed     int64  `hcl:"seed,optional"`
	MaxMoves int    `hcl:"max_moves,optional"`
}

// WatchSettings configures `klondike watch`
type WatchSettings struct {
	Delay string `hcl:"delay,optional"`
	Seed  int64  `hcl:"seed,optional"`
}

// LoggingSettings configures the shared logger
type LoggingSettings struct {
	Level string `hcl:"level,optional"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source; filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	if c.Simulation.Games == 0 && c.Simulation.Duration == "" {
		c.Simulation.Games = DefaultGames
	}
	if c.Simulation.MaxMoves == 0 {
		c.Simulation.MaxMoves = DefaultMaxMoves
	}

	if c.Watch == nil {
		c.Watch = &WatchSettings{}
	}
	if c.Watch.Delay == "" {
		c.Watch.Delay = DefaultDelay.String()
	}

	if c.Logging == nil {
		c.Logging = &LoggingSettings{}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// Validate checks value ranges and that durations and the log level parse
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Games < 0 {
		return fmt.Errorf("simulation: games must not be negative: %d", s.Games)
	}
	if s.Workers < 0 {
		return fmt.Errorf("simulation: workers must not be negative: %d", s.Workers)
	}
	if s.MaxMoves < 0 {
		return fmt.Errorf("simulation: max_moves must not be negative: %d", s.MaxMoves)
	}
	if _, err := c.SimulationDuration(); err != nil {
		return err
	}
	if d, err := c.WatchDelay(); err != nil {
		return err
	} else if d <= 0 {
		return fmt.Errorf("watch: delay must be positive: %s", c.Watch.Delay)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// SimulationDuration returns the simulation time budget, zero if unset
func (c *Config) SimulationDuration() (time.Duration, error) {
	if c.Simulation.Duration == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Simulation.Duration)
	if err != nil {
		return 0, fmt.Errorf("simulation: invalid duration %q: %w", c.Simulation.Duration, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("simulation: duration must not be negative: %s", d)
	}
	return d, nil
}

// WatchDelay returns the pause between animated moves
func (c *Config) WatchDelay() (time.Duration, error) {
	d, err := time.ParseDuration(c.Watch.Delay)
	if err != nil {
		return 0, fmt.Errorf("watch: invalid delay %q: %w", c.Watch.Delay, err)
	}
	return d, nil
}

// LogLevel returns the configured logger level
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return 0, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}
