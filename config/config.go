// Package config provides YAML configuration parsing for junction.
//
// This package enables running a junction controller as a standalone binary
// with a configuration file, as an alternative to the programmatic SDK
// approach.
//
// Example configuration:
//
//	initial:
//	  north: RED
//	  south: RED
//
//	rules:
//	  - [north, east]
//	  - [north, west]
//	  - [south, east]
//	  - [south, west]
//
//	cycle:
//	  green: 5s
//	  yellow: 2s
//	  phases:
//	    - [north, south]
//	    - [east, west]
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/junctionhq/junction"
)

const (
	// minDwell is the minimum allowed phase dwell time. This prevents
	// configs that would spin the cycle loop with near-zero sleeps.
	minDwell = 100 * time.Millisecond

	defaultGreenDwell  = 5 * time.Second
	defaultYellowDwell = 2 * time.Second
)

// Config is the root configuration structure for a junction binary.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Initial maps directions to their starting lights. Directions not
	// named start RED. Empty means all RED.
	Initial map[string]string `yaml:"initial"`

	// Rules lists conflicting direction pairs. Empty means the standard
	// 4-way set (NORTH/SOUTH each conflict with EAST/WEST).
	Rules [][]string `yaml:"rules"`

	// Cycle configures the repeating signal plan run by `junction run`.
	Cycle CycleConfig `yaml:"cycle"`
}

// CycleConfig defines the repeating signal plan.
type CycleConfig struct {
	// Green is how long each phase holds GREEN. Defaults to 5s.
	// Accepts duration strings like "10s", "1m", "500ms".
	Green Duration `yaml:"green"`

	// Yellow is how long the YELLOW interstitial lasts. Defaults to 2s.
	Yellow Duration `yaml:"yellow"`

	// Phases lists the direction groups that hold GREEN together, in
	// cycle order. Empty means the standard two-phase plan:
	// [north, south] then [east, west].
	Phases [][]string `yaml:"phases"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Defaults are applied for the cycle dwells (green 5s, yellow 2s) and, when
// omitted, for the conflict rules (standard 4-way set) and phases (standard
// two-phase plan). All directions, lights, rule pairs, and phases are
// validated; the first problem is returned with its location in the file.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Cycle.Green == 0 {
		cfg.Cycle.Green = Duration(defaultGreenDwell)
	}
	if cfg.Cycle.Yellow == 0 {
		cfg.Cycle.Yellow = Duration(defaultYellowDwell)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks every field against the junction vocabulary.
func (c *Config) validate() error {
	for dir, light := range c.Initial {
		if _, err := junction.ParseDirection(dir); err != nil {
			return fmt.Errorf("initial: %w", err)
		}
		if _, err := junction.ParseLightState(light); err != nil {
			return fmt.Errorf("initial[%s]: %w", dir, err)
		}
	}

	for i, pair := range c.Rules {
		if len(pair) != 2 {
			return fmt.Errorf("rules[%d]: a rule is a pair of directions, got %d entries", i, len(pair))
		}
		for _, dir := range pair {
			if _, err := junction.ParseDirection(dir); err != nil {
				return fmt.Errorf("rules[%d]: %w", i, err)
			}
		}
	}

	if c.Cycle.Green.Duration() < minDwell {
		return fmt.Errorf("cycle.green must be at least %s, got %s", minDwell, c.Cycle.Green.Duration())
	}
	if c.Cycle.Yellow.Duration() < minDwell {
		return fmt.Errorf("cycle.yellow must be at least %s, got %s", minDwell, c.Cycle.Yellow.Duration())
	}

	for i, phase := range c.Cycle.Phases {
		if len(phase) == 0 {
			return fmt.Errorf("cycle.phases[%d]: at least one direction is required", i)
		}
		for _, dir := range phase {
			if _, err := junction.ParseDirection(dir); err != nil {
				return fmt.Errorf("cycle.phases[%d]: %w", i, err)
			}
		}
	}

	return nil
}
