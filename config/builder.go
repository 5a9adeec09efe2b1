package config

import (
	"fmt"

	"github.com/junctionhq/junction"
)

// BuildOptions converts a parsed [Config] into controller options for
// [junction.New].
//
// The returned options carry the initial signal state and the conflict
// rules; callers append their own WithLogger / WithObserver options.
func BuildOptions(cfg *Config) ([]junction.Option, error) {
	var opts []junction.Option

	if len(cfg.Initial) > 0 {
		initial := make(junction.SignalState, len(cfg.Initial))
		for dir, light := range cfg.Initial {
			d, err := junction.ParseDirection(dir)
			if err != nil {
				return nil, fmt.Errorf("initial: %w", err)
			}
			l, err := junction.ParseLightState(light)
			if err != nil {
				return nil, fmt.Errorf("initial[%s]: %w", dir, err)
			}
			initial[d] = l
		}
		opts = append(opts, junction.WithInitialState(initial))
	}

	if len(cfg.Rules) > 0 {
		pairs := make([][2]junction.Direction, 0, len(cfg.Rules))
		for i, pair := range cfg.Rules {
			if len(pair) != 2 {
				return nil, fmt.Errorf("rules[%d]: a rule is a pair of directions, got %d entries", i, len(pair))
			}
			a, err := junction.ParseDirection(pair[0])
			if err != nil {
				return nil, fmt.Errorf("rules[%d]: %w", i, err)
			}
			b, err := junction.ParseDirection(pair[1])
			if err != nil {
				return nil, fmt.Errorf("rules[%d]: %w", i, err)
			}
			pairs = append(pairs, [2]junction.Direction{a, b})
		}
		rules, err := junction.NewConflictRules(pairs...)
		if err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}
		opts = append(opts, junction.WithConflictRules(rules))
	}

	return opts, nil
}

// BuildPhases converts the configured cycle plan into [junction.Phase]
// values. An empty plan yields the standard two-phase 4-way plan.
func BuildPhases(cfg *Config) ([]junction.Phase, error) {
	if len(cfg.Cycle.Phases) == 0 {
		return []junction.Phase{
			{junction.North, junction.South},
			{junction.East, junction.West},
		}, nil
	}

	phases := make([]junction.Phase, 0, len(cfg.Cycle.Phases))
	for i, raw := range cfg.Cycle.Phases {
		phase := make(junction.Phase, 0, len(raw))
		for _, dir := range raw {
			d, err := junction.ParseDirection(dir)
			if err != nil {
				return nil, fmt.Errorf("cycle.phases[%d]: %w", i, err)
			}
			phase = append(phase, d)
		}
		phases = append(phases, phase)
	}
	return phases, nil
}
