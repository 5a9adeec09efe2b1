package junction

import (
	"errors"
	"fmt"
	"log/slog"
)

// ctlConfig holds mutable state during Controller construction.
type ctlConfig struct {
	initial   SignalState
	rules     ConflictRules
	logger    *slog.Logger
	observers []Observer
}

// Option is a function that configures a [Controller] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [New] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithInitialState], [WithConflictRules], [WithLogger],
// [WithObserver].
type Option func(*ctlConfig) error

// WithInitialState sets the lights the controller starts with.
//
// The map may be partial: directions it does not name start RED. Unknown
// directions or light values are rejected. An initial state with
// conflicting GREENs is rejected by [New], not here — conflict validation
// needs the final rule set.
//
// Example:
//
//	ctl, err := junction.New(
//	    junction.WithInitialState(junction.SignalState{
//	        junction.North: junction.Green,
//	        junction.South: junction.Green,
//	    }),
//	)
func WithInitialState(state SignalState) Option {
	return func(cfg *ctlConfig) error {
		initial := AllRed()
		for dir, light := range state {
			if !dir.Valid() {
				return &InvalidDirectionError{Direction: dir}
			}
			if !light.Valid() {
				return fmt.Errorf("initial state for %s: unknown light state %q", dir, string(light))
			}
			initial[dir] = light
		}
		cfg.initial = initial
		return nil
	}
}

// WithConflictRules replaces the default 4-way conflict set.
//
// Build the rule set with [NewConflictRules]. Passing an empty rule set is
// allowed and disables conflict checking entirely — every GREEN request is
// accepted.
//
// Example:
//
//	rules, err := junction.NewConflictRules([2]junction.Direction{junction.North, junction.East})
//	if err != nil { ... }
//	ctl, err := junction.New(junction.WithConflictRules(rules))
func WithConflictRules(rules ConflictRules) Option {
	return func(cfg *ctlConfig) error {
		cfg.rules = rules
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the controller.
//
// This allows SDK consumers to control where logs are written and in what
// format. If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	ctl, err := junction.New(junction.WithLogger(logger))
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *ctlConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithObserver subscribes an observer at construction time.
//
// Equivalent to calling [Controller.Subscribe] immediately after [New];
// use Subscribe when the handle is needed for later removal. Multiple
// WithObserver options are notified in the order given.
//
// Nil observers are silently ignored.
func WithObserver(o Observer) Option {
	return func(cfg *ctlConfig) error {
		if o == nil {
			return nil // no-op for nil observer (safe to call)
		}
		cfg.observers = append(cfg.observers, o)
		return nil
	}
}
