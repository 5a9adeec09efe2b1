package junction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// pausedRetryInterval is how long the cycler waits before re-attempting a
// step that was rejected because the controller is paused.
const pausedRetryInterval = 500 * time.Millisecond

// Phase is a set of directions that hold GREEN together. Directions within
// one phase must be mutually compatible under the controller's conflict
// rules — NORTH and SOUTH form a valid phase under the default rules,
// NORTH and EAST do not.
type Phase []Direction

// Cycler drives a controller through a repeating signal plan: for each
// phase, its directions go GREEN, dwell, go YELLOW, dwell, then RED before
// the next phase begins. The classic 4-way plan is two phases:
//
//	junction.Phase{junction.North, junction.South}
//	junction.Phase{junction.East, junction.West}
//
// Cycler uses only the controller's public operations, so every step it
// takes is conflict-checked, recorded in history, and delivered to
// observers like any other mutation. If the controller is paused, the
// cycler logs and retries the current step until it is resumed or the
// context is cancelled.
type Cycler struct {
	ctl    *Controller
	phases []Phase
	green  time.Duration
	yellow time.Duration
	logger *slog.Logger
}

// NewCycler creates a [Cycler] for the given controller and plan.
//
// Parameters:
//   - ctl: the controller to drive
//   - phases: the repeating phase sequence; at least one non-empty phase
//   - green: how long each phase holds GREEN; must be positive
//   - yellow: how long the YELLOW interstitial lasts; must be positive
//   - logger: logger for cycle events; nil falls back to slog.Default
//
// The plan is validated eagerly: unknown directions and phases whose
// directions conflict with each other are rejected here rather than
// failing mid-cycle.
func NewCycler(ctl *Controller, phases []Phase, green, yellow time.Duration, logger *slog.Logger) (*Cycler, error) {
	if ctl == nil {
		return nil, errors.New("controller cannot be nil")
	}
	if len(phases) == 0 {
		return nil, errors.New("at least one phase is required")
	}
	if green <= 0 {
		return nil, fmt.Errorf("green dwell must be positive, got %s", green)
	}
	if yellow <= 0 {
		return nil, fmt.Errorf("yellow dwell must be positive, got %s", yellow)
	}

	rules := ctl.Rules()
	for i, phase := range phases {
		if len(phase) == 0 {
			return nil, fmt.Errorf("phases[%d]: at least one direction is required", i)
		}
		for _, d := range phase {
			if !d.Valid() {
				return nil, fmt.Errorf("phases[%d]: %w", i, &InvalidDirectionError{Direction: d})
			}
		}
		for j, a := range phase {
			for _, b := range phase[j+1:] {
				if a == b {
					return nil, fmt.Errorf("phases[%d]: duplicate direction %s", i, a)
				}
				if rules.Conflicts(a, b) {
					return nil, fmt.Errorf("phases[%d]: %s and %s conflict and cannot share a phase", i, a, b)
				}
			}
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Cycler{
		ctl:    ctl,
		phases: phases,
		green:  green,
		yellow: yellow,
		logger: logger,
	}, nil
}

// Run executes the plan repeatedly until the context is cancelled.
//
// Run is a blocking call. It returns nil on cancellation — stopping a cycle
// is normal shutdown, not an error. It returns a non-nil error only if a
// step fails for a reason the cycler cannot recover from, such as a
// conflict introduced by a concurrent caller switching lights by hand.
func (cy *Cycler) Run(ctx context.Context) error {
	cy.logger.Info("cycle starting",
		"phases", len(cy.phases),
		"green_dwell", cy.green.String(),
		"yellow_dwell", cy.yellow.String(),
	)

	for {
		for i, phase := range cy.phases {
			cy.logger.Debug("entering phase", "phase", i)

			if err := cy.setPhase(ctx, phase, Green); err != nil {
				return cy.finish(err)
			}
			if !sleepCtx(ctx, cy.green) {
				return cy.finish(nil)
			}

			if err := cy.setPhase(ctx, phase, Yellow); err != nil {
				return cy.finish(err)
			}
			if !sleepCtx(ctx, cy.yellow) {
				return cy.finish(nil)
			}

			if err := cy.setPhase(ctx, phase, Red); err != nil {
				return cy.finish(err)
			}
		}
	}
}

// setPhase moves every direction of a phase to the given light, retrying
// while the controller is paused.
func (cy *Cycler) setPhase(ctx context.Context, phase Phase, light LightState) error {
	for _, dir := range phase {
		for {
			_, err := cy.ctl.SetState(dir, light)
			if err == nil {
				break
			}

			// observer failures are warnings; the transition was applied
			var notifErr *NotificationError
			if errors.As(err, &notifErr) {
				cy.logger.Warn("observers failed during cycle step",
					"direction", string(dir),
					"light", string(light),
					"failed_observers", len(notifErr.Failures),
				)
				break
			}

			if errors.Is(err, ErrPaused) {
				cy.logger.Info("controller paused, waiting",
					"direction", string(dir),
					"light", string(light),
				)
				if !sleepCtx(ctx, pausedRetryInterval) {
					return nil
				}
				continue
			}

			return fmt.Errorf("cycle step %s=%s: %w", dir, light, err)
		}

		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

// finish logs shutdown and normalizes the exit error: cancellation is a
// clean stop.
func (cy *Cycler) finish(err error) error {
	if err != nil {
		cy.logger.Error("cycle aborted", "error", err.Error())
		return err
	}
	cy.logger.Info("cycle stopped")
	return nil
}

// sleepCtx sleeps for d or until the context is cancelled.
// Returns false if the context ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
