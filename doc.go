// Package junction provides an embeddable, thread-safe traffic-signal
// controller for a four-way intersection.
//
// A [Controller] owns the light shown by each [Direction], enforces a
// safety invariant (two conflicting directions are never both GREEN, not
// even transiently), records every accepted mutation as an undoable
// [Command], and notifies subscribed observers after each commit.
//
// # Quick Start
//
// Create a controller, watch it, and switch a light:
//
//	ctl, _ := junction.New()
//
//	sub := ctl.Subscribe(junction.ObserverFunc(func(c junction.StateChange) {
//	    fmt.Printf("[%d] %s -> %s\n", c.Seq, c.Cause, c.State)
//	}))
//	defer ctl.Unsubscribe(sub)
//
//	state, err := ctl.SetGreen(junction.North)
//
// # Configuration
//
// Controllers use the functional options pattern:
//
//	rules, _ := junction.NewConflictRules(
//	    [2]junction.Direction{junction.North, junction.East},
//	)
//	ctl, err := junction.New(
//	    junction.WithInitialState(junction.SignalState{junction.North: junction.Green}),
//	    junction.WithConflictRules(rules),
//	    junction.WithLogger(logger),
//	)
//
// # Conflict Policy
//
// The controller uses a strict reject policy: a GREEN request that would
// coexist with a conflicting GREEN fails with [*ConflictError] and changes
// nothing. It never demotes the other direction on the caller's behalf —
// hand-over sequences (green, yellow, red, next green) are spelled out
// explicitly, either by the caller or by a [Cycler].
//
// # Undo
//
// Every accepted mutation — light changes, pause, resume — lands on one
// history stack with its pre-image. [Controller.Undo] pops the most recent
// entry and restores the exact prior signal and run state; undoing N
// commands replays the controller back to where it started.
//
// # Observers
//
// Anything with a Receive([StateChange]) method can subscribe. Delivery is
// synchronous, in subscription order, and happens after the controller's
// lock is released using the state captured at commit time. A panicking
// observer is isolated: remaining observers are still notified, and the
// mutating caller sees an aggregated [*NotificationError] while the
// transition itself stands.
//
// # Architecture
//
// The package consists of the public API plus internal packages:
//
//   - internal/engine: the signal table and conflict relation
//   - internal/registry: the ordered, panic-safe observer registry
//   - config: YAML configuration for the standalone binary
//   - cmd/junction: CLI for running a configured intersection
//
// The internal packages are not part of the public API and may change
// without notice.
package junction
