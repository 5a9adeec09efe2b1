package junction

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by controller operations.
//
// Use [errors.Is] to test for them:
//
//	if _, err := ctl.SetGreen(junction.South); errors.Is(err, junction.ErrPaused) {
//	    // controller is paused; only Resume (or undoing the pause) is accepted
//	}
var (
	// ErrPaused is returned by mutating operations while the controller is
	// paused. Only Resume — or an Undo whose most recent entry is the pause
	// itself — is accepted in that state.
	ErrPaused = errors.New("controller is paused")

	// ErrEmptyHistory is returned by Undo when no command remains to undo.
	ErrEmptyHistory = errors.New("command history is empty")
)

// ConflictError is returned when a requested GREEN would coexist with a
// conflicting direction that is already GREEN.
//
// The controller uses a strict reject policy: the transition is refused and
// no state changes. The error carries the offending request and the
// conflicting directions that were GREEN at the time.
type ConflictError struct {
	// Direction is the direction that was requested to turn GREEN.
	Direction Direction

	// Conflicts lists the conflicting directions that were GREEN, sorted.
	Conflicts []Direction
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	names := make([]string, len(e.Conflicts))
	for i, d := range e.Conflicts {
		names[i] = string(d)
	}
	return fmt.Sprintf("cannot set %s to GREEN: conflicts with %s",
		e.Direction, strings.Join(names, ", "))
}

// InvalidDirectionError is returned when an operation references a direction
// token outside the known set.
type InvalidDirectionError struct {
	// Direction is the unrecognized token as supplied by the caller.
	Direction Direction
}

// Error implements the error interface.
func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("unknown direction %q (expected NORTH, SOUTH, EAST, or WEST)", string(e.Direction))
}

// NotificationError aggregates per-observer delivery failures from a single
// accepted transition.
//
// A NotificationError never means the transition failed: the state change
// was applied and recorded before observers were notified, and the
// SignalState returned alongside the error is valid. Callers that care about
// observer health can detect it with [errors.As]; callers that only care
// about the transition can treat it as a warning.
type NotificationError struct {
	// Failures holds one entry per observer whose delivery panicked,
	// in delivery (subscription) order.
	Failures []ObserverFailure
}

// ObserverFailure describes a single observer delivery that panicked.
type ObserverFailure struct {
	// Subscription identifies the failing registration.
	Subscription Subscription

	// CorrelationID links this failure to the server-side log entry that
	// carries the full stack trace.
	CorrelationID string

	// Panic is the recovered panic value, rendered as a string.
	Panic string
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	return fmt.Sprintf("transition applied, but %d observer(s) failed during notification", len(e.Failures))
}
