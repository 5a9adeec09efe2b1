package junction

import "time"

// StateChange is the notification delivered to observers after every
// accepted mutation.
//
// StateChange is immutable after creation: State is a private copy taken at
// commit time, so observers can hold onto it without racing the controller.
type StateChange struct {
	// Seq is the commit sequence number, starting at 1. Mutations commit in
	// strictly increasing Seq order; observers receiving changes from
	// concurrent callers can use it to order them.
	Seq uint64

	// Cause tags the operation that produced the change, including
	// [CommandUndo] for rollbacks.
	Cause CommandKind

	// Direction is the direction the operation touched.
	// Empty for pause, resume, and undo of either.
	Direction Direction

	// Light is the light the direction was set to.
	// Empty for pause, resume, and undo of either.
	Light LightState

	// State is the full post-transition signal state.
	State SignalState

	// At is the time the mutation was accepted.
	At time.Time
}

// Observer receives a [StateChange] after every accepted mutation.
//
// Any type with a single Receive method qualifies; use [ObserverFunc] to
// adapt a bare function. Receive is called synchronously after the mutation
// commits and outside the controller's critical section, so a slow observer
// delays its caller's return but never blocks other mutators.
//
// Panics in Receive are recovered: they are logged with a correlation ID
// and surfaced to the mutating caller as a [*NotificationError], and they
// never prevent delivery to the remaining observers.
type Observer interface {
	Receive(change StateChange)
}

// ObserverFunc adapts a plain function to the [Observer] interface.
type ObserverFunc func(change StateChange)

// Receive implements [Observer].
func (f ObserverFunc) Receive(change StateChange) {
	f(change)
}

// Subscription is the handle returned by [Controller.Subscribe].
//
// Each Subscribe call returns a distinct handle, even for the same observer
// value; unsubscribing one registration leaves the others in place.
type Subscription struct {
	id string
}

// ID returns the opaque handle identifier. Useful for correlating
// [ObserverFailure] entries with registrations.
func (s Subscription) ID() string {
	return s.id
}
