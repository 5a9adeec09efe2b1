package junction

import "time"

// CommandKind tags the kind of mutation a [Command] records.
//
// CommandKind is a string type for readable history dumps and log output.
type CommandKind string

const (
	// CommandSetGreen records a direction being switched to GREEN.
	CommandSetGreen CommandKind = "set_green"

	// CommandSetState records a generalized light change (RED or YELLOW,
	// or GREEN issued through SetState).
	CommandSetState CommandKind = "set_state"

	// CommandPause records an effective pause.
	CommandPause CommandKind = "pause"

	// CommandResume records an effective resume.
	CommandResume CommandKind = "resume"

	// CommandUndo never appears in history; it is the cause reported to
	// observers when a transition is rolled back.
	CommandUndo CommandKind = "undo"
)

// Command is one accepted mutation, recorded with enough pre-image data to
// reverse it.
//
// Commands are created by the controller only; the history returned by
// [Controller.History] is an ordered, most-recent-last copy. The pre-image
// itself is not exported — undo is driven exclusively through
// [Controller.Undo] so that history and state can never diverge.
type Command struct {
	// ID uniquely identifies this command across the controller's lifetime.
	ID string

	// Kind tags what the command did.
	Kind CommandKind

	// Direction is the direction the command touched.
	// Empty for pause/resume commands.
	Direction Direction

	// Light is the light the direction was set to.
	// Empty for pause/resume commands.
	Light LightState

	// At is the time the command was accepted.
	At time.Time

	// pre-image captured before the command was applied
	prevState  SignalState
	prevPaused bool
}
