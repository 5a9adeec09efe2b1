package junction

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/junctionhq/junction/internal/engine"
	"github.com/junctionhq/junction/internal/registry"
)

// RunState reports whether a controller is accepting light transitions.
type RunState string

const (
	// Running means all mutations are accepted.
	Running RunState = "RUNNING"

	// Paused means light transitions are rejected with [ErrPaused];
	// only Resume (or undoing the pause) is accepted.
	Paused RunState = "PAUSED"
)

// Controller owns the signal state of one intersection.
//
// A Controller enforces the conflict invariant — no two conflicting
// directions ever both GREEN, not even transiently — records every accepted
// mutation as an undoable [Command], and notifies subscribed observers
// after each commit. It is created with [New] and functional options.
//
// All methods are safe for concurrent use. Signal state, run state, and
// command history form one critical section: every mutation performs its
// full read-validate-apply-record sequence under an exclusive lock, and
// reads observe consistent snapshots. Observer notification happens after
// the lock is released, using the state captured at commit time, so slow
// or failing observers cannot stall other mutators.
//
// The typical lifecycle is:
//
//	ctl, err := junction.New()
//	if err != nil {
//	    slog.Error("failed to create controller", "error", err)
//	    os.Exit(1)
//	}
//
//	sub := ctl.Subscribe(junction.ObserverFunc(func(c junction.StateChange) {
//	    slog.Info("signal changed", "cause", c.Cause, "state", c.State.String())
//	}))
//	defer ctl.Unsubscribe(sub)
//
//	state, err := ctl.SetGreen(junction.North)
type Controller struct {
	mu      sync.RWMutex
	table   *engine.Table
	history []Command
	seq     uint64

	rules     ConflictRules
	logger    *slog.Logger
	observers *registry.Registry[StateChange]
}

// New creates a [Controller] with the given options.
//
// Defaults: every direction RED, the standard 4-way conflict set
// ([DefaultConflictRules]), and [slog.Default] for logging. Returns an
// error if any option is invalid or if the configured initial state already
// violates the conflict rules.
//
// Example:
//
//	ctl, err := junction.New(
//	    junction.WithInitialState(junction.SignalState{junction.North: junction.Green}),
//	    junction.WithLogger(logger),
//	)
func New(opts ...Option) (*Controller, error) {
	cfg := &ctlConfig{
		initial: AllRed(),
		rules:   DefaultConflictRules(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	table, err := engine.New(stateToEngine(cfg.initial), pairsToEngine(cfg.rules.Pairs()))
	if err != nil {
		return nil, fmt.Errorf("invalid initial state: %w", convertEngineError(err))
	}

	c := &Controller{
		table:     table,
		rules:     cfg.rules,
		logger:    logger,
		observers: registry.New[StateChange](logger),
	}
	for _, o := range cfg.observers {
		c.Subscribe(o)
	}
	return c, nil
}

// SetGreen switches a direction to GREEN.
//
// The request is validated against the conflict rules under a strict reject
// policy: if any conflicting direction is currently GREEN, SetGreen returns
// a [*ConflictError] and nothing changes — no state mutation, no history
// entry, no notification. Callers that want to hand the green over must
// first demote the conflicting directions explicitly via [Controller.SetState].
//
// Returns the post-transition state on success. A [*NotificationError]
// return means the transition was applied but one or more observers failed;
// the returned state is valid.
func (c *Controller) SetGreen(dir Direction) (SignalState, error) {
	return c.mutate(CommandSetGreen, dir, Green)
}

// SetState is the generalized setter for one direction's light.
//
// YELLOW and RED never conflict with anything and are always accepted while
// the controller is running. GREEN requests go through the same conflict
// check as [Controller.SetGreen].
func (c *Controller) SetState(dir Direction, light LightState) (SignalState, error) {
	if !light.Valid() {
		return nil, fmt.Errorf("unknown light state %q (expected RED, YELLOW, or GREEN)", string(light))
	}
	return c.mutate(CommandSetState, dir, light)
}

// mutate runs the shared read-validate-apply-record sequence for light
// changes, then notifies observers outside the lock.
func (c *Controller) mutate(kind CommandKind, dir Direction, light LightState) (SignalState, error) {
	if !dir.Valid() {
		return nil, &InvalidDirectionError{Direction: dir}
	}

	c.mu.Lock()
	if c.table.Paused() {
		c.mu.Unlock()
		return nil, ErrPaused
	}

	prev := stateFromEngine(c.table.Snapshot())
	if err := c.table.Set(string(dir), string(light)); err != nil {
		c.mu.Unlock()
		return nil, convertEngineError(err)
	}

	change := c.commitLocked(Command{
		ID:        uuid.NewString(),
		Kind:      kind,
		Direction: dir,
		Light:     light,
		At:        time.Now(),
		prevState: prev,
	}, dir, light)
	c.mu.Unlock()

	return c.notify(change)
}

// Pause stops the controller from accepting light transitions.
//
// Pausing an already-paused controller is a no-op: it returns the current
// state with no error, records nothing, and notifies nobody. An effective
// pause is recorded in history (undoing it resumes) and notified to
// observers with the unchanged signal state.
func (c *Controller) Pause() (SignalState, error) {
	c.mu.Lock()
	if !c.table.Pause() {
		state := stateFromEngine(c.table.Snapshot())
		c.mu.Unlock()
		return state, nil
	}

	change := c.commitLocked(Command{
		ID:        uuid.NewString(),
		Kind:      CommandPause,
		At:        time.Now(),
		prevState: stateFromEngine(c.table.Snapshot()),
	}, "", "")
	c.mu.Unlock()

	return c.notify(change)
}

// Resume reverses [Controller.Pause]. Resuming a running controller is a
// no-op, mirroring Pause.
func (c *Controller) Resume() (SignalState, error) {
	c.mu.Lock()
	if !c.table.Resume() {
		state := stateFromEngine(c.table.Snapshot())
		c.mu.Unlock()
		return state, nil
	}

	change := c.commitLocked(Command{
		ID:         uuid.NewString(),
		Kind:       CommandResume,
		At:         time.Now(),
		prevState:  stateFromEngine(c.table.Snapshot()),
		prevPaused: true,
	}, "", "")
	c.mu.Unlock()

	return c.notify(change)
}

// Undo reverses the most recent command, restoring the exact signal state
// and run state captured before it was applied.
//
// Undo is strictly last-in-first-out: undoing N successful commands returns
// the controller to its initial state and empties the history. An empty
// history returns [ErrEmptyHistory]. While paused, the only accepted undo
// is one whose most recent entry is the pause itself — that undo resumes
// the controller; anything else returns [ErrPaused].
func (c *Controller) Undo() (SignalState, error) {
	c.mu.Lock()
	if len(c.history) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyHistory
	}

	last := c.history[len(c.history)-1]
	if c.table.Paused() && last.Kind != CommandPause {
		c.mu.Unlock()
		return nil, ErrPaused
	}

	c.history = c.history[:len(c.history)-1]
	c.table.Restore(stateToEngine(last.prevState), last.prevPaused)

	c.seq++
	change := StateChange{
		Seq:   c.seq,
		Cause: CommandUndo,
		State: stateFromEngine(c.table.Snapshot()),
		At:    time.Now(),
	}
	c.mu.Unlock()

	c.logger.Debug("command undone", "undone_kind", string(last.Kind), "undone_id", last.ID)
	return c.notify(change)
}

// commitLocked records an accepted command and builds the observer
// notification from the committed state. Caller holds the write lock.
func (c *Controller) commitLocked(cmd Command, dir Direction, light LightState) StateChange {
	c.history = append(c.history, cmd)
	c.seq++
	return StateChange{
		Seq:       c.seq,
		Cause:     cmd.Kind,
		Direction: dir,
		Light:     light,
		State:     stateFromEngine(c.table.Snapshot()),
		At:        cmd.At,
	}
}

// notify delivers a committed change to all observers in subscription
// order, outside the critical section.
//
// Observer panics are aggregated into a [*NotificationError]; the change
// itself stands either way, so the returned state is always valid.
func (c *Controller) notify(change StateChange) (SignalState, error) {
	failures := c.observers.Dispatch(change)
	if len(failures) == 0 {
		c.logger.Debug("transition applied",
			"seq", change.Seq,
			"cause", string(change.Cause),
			"state", change.State.String(),
		)
		return change.State, nil
	}

	notifErr := &NotificationError{Failures: make([]ObserverFailure, len(failures))}
	for i, f := range failures {
		notifErr.Failures[i] = ObserverFailure{
			Subscription:  Subscription{id: f.Handle},
			CorrelationID: f.CorrelationID,
			Panic:         f.Panic,
		}
	}

	c.logger.Warn("transition applied with observer failures",
		"seq", change.Seq,
		"cause", string(change.Cause),
		"failed_observers", len(failures),
	)
	return change.State, notifErr
}

// State returns a consistent snapshot of the full signal state.
// Always allowed, running or paused.
func (c *Controller) State() SignalState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return stateFromEngine(c.table.Snapshot())
}

// RunState reports whether the controller is [Running] or [Paused].
func (c *Controller) RunState() RunState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.table.Paused() {
		return Paused
	}
	return Running
}

// History returns a copy of the command history, most-recent-last.
func (c *Controller) History() []Command {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := make([]Command, len(c.history))
	copy(cp, c.history)
	return cp
}

// HistoryFor returns the history entries that touched one direction,
// most-recent-last. Pause and resume entries are excluded — they touch no
// direction.
func (c *Controller) HistoryFor(dir Direction) []Command {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Command
	for _, cmd := range c.history {
		if cmd.Direction == dir {
			out = append(out, cmd)
		}
	}
	return out
}

// Rules returns the conflict rules the controller was built with.
func (c *Controller) Rules() ConflictRules {
	return c.rules
}

// Subscribe registers an observer and returns its [Subscription] handle.
//
// The same observer may be subscribed multiple times; each call creates an
// independent registration. Observers are notified in subscription order.
func (c *Controller) Subscribe(o Observer) Subscription {
	return Subscription{id: c.observers.Subscribe(o.Receive)}
}

// Unsubscribe removes one registration. Returns false if the handle was
// already removed or never existed; unsubscribing twice is a no-op.
func (c *Controller) Unsubscribe(s Subscription) bool {
	return c.observers.Unsubscribe(s.id)
}

// stateToEngine converts a public signal state to the engine's string map.
func stateToEngine(s SignalState) map[string]string {
	m := make(map[string]string, len(s))
	for d, l := range s {
		m[string(d)] = string(l)
	}
	return m
}

// stateFromEngine converts an engine snapshot to the public type.
func stateFromEngine(m map[string]string) SignalState {
	s := make(SignalState, len(m))
	for d, l := range m {
		s[Direction(d)] = LightState(l)
	}
	return s
}

// pairsToEngine converts normalized conflict pairs to the engine's form.
func pairsToEngine(pairs [][2]Direction) [][2]string {
	out := make([][2]string, len(pairs))
	for i, p := range pairs {
		out[i] = [2]string{string(p[0]), string(p[1])}
	}
	return out
}

// convertEngineError rewraps engine errors into the public taxonomy.
func convertEngineError(err error) error {
	var conflictErr *engine.ConflictError
	if errors.As(err, &conflictErr) {
		conflicts := make([]Direction, len(conflictErr.Conflicts))
		for i, d := range conflictErr.Conflicts {
			conflicts[i] = Direction(d)
		}
		return &ConflictError{Direction: Direction(conflictErr.Direction), Conflicts: conflicts}
	}

	var unknownErr *engine.UnknownDirectionError
	if errors.As(err, &unknownErr) {
		return &InvalidDirectionError{Direction: Direction(unknownErr.Direction)}
	}

	return err
}
