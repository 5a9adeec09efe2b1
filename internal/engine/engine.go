package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Green is the only light value the conflict relation cares about.
// Other light values are opaque to the engine.
const Green = "GREEN"

// ConflictError reports a GREEN request that would coexist with a
// conflicting direction already showing GREEN. The table is unchanged.
type ConflictError struct {
	// Direction is the direction that was requested to turn GREEN.
	Direction string

	// Conflicts lists the conflicting directions that were GREEN, sorted.
	Conflicts []string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot set %s to GREEN: conflicts with %s",
		e.Direction, strings.Join(e.Conflicts, ", "))
}

// UnknownDirectionError reports a direction token that is not part of the
// table.
type UnknownDirectionError struct {
	Direction string
}

// Error implements the error interface.
func (e *UnknownDirectionError) Error() string {
	return fmt.Sprintf("unknown direction %q", e.Direction)
}

// Table is the signal state of one intersection: a fully populated
// direction→light map, a paused flag, and the symmetric conflict relation.
//
// Table is not safe for concurrent use; the caller serializes access.
type Table struct {
	lights    map[string]string
	conflicts map[string]map[string]struct{}
	paused    bool
}

// New creates a table from an initial direction→light map and symmetric
// conflict pairs.
//
// Every direction named in a conflict pair must exist in the initial map.
// The initial map must not contain conflicting GREENs — a table never starts
// in a state it would itself refuse to enter.
func New(initial map[string]string, conflictPairs [][2]string) (*Table, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("initial state must name at least one direction")
	}

	t := &Table{
		lights:    make(map[string]string, len(initial)),
		conflicts: make(map[string]map[string]struct{}),
	}
	for dir, light := range initial {
		t.lights[dir] = light
	}

	for _, p := range conflictPairs {
		a, b := p[0], p[1]
		if _, ok := t.lights[a]; !ok {
			return nil, &UnknownDirectionError{Direction: a}
		}
		if _, ok := t.lights[b]; !ok {
			return nil, &UnknownDirectionError{Direction: b}
		}
		if a == b {
			return nil, fmt.Errorf("direction %q cannot conflict with itself", a)
		}
		t.addConflict(a, b)
		t.addConflict(b, a)
	}

	// reject initial states that already violate the invariant
	for dir, light := range t.lights {
		if light != Green {
			continue
		}
		if greens := t.ConflictingGreens(dir); len(greens) > 0 {
			return nil, &ConflictError{Direction: dir, Conflicts: greens}
		}
	}

	return t, nil
}

func (t *Table) addConflict(a, b string) {
	set, ok := t.conflicts[a]
	if !ok {
		set = make(map[string]struct{})
		t.conflicts[a] = set
	}
	set[b] = struct{}{}
}

// Set applies a light change to one direction.
//
// A GREEN request is validated against the conflict relation first; if any
// conflicting direction is currently GREEN, Set returns a [*ConflictError]
// and the table is unchanged. Unknown directions return a
// [*UnknownDirectionError]. Non-GREEN lights are always accepted.
func (t *Table) Set(dir, light string) error {
	if _, ok := t.lights[dir]; !ok {
		return &UnknownDirectionError{Direction: dir}
	}

	if light == Green {
		if greens := t.ConflictingGreens(dir); len(greens) > 0 {
			return &ConflictError{Direction: dir, Conflicts: greens}
		}
	}

	t.lights[dir] = light
	return nil
}

// Light returns the light currently shown by dir.
func (t *Table) Light(dir string) (string, bool) {
	light, ok := t.lights[dir]
	return light, ok
}

// Snapshot returns a copy of the direction→light map.
func (t *Table) Snapshot() map[string]string {
	snap := make(map[string]string, len(t.lights))
	for dir, light := range t.lights {
		snap[dir] = light
	}
	return snap
}

// Restore overwrites the table with a previously captured snapshot and
// paused flag. Used by undo; the snapshot is trusted to be a state the
// table has already been in.
func (t *Table) Restore(snap map[string]string, paused bool) {
	t.lights = make(map[string]string, len(snap))
	for dir, light := range snap {
		t.lights[dir] = light
	}
	t.paused = paused
}

// ConflictingGreens returns the directions that conflict with dir and are
// currently GREEN, sorted for deterministic errors.
func (t *Table) ConflictingGreens(dir string) []string {
	set, ok := t.conflicts[dir]
	if !ok {
		return nil
	}
	var greens []string
	for other := range set {
		if t.lights[other] == Green {
			greens = append(greens, other)
		}
	}
	sort.Strings(greens)
	return greens
}

// Paused reports whether the table is paused.
func (t *Table) Paused() bool {
	return t.paused
}

// Pause marks the table paused. Returns false if it already was — pausing
// twice is a no-op, not an error.
func (t *Table) Pause() bool {
	if t.paused {
		return false
	}
	t.paused = true
	return true
}

// Resume clears the paused flag. Returns false if the table was already
// running.
func (t *Table) Resume() bool {
	if !t.paused {
		return false
	}
	t.paused = false
	return true
}
