package junction

import (
	"fmt"
	"sort"
	"strings"
)

// Direction identifies one of the four cardinal approaches to the
// intersection.
//
// Direction is a string type so that states serialize and log in a
// human-readable form while keeping type safety through the defined
// constants. Use [ParseDirection] to validate untrusted input.
type Direction string

const (
	North Direction = "NORTH"
	South Direction = "SOUTH"
	East  Direction = "EAST"
	West  Direction = "WEST"
)

// Directions returns the four directions in a fixed, deterministic order.
func Directions() []Direction {
	return []Direction{North, South, East, West}
}

// String returns the string representation of the direction.
// This implements the fmt.Stringer interface.
func (d Direction) String() string {
	return string(d)
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// ParseDirection converts a string token into a [Direction].
//
// Matching is case-insensitive ("north", "North", and "NORTH" are all
// accepted). Unknown tokens return an [InvalidDirectionError].
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", &InvalidDirectionError{Direction: Direction(s)}
	}
	return d, nil
}

// LightState is the colour a single signal head is showing.
//
// LightState is a string type that can hold one of three predefined values:
// [Red], [Yellow], or [Green]. Use [ParseLightState] to validate untrusted
// input.
type LightState string

const (
	Red    LightState = "RED"
	Yellow LightState = "YELLOW"
	Green  LightState = "GREEN"
)

// String returns the string representation of the light state.
// This implements the fmt.Stringer interface.
func (l LightState) String() string {
	return string(l)
}

// Valid reports whether l is one of the three known light states.
func (l LightState) Valid() bool {
	switch l {
	case Red, Yellow, Green:
		return true
	}
	return false
}

// ParseLightState converts a string token into a [LightState].
//
// Matching is case-insensitive. Unknown tokens return an error.
func ParseLightState(s string) (LightState, error) {
	l := LightState(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("unknown light state %q (expected RED, YELLOW, or GREEN)", s)
	}
	return l, nil
}

// SignalState maps every direction to the light it is currently showing.
//
// A SignalState returned by the controller is always fully populated (one
// entry per direction) and is a copy; modifying it does not affect the
// controller.
type SignalState map[Direction]LightState

// Clone returns a copy of the signal state, or nil if s is nil.
func (s SignalState) Clone() SignalState {
	if s == nil {
		return nil
	}
	cp := make(SignalState, len(s))
	for d, l := range s {
		cp[d] = l
	}
	return cp
}

// Equal reports whether two signal states map the same directions to the
// same lights.
func (s SignalState) Equal(other SignalState) bool {
	if len(s) != len(other) {
		return false
	}
	for d, l := range s {
		if other[d] != l {
			return false
		}
	}
	return true
}

// GreenDirections returns the directions currently showing GREEN, sorted
// for deterministic output.
func (s SignalState) GreenDirections() []Direction {
	var greens []Direction
	for d, l := range s {
		if l == Green {
			greens = append(greens, d)
		}
	}
	sort.Slice(greens, func(i, j int) bool { return greens[i] < greens[j] })
	return greens
}

// String renders the state as "EAST=RED NORTH=GREEN SOUTH=RED WEST=RED"
// with directions in sorted order, for logs and error messages.
func (s SignalState) String() string {
	dirs := make([]Direction, 0, len(s))
	for d := range s {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })

	parts := make([]string, 0, len(dirs))
	for _, d := range dirs {
		parts = append(parts, fmt.Sprintf("%s=%s", d, s[d]))
	}
	return strings.Join(parts, " ")
}

// AllRed returns a fully populated signal state with every direction RED.
// This is the default initial state of a controller.
func AllRed() SignalState {
	state := make(SignalState, len(Directions()))
	for _, d := range Directions() {
		state[d] = Red
	}
	return state
}
