package junction

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewConflictRules_Symmetric(t *testing.T) {
	rules, err := NewConflictRules([2]Direction{North, East})
	if err != nil {
		t.Fatalf("NewConflictRules() error = %v", err)
	}

	if !rules.Conflicts(North, East) {
		t.Error("Conflicts(NORTH, EAST) = false, want true")
	}
	if !rules.Conflicts(East, North) {
		t.Error("Conflicts(EAST, NORTH) = false, want true (rules are symmetric)")
	}
	if rules.Conflicts(North, South) {
		t.Error("Conflicts(NORTH, SOUTH) = true, want false")
	}
}

func TestNewConflictRules_Invalid(t *testing.T) {
	tests := []struct {
		name string
		pair [2]Direction
	}{
		{name: "unknown first", pair: [2]Direction{Direction("UP"), East}},
		{name: "unknown second", pair: [2]Direction{North, Direction("DOWN")}},
		{name: "self conflict", pair: [2]Direction{North, North}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConflictRules(tt.pair)
			var invalidErr *InvalidDirectionError
			if !errors.As(err, &invalidErr) {
				t.Fatalf("NewConflictRules(%v) error = %v, want *InvalidDirectionError", tt.pair, err)
			}
		})
	}
}

func TestDefaultConflictRules(t *testing.T) {
	rules := DefaultConflictRules()

	conflicting := [][2]Direction{
		{North, East}, {North, West}, {South, East}, {South, West},
	}
	for _, p := range conflicting {
		if !rules.Conflicts(p[0], p[1]) {
			t.Errorf("Conflicts(%s, %s) = false, want true", p[0], p[1])
		}
	}

	compatible := [][2]Direction{
		{North, South}, {East, West},
	}
	for _, p := range compatible {
		if rules.Conflicts(p[0], p[1]) {
			t.Errorf("Conflicts(%s, %s) = true, want false", p[0], p[1])
		}
	}
}

func TestConflictRules_ConflictsWith(t *testing.T) {
	rules := DefaultConflictRules()

	got := rules.ConflictsWith(North)
	if want := []Direction{East, West}; !reflect.DeepEqual(got, want) {
		t.Errorf("ConflictsWith(NORTH) = %v, want %v", got, want)
	}

	empty, err := NewConflictRules()
	if err != nil {
		t.Fatalf("NewConflictRules() error = %v", err)
	}
	if got := empty.ConflictsWith(North); got != nil {
		t.Errorf("ConflictsWith(NORTH) on empty rules = %v, want nil", got)
	}
}

func TestConflictRules_PairsNormalized(t *testing.T) {
	// register in both orders; Pairs must dedupe and sort
	rules, err := NewConflictRules(
		[2]Direction{West, South},
		[2]Direction{East, North},
	)
	if err != nil {
		t.Fatalf("NewConflictRules() error = %v", err)
	}

	got := rules.Pairs()
	want := [][2]Direction{
		{East, North},
		{South, West},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}
