package junction

import (
	"errors"
	"testing"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Direction
		wantErr bool
	}{
		{name: "upper", input: "NORTH", want: North},
		{name: "lower", input: "south", want: South},
		{name: "mixed", input: "East", want: East},
		{name: "padded", input: "  west  ", want: West},
		{name: "unknown", input: "UP", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				var invalidErr *InvalidDirectionError
				if !errors.As(err, &invalidErr) {
					t.Fatalf("ParseDirection(%q) error = %v, want *InvalidDirectionError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDirection(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseLightState(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    LightState
		wantErr bool
	}{
		{name: "upper", input: "GREEN", want: Green},
		{name: "lower", input: "red", want: Red},
		{name: "mixed", input: "Yellow", want: Yellow},
		{name: "unknown", input: "BLUE", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLightState(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLightState(%q) error = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLightState(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLightState(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestAllRed(t *testing.T) {
	state := AllRed()
	if len(state) != 4 {
		t.Fatalf("AllRed() has %d entries, want 4", len(state))
	}
	for _, d := range Directions() {
		if state[d] != Red {
			t.Errorf("AllRed()[%s] = %q, want RED", d, state[d])
		}
	}
}

func TestSignalState_CloneIsIndependent(t *testing.T) {
	orig := AllRed()
	cp := orig.Clone()
	cp[North] = Green

	if orig[North] != Red {
		t.Errorf("mutating clone changed original: NORTH = %q, want RED", orig[North])
	}
	if (SignalState)(nil).Clone() != nil {
		t.Error("Clone() of nil = non-nil, want nil")
	}
}

func TestSignalState_Equal(t *testing.T) {
	a := AllRed()
	b := AllRed()
	if !a.Equal(b) {
		t.Error("Equal() = false for identical states")
	}

	b[North] = Green
	if a.Equal(b) {
		t.Error("Equal() = true for differing states")
	}

	partial := SignalState{North: Red}
	if a.Equal(partial) {
		t.Error("Equal() = true for states of different size")
	}
}

func TestSignalState_String(t *testing.T) {
	state := AllRed()
	state[North] = Green

	got := state.String()
	want := "EAST=RED NORTH=GREEN SOUTH=RED WEST=RED"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSignalState_GreenDirections(t *testing.T) {
	state := AllRed()
	if got := state.GreenDirections(); len(got) != 0 {
		t.Errorf("GreenDirections() = %v, want empty", got)
	}

	state[West] = Green
	state[East] = Green
	got := state.GreenDirections()
	if len(got) != 2 || got[0] != East || got[1] != West {
		t.Errorf("GreenDirections() = %v, want [EAST WEST]", got)
	}
}
