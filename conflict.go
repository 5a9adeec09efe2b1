package junction

import "sort"

// ConflictRules is a symmetric relation over directions: two directions in
// the relation must never both show GREEN at the same instant.
//
// Rules are normalized on construction — adding (NORTH, EAST) also forbids
// (EAST, NORTH). A ConflictRules value is immutable after construction and
// safe to share between controllers.
type ConflictRules struct {
	pairs map[Direction]map[Direction]struct{}
}

// NewConflictRules builds a rule set from direction pairs.
//
// Each pair is registered symmetrically. Pairs referencing an unknown
// direction return an [InvalidDirectionError]; a direction paired with
// itself is rejected.
func NewConflictRules(pairs ...[2]Direction) (ConflictRules, error) {
	rules := ConflictRules{pairs: make(map[Direction]map[Direction]struct{})}
	for _, p := range pairs {
		a, b := p[0], p[1]
		if !a.Valid() {
			return ConflictRules{}, &InvalidDirectionError{Direction: a}
		}
		if !b.Valid() {
			return ConflictRules{}, &InvalidDirectionError{Direction: b}
		}
		if a == b {
			return ConflictRules{}, &InvalidDirectionError{Direction: a}
		}
		rules.add(a, b)
		rules.add(b, a)
	}
	return rules, nil
}

// DefaultConflictRules returns the standard 4-way intersection rule set:
// each of NORTH and SOUTH conflicts with each of EAST and WEST. Opposing
// approaches (NORTH–SOUTH, EAST–WEST) may be green concurrently.
func DefaultConflictRules() ConflictRules {
	rules, err := NewConflictRules(
		[2]Direction{North, East},
		[2]Direction{North, West},
		[2]Direction{South, East},
		[2]Direction{South, West},
	)
	if err != nil {
		// the built-in pairs are always valid
		panic(err)
	}
	return rules
}

func (r *ConflictRules) add(a, b Direction) {
	set, ok := r.pairs[a]
	if !ok {
		set = make(map[Direction]struct{})
		r.pairs[a] = set
	}
	set[b] = struct{}{}
}

// Conflicts reports whether a and b must never both be GREEN.
func (r ConflictRules) Conflicts(a, b Direction) bool {
	set, ok := r.pairs[a]
	if !ok {
		return false
	}
	_, conflicting := set[b]
	return conflicting
}

// ConflictsWith returns the directions conflicting with d, sorted for
// deterministic output. Returns nil if d has no registered conflicts.
func (r ConflictRules) ConflictsWith(d Direction) []Direction {
	set, ok := r.pairs[d]
	if !ok {
		return nil
	}
	out := make([]Direction, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Pairs returns the rule set as normalized pairs (lexicographically ordered
// within and across pairs). Useful for logging and config round-trips.
func (r ConflictRules) Pairs() [][2]Direction {
	var out [][2]Direction
	for a, set := range r.pairs {
		for b := range set {
			if a < b {
				out = append(out, [2]Direction{a, b})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
