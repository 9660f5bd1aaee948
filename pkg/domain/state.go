package domain

import "maps"

// State represents the full snapshot a pipeline invocation operates on.
// Keys are field names, values are opaque to the runtime; steps decide
// how to interpret them. Values are treated as immutable by convention.
type State map[string]any

// Delta is a partial State containing only the fields a step changed.
// A step must not echo back fields it did not compute.
type Delta map[string]any

// NewState creates an empty state.
func NewState() State {
	return make(State)
}

// Clone returns an independent copy of the state. The copy is shallow at
// the value level: steps return fresh values rather than mutating old ones,
// so a top-level copy is enough to isolate invocations.
func (s State) Clone() State {
	out := make(State, len(s))
	maps.Copy(out, s)

	return out
}

// Merge applies a delta onto the state, overwriting existing fields.
// Merge order follows step execution order: last writer wins.
func (s State) Merge(d Delta) {
	maps.Copy(s, d)
}

// Has reports whether the field is present.
func (s State) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// GetString returns the field as a string. The second return is false if
// the field is absent or holds a non-string value.
func (s State) GetString(field string) (string, bool) {
	v, ok := s[field]
	if !ok {
		return "", false
	}

	str, ok := v.(string)

	return str, ok
}
