package greeter

import (
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/sprig/pkg/domain"
)

// Field names of the greeter pipeline state.
const (
	FieldName     = "name"
	FieldGreeting = "greeting"
)

// State is the typed view of the greeter pipeline state. Name is the input
// field; Greeting is computed. Both are plain text with no validation,
// length limits or encoding constraints: any string, including the empty
// string and non-ASCII text, passes through verbatim.
type State struct {
	Name     string `json:"name" mapstructure:"name"`
	Greeting string `json:"greeting,omitempty" mapstructure:"greeting,omitempty"`
}

// toDomain converts the typed state into the runtime's map form.
func (s State) toDomain() (domain.State, error) {
	raw := domain.NewState()
	if err := mapstructure.Decode(s, &raw); err != nil {
		return nil, err
	}

	// Name is required input; keep it present even when empty, since
	// omitting it would be a contract violation downstream.
	if !raw.Has(FieldName) {
		raw[FieldName] = s.Name
	}

	return raw, nil
}

// fromDomain decodes the runtime's map form back into the typed state.
func fromDomain(raw domain.State) (State, error) {
	var s State
	if err := mapstructure.Decode(map[string]any(raw), &s); err != nil {
		return State{}, err
	}

	return s, nil
}
