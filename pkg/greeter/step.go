package greeter

import (
	"context"
	"fmt"

	"github.com/aretw0/sprig/pkg/domain"
	"github.com/aretw0/sprig/pkg/ports"
)

// StepName identifies the greeting step in logs, traces and errors.
const StepName = "greet"

// Step returns the greeting step. It is pure: for any string name,
// including the empty string, it produces exactly
//
//	{greeting: "Hello, " + name + "! Welcome!"}
//
// and nothing else. The delta never echoes the name field back. A
// non-string name is a contract violation and fails with ErrInvalidInput
// rather than substituting a default.
func Step() ports.Step {
	return greetStep{}
}

type greetStep struct{}

func (greetStep) Name() string { return StepName }

func (greetStep) Requires() []string { return []string{FieldName} }

func (greetStep) Produces() []string { return []string{FieldGreeting} }

func (greetStep) Run(_ context.Context, state domain.State) (domain.Delta, error) {
	// Presence is enforced by the pipeline before any step runs.
	name, ok := state.GetString(FieldName)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a string", domain.ErrInvalidInput, FieldName)
	}

	return domain.Delta{
		FieldGreeting: "Hello, " + name + "! Welcome!",
	}, nil
}
