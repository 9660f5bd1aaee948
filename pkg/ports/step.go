package ports

import (
	"context"

	"github.com/aretw0/sprig/pkg/domain"
)

// Step is the unit of computation in a pipeline. A step reads the working
// state and returns a delta containing only the fields it computed. Steps
// must be pure with respect to the state: read it, never mutate it.
type Step interface {
	// Name identifies the step in logs, traces, metrics and errors.
	Name() string

	// Run computes the step's delta from the current state.
	Run(ctx context.Context, state domain.State) (domain.Delta, error)
}

// Validator is an optional interface for steps that declare input fields
// which must be present in the initial state. The pipeline rejects an
// invocation with domain.ErrMissingInput before running any step.
type Validator interface {
	Requires() []string
}

// Producer is an optional interface for steps that declare the output
// fields they write. Declared fields are reset to the empty string during
// state initialization, so a stale value in the input can never leak
// through to the result.
type Producer interface {
	Produces() []string
}

// StepFunc adapts a plain function into a Step.
func StepFunc(name string, fn func(ctx context.Context, state domain.State) (domain.Delta, error)) Step {
	return &funcStep{name: name, fn: fn}
}

type funcStep struct {
	name string
	fn   func(ctx context.Context, state domain.State) (domain.Delta, error)
}

func (s *funcStep) Name() string { return s.name }

func (s *funcStep) Run(ctx context.Context, state domain.State) (domain.Delta, error) {
	return s.fn(ctx, state)
}
