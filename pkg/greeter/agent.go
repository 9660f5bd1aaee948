package greeter

import (
	"context"
	"errors"

	"github.com/alitto/pond/v2"

	"github.com/aretw0/sprig"
	"github.com/aretw0/sprig/pkg/ports"
)

// PipelineName is the name of the underlying sprig pipeline.
const PipelineName = "greeter"

// defaultBatchWorkers bounds InvokeAll concurrency. Invocations are
// CPU-trivial, so a small pool is plenty.
const defaultBatchWorkers = 8

// Agent is the programmatic entry point of the greeter: a single-step sprig
// pipeline exposed over the typed State.
type Agent struct {
	engine *sprig.Engine
}

// New creates a greeter Agent. Options are forwarded to the underlying
// engine (logger, hooks, tracer provider).
func New(opts ...sprig.Option) (*Agent, error) {
	eng, err := sprig.New(PipelineName, []ports.Step{Step()}, opts...)
	if err != nil {
		return nil, err
	}

	return &Agent{engine: eng}, nil
}

// Invoke runs one greeting. The returned state carries the input name
// unchanged and the freshly computed greeting; any greeting present on the
// input is ignored. The input value is never mutated.
func (a *Agent) Invoke(ctx context.Context, in State) (State, error) {
	raw, err := in.toDomain()
	if err != nil {
		return State{}, err
	}

	out, err := a.engine.Invoke(ctx, raw)
	if err != nil {
		return State{}, err
	}

	return fromDomain(out)
}

// InvokeAll greets every name concurrently and returns the results in input
// order. Each invocation owns its private state, so results never cross
// between names. The first ctx cancellation or decode failure surfaces as
// the joined error; successful slots remain valid.
func (a *Agent) InvokeAll(ctx context.Context, names []string) ([]State, error) {
	if len(names) == 0 {
		return nil, nil
	}

	pool := pond.NewPool(defaultBatchWorkers)

	results := make([]State, len(names))
	errs := make([]error, len(names))

	for i, name := range names {
		pool.Submit(func() {
			results[i], errs[i] = a.Invoke(ctx, State{Name: name})
		})
	}

	pool.StopAndWait()

	return results, errors.Join(errs...)
}
