package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/sprig/pkg/domain"
	"github.com/aretw0/sprig/pkg/ports"
)

const tracerName = "github.com/aretw0/sprig"

// Pipeline is the core runner. It executes registered steps in order against
// a private working copy of the caller's state, merging each step's delta
// before moving on. The caller's input is never mutated.
type Pipeline struct {
	name   string
	steps  []ports.Step
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	tracer trace.Tracer
}

// Option defines a functional option for configuring the Pipeline.
type Option func(*Pipeline)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Pipeline) {
		p.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTracerProvider sets the provider used to create invocation spans.
// Defaults to the global provider, which is a no-op unless tracing was
// initialized by the host.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(p *Pipeline) {
		if tp != nil {
			p.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewPipeline creates a pipeline for the given ordered steps.
func NewPipeline(name string, steps []ports.Step, opts ...Option) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, domain.ErrNoSteps
	}

	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("%w at position %d", domain.ErrNilStep, i)
		}
	}

	p := &Pipeline{
		name:   name,
		steps:  steps,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Steps returns the registered step names in execution order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name()
	}

	return names
}

// Invoke runs the pipeline against a copy of initial and returns the merged
// final state. The returned state contains the union of the initial fields
// and all step deltas; for conflicting fields the last step wins.
func (p *Pipeline) Invoke(ctx context.Context, initial domain.State) (domain.State, error) {
	if err := p.validate(initial); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	working := p.initialize(initial)

	ctx, span := p.tracer.Start(ctx, "pipeline.invoke", trace.WithAttributes(
		attribute.String("sprig.pipeline", p.name),
		attribute.String("sprig.run_id", runID),
	))
	defer span.End()

	started := time.Now()
	p.firePipelineStart(ctx, runID)

	for _, step := range p.steps {
		// The step itself has no suspension point; cancellation is only
		// observable between steps.
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())

			return nil, err
		}

		delta, err := p.runStep(ctx, runID, step, working)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())

			return nil, err
		}

		working.Merge(delta)
	}

	p.firePipelineEnd(ctx, runID, time.Since(started))
	p.logger.Debug("pipeline completed",
		"pipeline", p.name,
		"run_id", runID,
		"steps", len(p.steps),
	)

	return working, nil
}

// validate checks the declared required fields of every step against the
// initial state. A missing field is a contract violation and fails loudly.
func (p *Pipeline) validate(initial domain.State) error {
	for _, step := range p.steps {
		v, ok := step.(ports.Validator)
		if !ok {
			continue
		}

		for _, field := range v.Requires() {
			if !initial.Has(field) {
				return fmt.Errorf("%w: %q (step %q)", domain.ErrMissingInput, field, step.Name())
			}
		}
	}

	return nil
}

// initialize builds the working copy. Fields a step declares it produces are
// reset to the empty string so stale input values cannot leak through.
func (p *Pipeline) initialize(initial domain.State) domain.State {
	working := initial.Clone()

	for _, step := range p.steps {
		prod, ok := step.(ports.Producer)
		if !ok {
			continue
		}

		for _, field := range prod.Produces() {
			working[field] = ""
		}
	}

	return working
}

func (p *Pipeline) runStep(ctx context.Context, runID string, step ports.Step, working domain.State) (domain.Delta, error) {
	stepCtx, span := p.tracer.Start(ctx, "pipeline.step",
		trace.WithAttributes(attribute.String("sprig.step", step.Name())))
	defer span.End()

	p.fireStepStart(stepCtx, runID, step.Name())
	started := time.Now()

	delta, err := step.Run(stepCtx, working)
	elapsed := time.Since(started)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		p.fireStepEnd(stepCtx, runID, step.Name(), elapsed, err)
		p.logger.Debug("step failed",
			"pipeline", p.name,
			"run_id", runID,
			"step", step.Name(),
			"err", err,
		)

		return nil, fmt.Errorf("step %q: %w", step.Name(), err)
	}

	p.fireStepEnd(stepCtx, runID, step.Name(), elapsed, nil)
	p.logger.Debug("step completed",
		"pipeline", p.name,
		"run_id", runID,
		"step", step.Name(),
		"fields", len(delta),
		"duration", elapsed,
	)

	return delta, nil
}

func (p *Pipeline) firePipelineStart(ctx context.Context, runID string) {
	if p.hooks.OnPipelineStart == nil {
		return
	}

	p.hooks.OnPipelineStart(ctx, &domain.PipelineEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventPipelineStart,
			RunID:     runID,
		},
		Pipeline: p.name,
	})
}

func (p *Pipeline) firePipelineEnd(ctx context.Context, runID string, elapsed time.Duration) {
	if p.hooks.OnPipelineEnd == nil {
		return
	}

	p.hooks.OnPipelineEnd(ctx, &domain.PipelineEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventPipelineEnd,
			RunID:     runID,
		},
		Pipeline: p.name,
		Duration: elapsed,
	})
}

func (p *Pipeline) fireStepStart(ctx context.Context, runID, step string) {
	if p.hooks.OnStepStart == nil {
		return
	}

	p.hooks.OnStepStart(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventStepStart,
			RunID:     runID,
		},
		Pipeline: p.name,
		Step:     step,
	})
}

func (p *Pipeline) fireStepEnd(ctx context.Context, runID, step string, elapsed time.Duration, err error) {
	if p.hooks.OnStepEnd == nil {
		return
	}

	evt := &domain.StepEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventStepEnd,
			RunID:     runID,
		},
		Pipeline: p.name,
		Step:     step,
		Duration: elapsed,
	}
	if err != nil {
		evt.Err = err.Error()
	}

	p.hooks.OnStepEnd(ctx, evt)
}
