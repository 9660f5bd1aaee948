package sprig

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/aretw0/sprig/internal/runtime"
	"github.com/aretw0/sprig/pkg/domain"
	"github.com/aretw0/sprig/pkg/ports"
)

// Engine is the high-level entry point for the Sprig library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	pipeline *runtime.Pipeline
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	tp       trace.TracerProvider
	Name     string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTracerProvider sets the tracer provider used for invocation spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		e.tp = tp
	}
}

// New initializes a new Sprig Engine running the given steps in order.
func New(name string, steps []ports.Step, opts ...Option) (*Engine, error) {
	eng := &Engine{Name: name}

	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to the runtime,
	// which would overwrite its default).
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if eng.Name != "" {
		eng.logger = eng.logger.With("pipeline", eng.Name)
	}

	pipelineOpts := []runtime.Option{
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
	}
	if eng.tp != nil {
		pipelineOpts = append(pipelineOpts, runtime.WithTracerProvider(eng.tp))
	}

	pipeline, err := runtime.NewPipeline(name, steps, pipelineOpts...)
	if err != nil {
		return nil, err
	}

	eng.pipeline = pipeline

	return eng, nil
}

// Invoke runs the pipeline against a private copy of initial and returns
// the merged final state. The caller's map is never mutated.
func (e *Engine) Invoke(ctx context.Context, initial domain.State) (domain.State, error) {
	return e.pipeline.Invoke(ctx, initial)
}

// Steps returns the registered step names in execution order, for
// introspection and visualization tools.
func (e *Engine) Steps() []string {
	return e.pipeline.Steps()
}
