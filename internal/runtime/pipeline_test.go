package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sprig/internal/runtime"
	"github.com/aretw0/sprig/pkg/domain"
	"github.com/aretw0/sprig/pkg/ports"
)

// upperStep is a declarative test step: requires "in", produces "out".
type upperStep struct{}

func (upperStep) Name() string       { return "upper" }
func (upperStep) Requires() []string { return []string{"in"} }
func (upperStep) Produces() []string { return []string{"out"} }
func (upperStep) Run(_ context.Context, state domain.State) (domain.Delta, error) {
	v, _ := state.GetString("in")
	return domain.Delta{"out": v + "!"}, nil
}

func TestNewPipeline_Validation(t *testing.T) {
	t.Run("no steps", func(t *testing.T) {
		_, err := runtime.NewPipeline("empty", nil)
		assert.ErrorIs(t, err, domain.ErrNoSteps)
	})

	t.Run("nil step", func(t *testing.T) {
		_, err := runtime.NewPipeline("broken", []ports.Step{upperStep{}, nil})
		assert.ErrorIs(t, err, domain.ErrNilStep)
	})
}

func TestPipeline_Invoke(t *testing.T) {
	p, err := runtime.NewPipeline("test", []ports.Step{upperStep{}},
		runtime.WithLogger(slogt.New(t)))
	require.NoError(t, err)

	t.Run("merges delta into final state", func(t *testing.T) {
		out, err := p.Invoke(context.Background(), domain.State{"in": "hello"})
		require.NoError(t, err)

		assert.Equal(t, domain.State{"in": "hello", "out": "hello!"}, out)
	})

	t.Run("never mutates caller input", func(t *testing.T) {
		input := domain.State{"in": "hello"}

		_, err := p.Invoke(context.Background(), input)
		require.NoError(t, err)

		assert.Equal(t, domain.State{"in": "hello"}, input)
	})

	t.Run("rejects missing required field", func(t *testing.T) {
		_, err := p.Invoke(context.Background(), domain.State{"other": "x"})
		assert.ErrorIs(t, err, domain.ErrMissingInput)
	})

	t.Run("resets produced fields before running", func(t *testing.T) {
		out, err := p.Invoke(context.Background(), domain.State{"in": "hi", "out": "stale"})
		require.NoError(t, err)

		assert.Equal(t, "hi!", out["out"], "stale input value must be overwritten")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := p.Invoke(ctx, domain.State{"in": "hello"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipeline_MergeOrder(t *testing.T) {
	first := ports.StepFunc("first", func(_ context.Context, _ domain.State) (domain.Delta, error) {
		return domain.Delta{"field": "first", "a": "1"}, nil
	})
	second := ports.StepFunc("second", func(_ context.Context, _ domain.State) (domain.Delta, error) {
		return domain.Delta{"field": "second", "b": "2"}, nil
	})

	p, err := runtime.NewPipeline("order", []ports.Step{first, second})
	require.NoError(t, err)

	out, err := p.Invoke(context.Background(), domain.State{})
	require.NoError(t, err)

	assert.Equal(t, "second", out["field"], "later delta wins the conflict")
	assert.Equal(t, "1", out["a"])
	assert.Equal(t, "2", out["b"])
}

func TestPipeline_StepError(t *testing.T) {
	boom := errors.New("boom")
	failing := ports.StepFunc("explode", func(_ context.Context, _ domain.State) (domain.Delta, error) {
		return nil, boom
	})

	p, err := runtime.NewPipeline("failing", []ports.Step{failing})
	require.NoError(t, err)

	_, err = p.Invoke(context.Background(), domain.State{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `step "explode"`)
}

func TestPipeline_LifecycleHooks(t *testing.T) {
	// Capture events
	var events []string

	hooks := domain.LifecycleHooks{
		OnPipelineStart: func(ctx context.Context, e *domain.PipelineEvent) {
			events = append(events, "pipeline_start:"+e.Pipeline)
		},
		OnPipelineEnd: func(ctx context.Context, e *domain.PipelineEvent) {
			events = append(events, "pipeline_end:"+e.Pipeline)
		},
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			events = append(events, "step_start:"+e.Step)
		},
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			events = append(events, "step_end:"+e.Step)
		},
	}

	p, err := runtime.NewPipeline("hooked", []ports.Step{upperStep{}},
		runtime.WithLifecycleHooks(hooks))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	if _, err := p.Invoke(context.Background(), domain.State{"in": "x"}); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	want := []string{
		"pipeline_start:hooked",
		"step_start:upper",
		"step_end:upper",
		"pipeline_end:hooked",
	}
	if len(events) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(events), events)
	}
	for i, w := range want {
		if events[i] != w {
			t.Errorf("Event %d: expected %q, got %q", i, w, events[i])
		}
	}
}

func TestPipeline_Steps(t *testing.T) {
	p, err := runtime.NewPipeline("inspect", []ports.Step{upperStep{}})
	require.NoError(t, err)

	assert.Equal(t, []string{"upper"}, p.Steps())
}
