package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPipelineStart EventType = "pipeline_start"
	EventPipelineEnd   EventType = "pipeline_end"
	EventStepStart     EventType = "step_start"
	EventStepEnd       EventType = "step_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// PipelineEvent marks the start or end of a full invocation.
type PipelineEvent struct {
	EventBase
	Pipeline string        `json:"pipeline"`
	Duration time.Duration `json:"duration,omitempty"` // Only set on pipeline_end.
}

// StepEvent marks the start or end of a single step execution.
type StepEvent struct {
	EventBase
	Pipeline string        `json:"pipeline"`
	Step     string        `json:"step"`
	Duration time.Duration `json:"duration,omitempty"` // Only set on step_end.
	Err      string        `json:"err,omitempty"`
}

// LifecycleHooks defines callbacks for pipeline observability.
// Nil callbacks are skipped; hooks must not mutate the state.
type LifecycleHooks struct {
	OnPipelineStart func(context.Context, *PipelineEvent)
	OnPipelineEnd   func(context.Context, *PipelineEvent)
	OnStepStart     func(context.Context, *StepEvent)
	OnStepEnd       func(context.Context, *StepEvent)
}
