package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/sprig/pkg/domain"
)

// Metrics bundles the Prometheus collectors fed by the lifecycle hooks.
// The caller owns the registry; no HTTP server is started here.
type Metrics struct {
	PipelineRuns *prometheus.CounterVec
	StepRuns     *prometheus.CounterVec
	StepDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sprig_pipeline_runs_total",
				Help: "Total number of pipeline invocations",
			},
			[]string{"pipeline"},
		),
		StepRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sprig_step_runs_total",
				Help: "Total number of step executions",
			},
			[]string{"pipeline", "step"},
		),
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "sprig_step_duration_seconds",
				Help: "Duration of step executions",
			},
			[]string{"pipeline", "step"},
		),
	}

	reg.MustRegister(m.PipelineRuns, m.StepRuns, m.StepDuration)

	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPipelineStart: func(_ context.Context, e *domain.PipelineEvent) {
			m.PipelineRuns.WithLabelValues(e.Pipeline).Inc()
		},
		OnStepEnd: func(_ context.Context, e *domain.StepEvent) {
			m.StepRuns.WithLabelValues(e.Pipeline, e.Step).Inc()
			m.StepDuration.WithLabelValues(e.Pipeline, e.Step).Observe(e.Duration.Seconds())
		},
	}
}
