package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sprig"
	"github.com/aretw0/sprig/pkg/greeter"
	"github.com/aretw0/sprig/pkg/observability"
)

func TestMetrics_HooksRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	agent, err := greeter.New(sprig.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, err)

	_, err = agent.Invoke(context.Background(), greeter.State{Name: "Alice"})
	require.NoError(t, err)
	_, err = agent.Invoke(context.Background(), greeter.State{Name: "Bob"})
	require.NoError(t, err)

	runs := testutil.ToFloat64(metrics.PipelineRuns.WithLabelValues(greeter.PipelineName))
	assert.Equal(t, 2.0, runs)

	stepRuns := testutil.ToFloat64(metrics.StepRuns.WithLabelValues(greeter.PipelineName, greeter.StepName))
	assert.Equal(t, 2.0, stepRuns)
}
