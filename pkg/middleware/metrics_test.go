package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/flux/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accKind(a accAction) string {
	switch a.(type) {
	case add:
		return "add"
	case freeze:
		return "freeze"
	case fail:
		return "fail"
	default:
		return "unknown"
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, action string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "action" && label.GetValue() == action {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMetrics_CountsDispatchesByKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics[accState](reg, "flux", accKind)

	store := newStore(metrics.Middleware())
	ctx := context.Background()

	store.Dispatch(ctx, add{N: 1})
	store.Dispatch(ctx, add{N: 2})
	store.Dispatch(ctx, freeze{On: true})

	assert.Equal(t, 2.0, counterValue(t, reg, "flux_dispatches_total", "add"))
	assert.Equal(t, 1.0, counterValue(t, reg, "flux_dispatches_total", "freeze"))

	// Latency histogram observed one sample per dispatch.
	families, err := reg.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, mf := range families {
		if mf.GetName() == "flux_dispatch_duration_seconds" {
			for _, m := range mf.GetMetric() {
				samples += m.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, uint64(3), samples)
}

func TestMetrics_DefaultKindUsesTypeName(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics[accState, accAction](reg, "flux", nil)

	store := newStore(metrics.Middleware())
	store.Dispatch(context.Background(), add{N: 1})

	assert.Equal(t, 1.0, counterValue(t, reg, "flux_dispatches_total", "middleware_test.add"))
}
