package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/flux"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes dispatch counters and latency to Prometheus, labeled by
// action kind.
type Metrics[S, A any] struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	kind       func(A) string
}

// NewMetrics creates and registers the dispatch metrics on reg.
// namespace prefixes the metric names (e.g. "myapp_dispatches_total").
// kindFn derives the "action" label from an action; when nil the dynamic
// type name is used. Keep the label set bounded: one label value per action
// variant, never per payload.
func NewMetrics[S, A any](reg prometheus.Registerer, namespace string, kindFn func(A) string) *Metrics[S, A] {
	if kindFn == nil {
		kindFn = func(a A) string { return fmt.Sprintf("%T", a) }
	}

	m := &Metrics[S, A]{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dispatches_total",
				Help:      "Total number of dispatches observed, by action kind",
			},
			[]string{"action"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "dispatch_duration_seconds",
				Help:      "Time from entering this middleware until the inner chain settled",
			},
			[]string{"action"},
		),
		kind: kindFn,
	}

	reg.MustRegister(m.dispatches, m.duration)
	return m
}

// Middleware returns the interceptor recording into these metrics.
// Place it outermost to measure the whole chain.
func (m *Metrics[S, A]) Middleware() flux.Middleware[S, A] {
	return func(ctx context.Context, state flux.StateFn[S], dispatch flux.DispatchFn[A], next flux.DispatchFn[A], action A) {
		kind := m.kind(action)
		m.dispatches.WithLabelValues(kind).Inc()

		start := time.Now()
		next(ctx, action)
		m.duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}
}
