package observability

import (
	"context"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// noActionLabel labels dispatches without an action key.
const noActionLabel = "none"

// Metrics holds the dispatch collectors.
type Metrics struct {
	Dispatches *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Plugins    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baxter_dispatch_total",
				Help: "Total number of dispatched messages by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "baxter_dispatch_duration_seconds",
				Help:    "Duration of action handlers, including time spent waiting for user input",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"action"},
		),
		Plugins: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "baxter_plugins_loaded",
			Help: "Number of plugins accepted at startup",
		}),
	}
	for _, c := range []prometheus.Collector{m.Dispatches, m.Duration, m.Plugins} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks records every dispatch.
func (m *Metrics) Hooks() domain.DispatchHooks {
	return domain.DispatchHooks{
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			key := e.ActionKey
			if key == "" {
				key = noActionLabel
			}
			m.Dispatches.WithLabelValues(key, string(e.Outcome)).Inc()
			if e.Outcome == domain.OutcomeHandled || e.Outcome == domain.OutcomeFailed {
				m.Duration.WithLabelValues(key).Observe(e.Duration.Seconds())
			}
		},
	}
}
