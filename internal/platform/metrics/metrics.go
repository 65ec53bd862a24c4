// Package metrics holds the Prometheus metrics for the guardian service.
// Methods are nil-safe so tests can pass a nil *Metrics without registering
// collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EventsInterpreted *prometheus.CounterVec
	OutcomesProduced  *prometheus.CounterVec
	ActionExecutions  *prometheus.CounterVec
	ExecuteLatency    prometheus.Histogram
}

// New creates and registers all metrics with the default registry. Call once
// per process.
func New() *Metrics {
	return &Metrics{
		EventsInterpreted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_events_interpreted_total",
			Help: "Events processed by the decision engine, by event type",
		}, []string{"type"}),

		OutcomesProduced: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_outcomes_produced_total",
			Help: "Prompts and feedback produced, by outcome kind",
		}, []string{"kind"}),

		ActionExecutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_action_executions_total",
			Help: "Action execution attempts, by result status",
		}, []string{"status"}),

		ExecuteLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "guardian_action_execute_duration_seconds",
			Help:    "Duration of successful action executions including gates",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementEventInterpreted(eventType string) {
	if m != nil {
		m.EventsInterpreted.WithLabelValues(eventType).Inc()
	}
}

func (m *Metrics) IncrementOutcomeProduced(kind string) {
	if m != nil {
		m.OutcomesProduced.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementActionExecution(status string) {
	if m != nil {
		m.ActionExecutions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) ObserveExecuteLatency(d time.Duration) {
	if m != nil {
		m.ExecuteLatency.Observe(d.Seconds())
	}
}
