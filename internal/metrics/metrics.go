// Package metrics exposes Prometheus collectors for the review workflow and
// the HTTP layer.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "confportal"

// Metrics groups the collectors. A nil *Metrics is valid and records nothing,
// which keeps tests and tools free of registry setup.
type Metrics struct {
	workflowOps      *prometheus.CounterVec
	workflowLatency  *prometheus.HistogramVec
	notifications    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	paperTransitions *prometheus.CounterVec
}

// New registers all collectors on registry. Use prometheus.NewRegistry() to
// isolate them, or prometheus.DefaultRegisterer for the global registry.
func New(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		workflowOps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "operations_total",
			Help:      "Workflow operations by operation and result (ok or error kind).",
		}, []string{"operation", "result"}),
		workflowLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "operation_duration_seconds",
			Help:      "Workflow operation latency.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "notifications_total",
			Help:      "Author notifications by result (enqueued or failed).",
		}, []string{"result"}),
		paperTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workflow",
			Name:      "paper_transitions_total",
			Help:      "Paper status transitions.",
		}, []string{"from", "to"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) ObserveOperation(operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.workflowOps.WithLabelValues(operation, result).Inc()
	m.workflowLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveNotification(result string) {
	if m == nil {
		return
	}

	m.notifications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}

	m.paperTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveRequest(route, method, code string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
