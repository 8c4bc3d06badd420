package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.ObserveOperation("assign", "ok", 3*time.Millisecond)
	m.ObserveOperation("assign", "ok", time.Millisecond)
	m.ObserveOperation("assign", "capacity_exceeded", time.Millisecond)

	if got := testutil.ToFloat64(m.workflowOps.WithLabelValues("assign", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.workflowOps.WithLabelValues("assign", "capacity_exceeded")); got != 1 {
		t.Errorf("capacity_exceeded count = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveOperation("assign", "ok", time.Millisecond)
	m.ObserveNotification("enqueued")
	m.ObserveTransition("submitted", "under_review")
	m.ObserveRequest("/", "GET", "200", time.Millisecond)
}
