// Package metrics exposes Prometheus instrumentation for the console engine
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the engine. A nil
// *Metrics is valid and records nothing, so callers never need to guard.
type Metrics struct {
	registry             *prometheus.Registry
	refreshTotal         prometheus.Counter
	refreshFailures      prometheus.Counter
	statusPollTotal      prometheus.Counter
	statusPollFallbacks  prometheus.Counter
	assignmentOpsTotal   prometheus.Counter
	assignmentOpFailures prometheus.Counter
	streamingOpsTotal    prometheus.Counter
	activeGroups         prometheus.Gauge
}

// New creates and registers engine metrics
func New() *Metrics {
	registry := prometheus.NewRegistry()

	refreshTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_refresh_total",
		Help: "Total number of bulk refresh fetches issued",
	})
	refreshFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_refresh_failures_total",
		Help: "Total number of bulk refresh fetches that failed",
	})
	statusPollTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_status_poll_total",
		Help: "Total number of streaming status poll cycles",
	})
	statusPollFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_status_poll_fallbacks_total",
		Help: "Total number of poll cycles that fell back to per-group status calls",
	})
	assignmentOpsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_assignment_ops_total",
		Help: "Total number of client assignment operations issued",
	})
	assignmentOpFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_assignment_op_failures_total",
		Help: "Total number of client assignment operations that failed",
	})
	streamingOpsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vidwall_streaming_ops_total",
		Help: "Total number of streaming start/stop operations issued",
	})
	activeGroups := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vidwall_active_groups",
		Help: "Number of groups currently streaming",
	})

	registry.MustRegister(
		refreshTotal,
		refreshFailures,
		statusPollTotal,
		statusPollFallbacks,
		assignmentOpsTotal,
		assignmentOpFailures,
		streamingOpsTotal,
		activeGroups,
	)

	return &Metrics{
		registry:             registry,
		refreshTotal:         refreshTotal,
		refreshFailures:      refreshFailures,
		statusPollTotal:      statusPollTotal,
		statusPollFallbacks:  statusPollFallbacks,
		assignmentOpsTotal:   assignmentOpsTotal,
		assignmentOpFailures: assignmentOpFailures,
		streamingOpsTotal:    streamingOpsTotal,
		activeGroups:         activeGroups,
	}
}

// IncRefresh counts an issued bulk fetch
func (m *Metrics) IncRefresh() {
	if m != nil {
		m.refreshTotal.Inc()
	}
}

// IncRefreshFailure counts a failed bulk fetch
func (m *Metrics) IncRefreshFailure() {
	if m != nil {
		m.refreshFailures.Inc()
	}
}

// IncStatusPoll counts a status poll cycle
func (m *Metrics) IncStatusPoll() {
	if m != nil {
		m.statusPollTotal.Inc()
	}
}

// IncStatusPollFallback counts a cycle that degraded to per-group calls
func (m *Metrics) IncStatusPollFallback() {
	if m != nil {
		m.statusPollFallbacks.Inc()
	}
}

// IncAssignmentOp counts an issued assignment operation
func (m *Metrics) IncAssignmentOp() {
	if m != nil {
		m.assignmentOpsTotal.Inc()
	}
}

// IncAssignmentOpFailure counts a failed assignment operation
func (m *Metrics) IncAssignmentOpFailure() {
	if m != nil {
		m.assignmentOpFailures.Inc()
	}
}

// IncStreamingOp counts an issued streaming start/stop
func (m *Metrics) IncStreamingOp() {
	if m != nil {
		m.streamingOpsTotal.Inc()
	}
}

// SetActiveGroups sets the currently-streaming group gauge
func (m *Metrics) SetActiveGroups(n int) {
	if m != nil {
		m.activeGroups.Set(float64(n))
	}
}

// Handler returns an http.Handler serving the metrics registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
