package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relay"

// Metrics holds the relay's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	webhookEvents   *prometheus.CounterVec
	pipelineResults *prometheus.CounterVec
	interactions    *prometheus.CounterVec
	dispatchRounds  prometheus.Histogram
	toolCalls       *prometheus.CounterVec
	storeAppends    *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.webhookEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "GitHub webhook deliveries by event type",
	}, []string{"event_type"})
	m.pipelineResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_decisions_total",
		Help:      "Notification pipeline outcomes",
	}, []string{"decision"})
	m.interactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slack_interactions_total",
		Help:      "Slack button clicks by action and outcome",
	}, []string{"action", "outcome"})
	m.dispatchRounds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dispatch_rounds",
		Help:      "Planning rounds used per dispatch",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})
	m.toolCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tool_calls_total",
		Help:      "Tool invocations by tool and status",
	}, []string{"tool", "status"})
	m.storeAppends = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_store_appends_total",
		Help:      "Event store appends by status",
	}, []string{"status"})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.webhookEvents, m.pipelineResults, m.interactions,
		m.dispatchRounds, m.toolCalls, m.storeAppends,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WebhookEvent counts an accepted GitHub delivery.
func (m *Metrics) WebhookEvent(eventType string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(eventType).Inc()
}

// NotifyDecision counts a pipeline outcome (notified, ignored, duplicate, failed).
func (m *Metrics) NotifyDecision(decision string) {
	if m == nil {
		return
	}
	m.pipelineResults.WithLabelValues(decision).Inc()
}

// Interaction counts a Slack button click.
func (m *Metrics) Interaction(action, outcome string) {
	if m == nil {
		return
	}
	m.interactions.WithLabelValues(action, outcome).Inc()
}

// DispatchRounds records how many planning rounds a dispatch took.
func (m *Metrics) DispatchRounds(n int) {
	if m == nil {
		return
	}
	m.dispatchRounds.Observe(float64(n))
}

// ToolCall counts one tool execution.
func (m *Metrics) ToolCall(tool, status string) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
}

// StoreAppend counts an event store write.
func (m *Metrics) StoreAppend(status string) {
	if m == nil {
		return
	}
	m.storeAppends.WithLabelValues(status).Inc()
}
