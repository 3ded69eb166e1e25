package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics implements the Metrics interface using Prometheus.
type PrometheusMetrics struct {
	registry *prometheus.Registry

	actionsSubmitted *prometheus.CounterVec
	actionsConfirmed *prometheus.CounterVec
	actionsFailed    *prometheus.CounterVec
	confirmLatency   *prometheus.HistogramVec

	snapshotRefreshes prometheus.Counter
	readErrors        *prometheus.CounterVec
}

// NewPrometheusMetrics creates and registers all gateway collectors.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	m := &PrometheusMetrics{
		registry: registry,
		actionsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_submitted_total",
			Help:      "Number of ledger actions submitted, by action slot.",
		}, []string{"slot"}),
		actionsConfirmed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_confirmed_total",
			Help:      "Number of ledger actions confirmed, by action slot.",
		}, []string{"slot"}),
		actionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_failed_total",
			Help:      "Number of ledger actions failed, by action slot and reason.",
		}, []string{"slot", "reason"}),
		confirmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "action_confirm_seconds",
			Help:      "Time from submission to confirmation, by action slot.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"slot"}),
		snapshotRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refreshes_total",
			Help:      "Number of full ledger snapshot refreshes.",
		}),
		readErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "read_errors_total",
			Help:      "Number of failed ledger field reads, by field.",
		}, []string{"field"}),
	}

	registry.MustRegister(
		m.actionsSubmitted,
		m.actionsConfirmed,
		m.actionsFailed,
		m.confirmLatency,
		m.snapshotRefreshes,
		m.readErrors,
	)

	return m
}

func (m *PrometheusMetrics) IncActionSubmitted(slot string) {
	m.actionsSubmitted.WithLabelValues(slot).Inc()
}

func (m *PrometheusMetrics) IncActionConfirmed(slot string) {
	m.actionsConfirmed.WithLabelValues(slot).Inc()
}

func (m *PrometheusMetrics) IncActionFailed(slot, reason string) {
	m.actionsFailed.WithLabelValues(slot, reason).Inc()
}

func (m *PrometheusMetrics) ObserveConfirmLatency(slot string, latency time.Duration) {
	m.confirmLatency.WithLabelValues(slot).Observe(latency.Seconds())
}

func (m *PrometheusMetrics) IncSnapshotRefresh() {
	m.snapshotRefreshes.Inc()
}

func (m *PrometheusMetrics) IncReadErrors(field string) {
	m.readErrors.WithLabelValues(field).Inc()
}

// Handler serves the registry over HTTP.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
