package metrics

import (
	"net/http"
	"time"
)

// NopMetrics is a no-op implementation of the Metrics interface.
// Use this when metrics collection is disabled.
type NopMetrics struct{}

// NewNopMetrics creates a new NopMetrics instance.
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

func (m *NopMetrics) IncActionSubmitted(slot string)                           {}
func (m *NopMetrics) IncActionConfirmed(slot string)                           {}
func (m *NopMetrics) IncActionFailed(slot, reason string)                      {}
func (m *NopMetrics) ObserveConfirmLatency(slot string, latency time.Duration) {}
func (m *NopMetrics) IncSnapshotRefresh()                                      {}
func (m *NopMetrics) IncReadErrors(field string)                               {}

// Handler returns nil since there's nothing to serve.
func (m *NopMetrics) Handler() http.Handler {
	return nil
}
