package metrics

import (
	"net/http"
	"time"
)

// Metrics collects gateway observability signals. Implementations must be
// safe for concurrent use.
type Metrics interface {
	// Dispatch metrics
	IncActionSubmitted(slot string)
	IncActionConfirmed(slot string)
	IncActionFailed(slot, reason string)
	ObserveConfirmLatency(slot string, latency time.Duration)

	// Snapshot metrics
	IncSnapshotRefresh()
	IncReadErrors(field string)

	// Handler returns the HTTP handler serving the metrics endpoint,
	// or nil when there is nothing to serve.
	Handler() http.Handler
}
