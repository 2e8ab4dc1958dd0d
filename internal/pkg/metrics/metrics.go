// Package metrics defines and registers all custom Prometheus metrics for the
// admin dashboard. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "auth_error", "network_error" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of staff login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsExpiredTotal counts sessions cleared because the backend answered 401.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions cleared after a backend 401.",
	},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls made to the remote backend.
// Labels:
//   - method: HTTP method
//   - status: HTTP status code, or "error" when the transport failed
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the remote backend.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round trips.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the remote backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Screen metrics ────────────────────────────────────────────────────────────

// FallbackServedTotal counts screens rendered from injected demo data.
// Label:
//   - resource: e.g. "categories", "transactions"
var FallbackServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_served_total",
		Help:      "Total number of responses served from fallback data, by resource.",
	},
	[]string{"resource"},
)
