// Package metrics defines and registers all custom Prometheus metrics for the
// API. Metrics are registered with the default registry on package init and
// exposed by the router at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userapi"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP verb
//   - route: matched route template (e.g. "/api/users/:id"), or "unmatched"
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests from first middleware to response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// HTTPErrorsTotal counts failures resolved by the central error handler.
// Labels:
//   - status: rendered status code
//   - kind: domain error kind, "http" for framework errors, "internal" otherwise
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_errors_total",
		Help:      "Total number of failed requests by status and error kind.",
	},
	[]string{"status", "kind"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - outcome: "success" or the error kind
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts by outcome.",
	},
	[]string{"operation", "outcome"},
)

// AdminOperationsTotal counts admin user-management calls.
var AdminOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_operations_total",
		Help:      "Total number of admin user-management operations by outcome.",
	},
	[]string{"operation", "outcome"},
)
