// Package metrics defines all custom Prometheus metrics for the user
// directory service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userdir"

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - outcome: "success" or "failure" (failures are deliberately not broken
//     down further; the cause must not be observable anywhere)
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SchedulerRequestsTotal counts calls to the scheduling service.
// Labels:
//   - operation: "slots_between" or "all_slots"
//   - outcome: "ok" or "error"
var SchedulerRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_requests_total",
		Help:      "Total number of scheduling-service calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// SchedulerRequestDuration measures scheduling-service call latency.
// Label:
//   - operation: "slots_between" or "all_slots"
var SchedulerRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scheduler_request_duration_seconds",
		Help:      "Duration of scheduling-service calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ReportsGeneratedTotal counts user report pages served.
var ReportsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of user report pages generated.",
	},
)

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
