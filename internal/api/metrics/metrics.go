// Package metrics defines and registers all custom Prometheus metrics for the
// job board API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry through promauto
// when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobboard"

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsSubmittedTotal counts applications whose row was inserted.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of job applications successfully submitted.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts notification outcomes.
// Label:
//   - result: "sent", "failed", "dropped", "duplicate", "employer_not_found", …
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of application notifications, labelled by outcome.",
	},
	[]string{"result"},
)

// NotificationQueueDepth tracks the current number of notifications waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationDuration measures how long a single delivery attempt takes.
// Label:
//   - result: "sent" or "failed"
var NotificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of a notification delivery attempt.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Job & storage metrics ─────────────────────────────────────────────────────

// JobMutationsTotal counts employer job mutations.
// Label:
//   - op: "create", "update", or "delete"
var JobMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_mutations_total",
		Help:      "Total number of job postings created, updated or deleted.",
	},
	[]string{"op"},
)

// UploadsTotal counts stored objects per bucket.
// Label:
//   - bucket: "avatars" or "resumes"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files uploaded, by bucket.",
	},
	[]string{"bucket"},
)
