// Package metrics defines and registers all custom Prometheus metrics for the
// CRM API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint is exposed by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Contact metrics ───────────────────────────────────────────────────────────

// ContactsSavedTotal counts contact saves that reached the store.
// Label:
//   - action: "contact_created" or "contact_updated"
var ContactsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contacts_saved_total",
		Help:      "Total number of contact create/update operations persisted.",
	},
	[]string{"action"},
)

// ── Invitation metrics ────────────────────────────────────────────────────────

// InvitesSentTotal counts portal invitations successfully issued.
var InvitesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invites_sent_total",
		Help:      "Total number of portal invitations issued.",
	},
)

// InviteErrorsTotal counts invitation sub-flows that failed.
// Label:
//   - reason: "wrong_credential", "verifier_unavailable", or "issuer_failed"
var InviteErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invite_errors_total",
		Help:      "Total number of failed invitation sub-flows, by reason.",
	},
	[]string{"reason"},
)

// InviteDuration measures the invite sub-flow end-to-end, from throttle check
// to issuer response.
var InviteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "invite_duration_seconds",
		Help:      "Duration of the invitation sub-flow.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Activity metrics ──────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of entries waiting in each activity
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending per dispatcher worker.",
	},
	[]string{"worker_id"},
)
