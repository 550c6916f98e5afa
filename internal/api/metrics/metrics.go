// Package metrics defines and registers the custom Prometheus metrics of the
// helpdesk API. It is the single source of truth for metric names, labels
// and help strings.
//
// All collectors are registered with the default registry through promauto
// when the package is first imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "helpdesk"

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsCreatedTotal counts newly opened tickets.
// Label:
//   - department: "technical", "marketing", "sales" or "support"
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets opened, by department.",
	},
	[]string{"department"},
)

// MessagesAppendedTotal counts messages appended to existing threads.
// Label:
//   - owner_type: "user" or "agent"
var MessagesAppendedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_appended_total",
		Help:      "Total number of messages appended to ticket threads, by author type.",
	},
	[]string{"owner_type"},
)

// TicketStatusChangesTotal counts status updates by the status applied.
var TicketStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_status_changes_total",
		Help:      "Total number of ticket status changes, by resulting status.",
	},
	[]string{"status"},
)

// TicketRatingsTotal counts ratings by value ("1" to "5").
var TicketRatingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_ratings_total",
		Help:      "Total number of ticket ratings, by rate.",
	},
	[]string{"rate"},
)

// ── Agent metrics ─────────────────────────────────────────────────────────────

// SigninAttemptsTotal counts sign-in attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var SigninAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signin_attempts_total",
		Help:      "Total number of agent sign-in attempts, by result.",
	},
	[]string{"result"},
)
