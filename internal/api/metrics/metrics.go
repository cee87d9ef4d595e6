// Package metrics defines and registers all custom Prometheus metrics for the
// funding platform API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "funding"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "inactive"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ApplicationsCreatedTotal counts newly opened applications.
// Label:
//   - fund_type: "IGNITE" or "ELEVATE"
var ApplicationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_created_total",
		Help:      "Total number of applications created, by fund type.",
	},
	[]string{"fund_type"},
)

// StatusTransitionsTotal counts applied status transitions.
// Labels:
//   - from, to: the transition endpoints (e.g. "SUBMITTED" → "UNDER_REVIEW")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of applied application status transitions.",
	},
	[]string{"from", "to"},
)

// DocumentsUploadedTotal counts attached documents.
// Label:
//   - document_type: the business category of the upload
var DocumentsUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of documents attached to applications.",
	},
	[]string{"document_type"},
)

// ContactMessagesTotal counts public contact form submissions.
var ContactMessagesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages received.",
	},
)
