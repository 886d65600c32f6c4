// Package metrics defines and registers all custom Prometheus metrics for
// the admin console. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// UsersCreatedTotal counts users committed through the create form.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created through the console.",
	},
)

// UsersUpdatedTotal counts users committed through the edit form.
var UsersUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_updated_total",
		Help:      "Total number of users updated through the console.",
	},
)

// UsersDeletedTotal counts delete intents applied to the local list.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted through the console.",
	},
)

// UploadsRejectedTotal counts avatar uploads rejected by the size guard
// before any collaborator call.
var UploadsRejectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of avatar uploads rejected for exceeding the size limit.",
	},
)

// UpstreamSyncFailuresTotal counts fire-and-forget upstream calls that
// failed after the local mutation was already applied.
// Label:
//   - action: "create", "update", or "delete"
var UpstreamSyncFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_sync_failures_total",
		Help:      "Total number of upstream directory calls that failed, by action.",
	},
	[]string{"action"},
)
