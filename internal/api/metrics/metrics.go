// Package metrics defines and registers all custom Prometheus metrics for
// the catalog site. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Catalog metrics ───────────────────────────────────────────────────────────

// SearchesTotal counts catalog searches.
// Label:
//   - kind: "all" (empty term) or "filtered"
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of catalog searches, by kind (all/filtered).",
	},
	[]string{"kind"},
)

// ProductsCreatedTotal counts successfully created listings.
// Label:
//   - image_source: "upload" or "url"
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of product listings created, by image source.",
	},
	[]string{"image_source"},
)

// ProductsDeletedTotal counts delete requests that completed successfully,
// including idempotent deletes of absent ids.
var ProductsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_deleted_total",
		Help:      "Total number of successful product delete requests.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)
