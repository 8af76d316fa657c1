// Package metrics defines the custom Prometheus metrics of the marketplace
// API. Every metric is registered with the default registry on package init
// through promauto, next to the request metrics of echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "invalid_credentials"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks sessions opened through this process minus those
// closed through logout. Expired Redis sessions are not subtracted.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Sessions opened and not yet logged out.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// ProductsCreatedTotal counts listed products.
// Label:
//   - strain: "Sativa", "Indica" or "Hybrid"
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products listed, by strain.",
	},
	[]string{"strain"},
)

// ── Messaging metrics ─────────────────────────────────────────────────────────

// MessagesSentTotal counts sent messages.
// Label:
//   - scope: "global" or "direct"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of chat messages sent, by scope.",
	},
	[]string{"scope"},
)

// ── Rejections ────────────────────────────────────────────────────────────────

// MutationsRejectedTotal counts state changes refused by the marketplace.
// Labels:
//   - operation: e.g. "add_product", "update_role"
//   - reason: e.g. "forbidden", "invalid_input", "not_found"
var MutationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_rejected_total",
		Help:      "Total number of rejected marketplace mutations, by operation and reason.",
	},
	[]string{"operation", "reason"},
)

// Collectors returns every metric above, for registries other than the
// default one.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LoginsTotal,
		ActiveSessions,
		ProductsCreatedTotal,
		MessagesSentTotal,
		MutationsRejectedTotal,
	}
}
