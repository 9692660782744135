// Package metrics defines and registers all custom Prometheus metrics for the
// user-product API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry via
// promauto at package initialisation; HTTP-level request metrics are handled
// separately by the echoprometheus middleware in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userproduct"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (bad credentials and unknown users both
//     count as failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token verifications performed by the
// authentication middleware.
// Label:
//   - result: "accepted" or "rejected" (missing header, bad signature,
//     malformed payload and expiry all count as rejected)
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// AuthorizationDenialsTotal counts requests that carried a valid token but
// were refused by the authorization gate.
// Label:
//   - reason: "unknown_subject" (account absent or soft-deleted) or
//     "missing_role"
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests refused by the authorization gate, by reason.",
	},
	[]string{"reason"},
)
