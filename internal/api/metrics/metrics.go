// Package metrics defines and registers all custom Prometheus metrics for the
// retro games portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Request-level metrics (latency, status codes) come from the echoprometheus
// middleware; the metrics here cover domain events only.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "retroportal"

// GamesCreatedTotal counts catalog entries created.
// Label:
//   - genre: the genre of the created game (e.g. "Platformer")
var GamesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_created_total",
		Help:      "Total number of games added to the catalog, by genre.",
	},
	[]string{"genre"},
)

// GamesDeletedTotal counts catalog entries removed.
var GamesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_deleted_total",
		Help:      "Total number of games removed from the catalog.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the per-IP rate limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
)
