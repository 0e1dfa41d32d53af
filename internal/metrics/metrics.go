// Package metrics defines all custom Prometheus metrics for the funko catalog
// server. It is the single source of truth for metric names, labels, and help
// strings; everything is registered with the default registry at init time via
// promauto and exposed on the admin HTTP listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "funko"

// SessionsActive tracks the number of client sessions currently being served.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of client connections currently open.",
	},
)

// RequestsTotal counts protocol requests by type and response status.
// Labels:
//   - type: the request type (e.g. "GETALL", "INSERT"), or "INVALID" for
//     lines that failed to decode
//   - status: the wire status of the response (OK, ERROR, TOKEN, BYE)
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total protocol requests handled, by request type and response status.",
	},
	[]string{"type", "status"},
)

// CacheHitsTotal counts cache lookups that found a live entry.
var CacheHitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_hits_total",
		Help:      "Total cache lookups answered from the cache.",
	},
)

// CacheMissesTotal counts cache lookups that fell through to the store.
var CacheMissesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_misses_total",
		Help:      "Total cache lookups that missed.",
	},
)

// CacheEvictionsTotal counts evicted entries.
// Label:
//   - reason: "capacity" (LRU displacement) or "expired" (TTL sweep)
var CacheEvictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_evictions_total",
		Help:      "Total cache entries evicted, by reason.",
	},
	[]string{"reason"},
)

// NotificationsDroppedTotal counts notifications dropped because a
// subscriber's buffer was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total mutation notifications dropped for slow subscribers.",
	},
)
