// Package metrics holds the Prometheus collectors exported on the admin
// listener.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RoutesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "navigator_routes_total",
		Help: "Routes computed, by mode (grid|direct) and outcome (ok|no_nodes|no_path|error)",
	}, []string{"mode", "outcome"})
	RouteDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "navigator_route_duration_ms",
		Help:    "Time spent computing a grid route in milliseconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 50, 100, 200, 500},
	})
	SearchExpandedNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "navigator_search_expanded_nodes",
		Help:    "Nodes moved to the closed set per A* search",
		Buckets: prometheus.ExponentialBuckets(4, 2, 12),
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "navigator_route_cache_hits_total",
		Help: "Route cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "navigator_route_cache_misses_total",
		Help: "Route cache misses",
	})
	StoreErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "navigator_store_errors_total",
		Help: "Collaborator failures that did not fail the request",
	}, []string{"backend"})
)

func init() {
	prometheus.MustRegister(RoutesTotal)
	prometheus.MustRegister(RouteDurationMs)
	prometheus.MustRegister(SearchExpandedNodes)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(StoreErrorsTotal)
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler { return promhttp.Handler() }
