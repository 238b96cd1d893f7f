package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolveRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ps1_resolve_requests_total",
		Help: "Total name lookups sent to the remote resolver",
	})
	ResolveFailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ps1_resolve_fail_total",
		Help: "Remote name lookups that failed, by kind",
	}, []string{"kind"})
	ResolveDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ps1_resolve_duration_ms",
		Help:    "Remote name lookup duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000, 10000},
	})
	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ps1_coordinate_cache_hits_total",
		Help: "Coordinate cache hits by backend",
	}, []string{"backend"})
	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ps1_coordinate_cache_misses_total",
		Help: "Coordinate cache misses by backend",
	}, []string{"backend"})
	TAPQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ps1_tap_queries_total",
		Help: "TAP queries by outcome",
	}, []string{"status"})
	TAPDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ps1_tap_duration_ms",
		Help:    "TAP query duration in milliseconds",
		Buckets: []float64{100, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

func init() {
	prometheus.MustRegister(ResolveRequestsTotal)
	prometheus.MustRegister(ResolveFailTotal)
	prometheus.MustRegister(ResolveDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(TAPQueriesTotal)
	prometheus.MustRegister(TAPDurationMs)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
