// Package metrics registers the Prometheus collectors exposed on the metrics
// listener.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RankRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livebetter_rank_requests_total",
		Help: "Total ranking requests processed",
	})

	RankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "livebetter_rank_duration_seconds",
		Help:    "End-to-end ranking computation time, cache misses only",
		Buckets: prometheus.DefBuckets,
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livebetter_cache_hits_total",
		Help: "Cache hits by logical prefix",
	}, []string{"prefix"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "livebetter_cache_misses_total",
		Help: "Cache misses by logical prefix",
	}, []string{"prefix"})

	MetrosScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livebetter_metros_scored_total",
		Help: "Individual metro scoring computations",
	})

	ScoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "livebetter_metro_score_failures_total",
		Help: "Metros dropped from a ranking because scoring failed",
	})
)
