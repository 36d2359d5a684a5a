// Package observability provides prometheus metrics for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RateLimitRejections counts requests rejected by the threads admission gate.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the fixed-window rate limiter",
	}, []string{"route"})

	// ThreadDetailCache counts cache-aside outcomes for thread detail reads.
	ThreadDetailCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_thread_detail_cache_total",
		Help: "Thread detail cache lookups by outcome (hit or miss)",
	}, []string{"outcome"})

	// QueryLatency records storage query latency by operation and table.
	QueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "agora_query_latency_seconds",
		Help:    "Storage query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "agora_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// ObserveQuery records the latency of a storage operation started at start.
func ObserveQuery(operation, table string, start time.Time) {
	QueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
